// Package media uploads editor images and videos to Cloudinary and signs direct-to-bucket
// upload URLs for Cloud Storage.
package media

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/google/uuid"
)

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

const (
	MaxImageBytes int64 = 10 << 20
	MaxVideoBytes int64 = 100 << 20
)

func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	return k, k == KindImage || k == KindVideo
}

func (k Kind) MaxBytes() int64 {
	if k == KindVideo {
		return MaxVideoBytes
	}
	return MaxImageBytes
}

type UploadParams struct {
	Kind     Kind
	Folder   string
	PublicID string
	Tags     []string
}

type Asset struct {
	SecureURL    string `json:"secureUrl"`
	PublicID     string `json:"publicId"`
	ResourceType string `json:"resourceType"`
	Bytes        int64  `json:"bytes"`
	Format       string `json:"format"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
}

// Uploader is implemented by *Cloudinary.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, p UploadParams) (*Asset, error)
	Destroy(ctx context.Context, publicID string, kind Kind) error
}

// File describes an incoming upload before any bytes are sent on.
type File struct {
	Kind        Kind
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Service struct {
	up    Uploader
	newID func() string
}

// NewService accepts a nil uploader; every call then fails with ErrNotConfigured.
func NewService(up Uploader) *Service {
	return &Service{up: up, newID: uuid.NewString}
}

func (s *Service) Enabled() bool { return s != nil && s.up != nil }

func (s *Service) Upload(ctx context.Context, f File) (*Asset, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}
	if err := Check(f.Kind, f.ContentType, f.Size); err != nil {
		return nil, err
	}

	// stops a lying Content-Length at the limit
	body := io.LimitReader(f.Body, f.Kind.MaxBytes()+1)

	a, err := s.up.Upload(ctx, body, UploadParams{
		Kind:     f.Kind,
		Folder:   "brainhints/" + string(f.Kind) + "s",
		PublicID: s.newID(),
		Tags:     []string{"brainhints"},
	})
	if err != nil {
		log.Printf("[Media] upload %q failed: %v", f.Filename, err)
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, publicID string, kind Kind) error {
	if !s.Enabled() {
		return ErrNotConfigured
	}
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return fmt.Errorf("%w: publicId is required", ErrBadRequest)
	}
	if kind == "" {
		kind = KindImage
	}
	if _, ok := ParseKind(string(kind)); !ok {
		return fmt.Errorf("%w: kind must be image or video", ErrBadRequest)
	}
	return s.up.Destroy(ctx, publicID, kind)
}

// Check validates the declared type and size of an upload against its kind.
func Check(kind Kind, contentType string, size int64) error {
	if _, ok := ParseKind(string(kind)); !ok {
		return fmt.Errorf("%w: kind must be image or video", ErrBadRequest)
	}
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if !strings.HasPrefix(ct, string(kind)+"/") {
		return fmt.Errorf("%w: content type %q is not a %s", ErrBadRequest, contentType, kind)
	}
	if size <= 0 {
		return fmt.Errorf("%w: file is empty", ErrBadRequest)
	}
	if size > kind.MaxBytes() {
		return fmt.Errorf("%w: %s uploads are limited to %d MB", ErrTooLarge, kind, kind.MaxBytes()>>20)
	}
	return nil
}

// ObjectPath builds a collision-free bucket path that keeps the original extension.
func ObjectPath(kind Kind, filename, id string) string {
	ext := ""
	if name := strings.TrimSpace(filename); name != "" {
		ext = strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(name, "\\", "/"))))
		if ext == "." {
			ext = ""
		}
	}
	return fmt.Sprintf("uploads/%ss/%s%s", kind, id, ext)
}
