package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	credentials "cloud.google.com/go/iam/credentials/apiv1"
	credentialspb "cloud.google.com/go/iam/credentials/apiv1/credentialspb"
	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// BlobSigner is satisfied by *credentials.IamCredentialsClient.
type BlobSigner interface {
	SignBlob(ctx context.Context, req *credentialspb.SignBlobRequest) ([]byte, error)
}

type iamSigner struct {
	c *credentials.IamCredentialsClient
}

func (s iamSigner) SignBlob(ctx context.Context, req *credentialspb.SignBlobRequest) ([]byte, error) {
	resp, err := s.c.SignBlob(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.SignedBlob, nil
}

// ObjectRemover deletes objects from the upload bucket.
type ObjectRemover interface {
	Remove(ctx context.Context, bucket, objectPath string) error
}

type gcsObjects struct {
	c *storage.Client
}

func (g gcsObjects) Remove(ctx context.Context, bucket, objectPath string) error {
	err := g.c.Bucket(bucket).Object(objectPath).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

type SignedURL struct {
	URL        string `json:"url"`
	Method     string `json:"method"`
	ObjectPath string `json:"objectPath"`
	ExpiresAt  int64  `json:"expiresAt"`
}

type SignedURLRequest struct {
	Kind           Kind   `json:"kind"`
	Filename       string `json:"filename,omitempty"`
	ObjectPath     string `json:"objectPath,omitempty"`
	ContentType    string `json:"contentType"`
	Size           int64  `json:"size"`
	ExpiresSeconds int64  `json:"expiresSeconds,omitempty"`
}

// Signer issues V4 PUT URLs signed by a service account through the IAM credentials API.
type Signer struct {
	bucket string
	email  string
	blob   BlobSigner
	store  ObjectRemover
	now    func() time.Time
	newID  func() string
}

// NewSigner returns nil when signing is not configured. st may be nil, which disables
// DeleteObject.
func NewSigner(ctx context.Context, bucket, serviceAccountEmail string, st *storage.Client) *Signer {
	if bucket == "" || serviceAccountEmail == "" {
		return nil
	}
	c, err := credentials.NewIamCredentialsClient(ctx)
	if err != nil {
		return nil
	}
	var store ObjectRemover
	if st != nil {
		store = gcsObjects{c: st}
	}
	return newSigner(bucket, serviceAccountEmail, iamSigner{c: c}, store)
}

func newSigner(bucket, email string, blob BlobSigner, store ObjectRemover) *Signer {
	return &Signer{bucket: bucket, email: email, blob: blob, store: store, now: time.Now, newID: uuid.NewString}
}

func (s *Signer) Sign(ctx context.Context, req SignedURLRequest) (*SignedURL, error) {
	if s == nil {
		return nil, ErrNotConfigured
	}
	if err := Check(req.Kind, req.ContentType, req.Size); err != nil {
		return nil, err
	}

	objectPath := strings.TrimSpace(req.ObjectPath)
	if objectPath == "" {
		objectPath = ObjectPath(req.Kind, req.Filename, s.newID())
	}
	if !validObjectPath(objectPath) {
		return nil, fmt.Errorf("%w: invalid objectPath", ErrBadRequest)
	}

	expiresSeconds := req.ExpiresSeconds
	if expiresSeconds <= 0 || expiresSeconds > 3600 {
		expiresSeconds = 900
	}
	exp := s.now().Add(time.Duration(expiresSeconds) * time.Second)

	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         "PUT",
		Expires:        exp,
		ContentType:    req.ContentType,
		GoogleAccessID: s.email,
		SignBytes: func(b []byte) ([]byte, error) {
			return s.blob.SignBlob(ctx, &credentialspb.SignBlobRequest{
				Name:    fmt.Sprintf("projects/-/serviceAccounts/%s", s.email),
				Payload: b,
			})
		},
	}

	url, err := storage.SignedURL(s.bucket, objectPath, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to sign url (check service account + permissions): %w", err)
	}
	return &SignedURL{URL: url, Method: "PUT", ObjectPath: objectPath, ExpiresAt: exp.Unix()}, nil
}

// DeleteObject removes an object uploaded through a signed URL. Only paths under uploads/ are
// accepted; a missing object is not an error.
func (s *Signer) DeleteObject(ctx context.Context, objectPath string) error {
	if s == nil || s.store == nil {
		return ErrNotConfigured
	}
	objectPath = strings.TrimSpace(objectPath)
	if !validObjectPath(objectPath) || !strings.HasPrefix(objectPath, "uploads/") {
		return fmt.Errorf("%w: invalid objectPath", ErrBadRequest)
	}
	if err := s.store.Remove(ctx, s.bucket, objectPath); err != nil {
		return fmt.Errorf("delete %s: %w", objectPath, err)
	}
	return nil
}

func validObjectPath(p string) bool {
	return p != "" && !strings.HasPrefix(p, "/") && !strings.Contains(p, "..")
}
