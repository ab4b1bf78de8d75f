package media

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"brainhints/backend/internal/config"
)

// Cloudinary adapts the Cloudinary upload API to Uploader.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cfg config.Config) (*Cloudinary, error) {
	if !cfg.CloudinaryEnabled() {
		return nil, ErrNotConfigured
	}
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cfg.CloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
	} else {
		cld, err = cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &Cloudinary{cld: cld}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, r io.Reader, p UploadParams) (*Asset, error) {
	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     p.PublicID,
		Folder:       p.Folder,
		ResourceType: string(p.Kind),
		Overwrite:    api.Bool(false),
		Tags:         api.CldAPIArray(p.Tags),
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return &Asset{
		SecureURL:    res.SecureURL,
		PublicID:     res.PublicID,
		ResourceType: res.ResourceType,
		Bytes:        int64(res.Bytes),
		Format:       res.Format,
		Width:        res.Width,
		Height:       res.Height,
	}, nil
}

func (c *Cloudinary) Destroy(ctx context.Context, publicID string, kind Kind) error {
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: string(kind),
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", res.Error.Message)
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: unexpected result %q", res.Result)
	}
	return nil
}
