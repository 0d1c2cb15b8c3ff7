// Package cdn uploads media to Cloudinary.
package cdn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"arionfm/shared/go/config"
)

var (
	// ErrNotConfigured is returned when no upload preset or account is set.
	ErrNotConfigured = errors.New("media CDN is not configured")
	// ErrUpload wraps every failure reported by the remote service.
	ErrUpload = errors.New("media upload failed")
)

// ResourceType tells Cloudinary how to store an upload. Audio goes in as video.
type ResourceType string

const (
	ResourceAuto  ResourceType = "auto"
	ResourceImage ResourceType = "image"
	ResourceVideo ResourceType = "video"
)

// ResourceTypeFor picks the resource type for a MIME type.
func ResourceTypeFor(contentType string) ResourceType {
	switch {
	case strings.HasPrefix(contentType, "audio/"), strings.HasPrefix(contentType, "video/"):
		return ResourceVideo
	case strings.HasPrefix(contentType, "image/"):
		return ResourceImage
	default:
		return ResourceAuto
	}
}

type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// Client uploads files with a fixed upload preset.
type Client struct {
	api    uploadAPI
	preset string
	folder string
}

// New builds a client from configuration. CLOUDINARY_URL wins over the
// individual credentials.
func New(cfg config.CDNConfig) (*Client, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cfg.URL != "" {
		cld, err = cloudinary.NewFromURL(cfg.URL)
	} else {
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}

	return &Client{api: &cld.Upload, preset: cfg.UploadPreset, folder: "arionfm"}, nil
}

// Upload sends r and returns its public HTTPS URL. A nil client reports
// ErrNotConfigured so callers can hold an optional CDN.
func (c *Client) Upload(ctx context.Context, r io.Reader, filename string, rt ResourceType) (string, error) {
	if c == nil {
		return "", ErrNotConfigured
	}

	params := uploader.UploadParams{
		UploadPreset: c.preset,
		ResourceType: string(rt),
		Folder:       c.folder,
	}

	res, err := c.api.Upload(ctx, r, params)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrUpload, filename, err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("%w: %s: %s", ErrUpload, filename, res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", fmt.Errorf("%w: %s: no url returned", ErrUpload, filename)
	}
	return res.SecureURL, nil
}
