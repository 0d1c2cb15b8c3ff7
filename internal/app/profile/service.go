package profile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"arionfm/internal/cdn"
	"arionfm/internal/imageedit"
	"arionfm/internal/store"
	"arionfm/shared/go/logging"
	"arionfm/shared/go/models"
)

// Store captures the persistence needs for the artist profile.
type Store interface {
	GetProfile(ctx context.Context) (models.ArtistProfile, error)
	UpdateProfile(ctx context.Context, profile models.ArtistProfile) (models.ArtistProfile, error)
}

// Uploader stores media and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, filename string, rt cdn.ResourceType) (string, error)
}

// Service reads and edits the artist profile.
type Service interface {
	Get(ctx context.Context) (models.ArtistProfile, error)
	Update(ctx context.Context, profile models.ArtistProfile) (models.ArtistProfile, error)
	EditImage(ctx context.Context, src io.Reader, adj imageedit.Adjustments) (models.ArtistProfile, error)
}

type service struct {
	store    Store
	uploader Uploader
}

// New constructs a Service. uploader may be a nil *cdn.Client, in which case
// edited images are stored inline.
func New(store Store, uploader Uploader) Service {
	return &service{store: store, uploader: uploader}
}

// Default is the profile shown before one has been saved.
func Default() models.ArtistProfile {
	return models.ArtistProfile{
		Image:   "https://images.unsplash.com/photo-1614613535308-eb5fbd3d2c17?q=80&w=800&auto=format&fit=crop",
		Name:    "ARION SOLIVION 🤖",
		Tagline: "The Architect of Sound",
		Bio:     "Welcome to my digital island. Here, logic meets emotion, and every algorithm sings a lullaby to the ocean.",
		Stats: []models.Stat{
			{Value: "1.2M", Label: "Monthly Guests"},
			{Value: "45M", Label: "Total Echoes"},
			{Value: "#1", Label: "In The Matrix"},
		},
	}
}

func (s *service) Get(ctx context.Context) (models.ArtistProfile, error) {
	if err := ctx.Err(); err != nil {
		return models.ArtistProfile{}, err
	}
	p, err := s.store.GetProfile(ctx)
	if errors.Is(err, store.ErrProfileNotFound) {
		return Default(), nil
	}
	return p, err
}

func (s *service) Update(ctx context.Context, p models.ArtistProfile) (models.ArtistProfile, error) {
	if err := ctx.Err(); err != nil {
		return models.ArtistProfile{}, err
	}
	p.Name = strings.TrimSpace(p.Name)
	if err := validateProfile(p); err != nil {
		return models.ArtistProfile{}, err
	}
	return s.store.UpdateProfile(ctx, p)
}

// EditImage renders the adjusted photo and saves it as the profile image.
func (s *service) EditImage(ctx context.Context, src io.Reader, adj imageedit.Adjustments) (models.ArtistProfile, error) {
	if err := ctx.Err(); err != nil {
		return models.ArtistProfile{}, err
	}
	if err := adj.Validate(); err != nil {
		return models.ArtistProfile{}, err
	}

	img, err := imageedit.Load(src)
	if err != nil {
		return models.ArtistProfile{}, err
	}
	rendered := imageedit.Render(img, adj)

	imageURL, err := s.publish(ctx, rendered)
	if err != nil {
		return models.ArtistProfile{}, err
	}

	current, err := s.Get(ctx)
	if err != nil {
		return models.ArtistProfile{}, err
	}
	current.Image = imageURL
	return s.store.UpdateProfile(ctx, current)
}

func (s *service) publish(ctx context.Context, rendered image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imageedit.EncodeJPEG(&buf, rendered); err != nil {
		return "", err
	}

	if s.uploader != nil {
		url, err := s.uploader.Upload(ctx, bytes.NewReader(buf.Bytes()), "profile.jpg", cdn.ResourceImage)
		switch {
		case err == nil:
			return url, nil
		case !errors.Is(err, cdn.ErrNotConfigured):
			return "", fmt.Errorf("upload profile image: %w", err)
		}
		logging.WithContext(ctx).Debug().Msg("media CDN not configured, storing profile image inline")
	}
	return imageedit.JPEGDataURL(buf.Bytes()), nil
}

func validateProfile(p models.ArtistProfile) error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&p.Tagline, validation.Length(0, 200)),
		validation.Field(&p.Stats, validation.Length(0, 6)),
	)
}
