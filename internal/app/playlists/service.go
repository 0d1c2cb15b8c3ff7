package playlists

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"arionfm/shared/go/models"
)

// ErrTitleRequired rejects playlists without a name.
var ErrTitleRequired = errors.New("playlist title is required")

// Store captures the persistence needs for playlist workflows.
type Store interface {
	ListPlaylists(ctx context.Context) ([]models.Playlist, error)
	CreatePlaylist(ctx context.Context, playlist models.Playlist) error
	DeletePlaylist(ctx context.Context, id string) error
	AssignSong(ctx context.Context, playlistID, songID, cover string) (bool, error)
}

// Service coordinates playlist-related operations.
type Service interface {
	List(ctx context.Context) ([]models.Playlist, error)
	Create(ctx context.Context, title string) (models.Playlist, error)
	Delete(ctx context.Context, id string) error
	Assign(ctx context.Context, playlistID string, song models.Song) (bool, error)
}

type service struct {
	store Store
	now   func() time.Time
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store, now: time.Now}
}

func (s *service) List(ctx context.Context) ([]models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPlaylists(ctx)
}

func (s *service) Create(ctx context.Context, title string) (models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return models.Playlist{}, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Playlist{}, ErrTitleRequired
	}

	playlist := models.Playlist{
		ID:        uuid.NewString(),
		Title:     title,
		Songs:     []models.Song{},
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.CreatePlaylist(ctx, playlist); err != nil {
		return models.Playlist{}, err
	}
	return playlist, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeletePlaylist(ctx, id)
}

// Assign persists song on the playlist. It reports false when the song was
// already there.
func (s *service) Assign(ctx context.Context, playlistID string, song models.Song) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.store.AssignSong(ctx, playlistID, song.ID, song.CoverArt)
}
