package library

import (
	"context"
	"fmt"

	"arionfm/shared/go/logging"
	"arionfm/shared/go/models"
)

// Store captures the persistence needs for loading the catalog.
type Store interface {
	ListAlbums(ctx context.Context) ([]models.Album, error)
	ListSongs(ctx context.Context) ([]models.Song, error)
}

// Service loads the album catalog.
type Service interface {
	Catalog(ctx context.Context) ([]models.Album, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

// Catalog returns albums with their songs. When the remote load fails the
// built-in catalogue is served instead.
func (s *service) Catalog(ctx context.Context) ([]models.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	albums, err := s.load(ctx)
	if err != nil {
		logging.WithContext(ctx).Warn().Err(err).Msg("catalog load failed, serving built-in albums")
		return SeedAlbums(), nil
	}
	return albums, nil
}

func (s *service) load(ctx context.Context) ([]models.Album, error) {
	albums, err := s.store.ListAlbums(ctx)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	songs, err := s.store.ListSongs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	if len(albums) == 0 {
		albums = SeedAlbums()
	}
	return Distribute(albums, songs), nil
}

// Distribute places songs into their albums. Songs whose album is unknown go
// to the first album, duplicates are skipped and a missing cover falls back
// to the album cover.
func Distribute(albums []models.Album, songs []models.Song) []models.Album {
	out := make([]models.Album, len(albums))
	index := make(map[string]int, len(albums))
	for i, a := range albums {
		out[i] = a.Clone()
		if out[i].Songs == nil {
			out[i].Songs = []models.Song{}
		}
		index[a.ID] = i
	}
	if len(out) == 0 {
		return out
	}

	for _, song := range songs {
		i, ok := index[song.AlbumID]
		if !ok {
			i = 0
		}
		album := &out[i]
		if album.IndexOfSong(song.ID) >= 0 {
			continue
		}
		song = song.Clone()
		song.AlbumID = album.ID
		if song.CoverArt == "" {
			song.CoverArt = album.CoverArt
		}
		album.Songs = append(album.Songs, song)
	}
	return out
}
