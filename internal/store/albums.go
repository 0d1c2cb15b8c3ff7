package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"arionfm/shared/go/models"
)

// ErrAlbumNotFound signals a missing album record.
var ErrAlbumNotFound = errors.New("album not found")

// ListAlbums returns albums newest first, without songs.
func (s *Store) ListAlbums(ctx context.Context) ([]models.Album, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, artist, release_year, cover_art, description
		FROM albums
		ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()

	albums := make([]models.Album, 0)
	for rows.Next() {
		var album models.Album
		if err := rows.Scan(&album.ID, &album.Title, &album.Artist, &album.ReleaseYear,
			&album.CoverArt, &album.Description); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		albums = append(albums, album)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate albums: %w", err)
	}
	return albums, nil
}

// GetAlbum returns a single album without songs.
func (s *Store) GetAlbum(ctx context.Context, id string) (models.Album, error) {
	var album models.Album
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, artist, release_year, cover_art, description
		FROM albums
		WHERE id = $1`, id).Scan(&album.ID, &album.Title, &album.Artist, &album.ReleaseYear,
		&album.CoverArt, &album.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Album{}, ErrAlbumNotFound
	}
	if err != nil {
		return models.Album{}, fmt.Errorf("get album: %w", err)
	}
	return album, nil
}

// CountAlbums reports how many albums exist.
func (s *Store) CountAlbums(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM albums`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count albums: %w", err)
	}
	return n, nil
}

// CreateAlbum inserts the album row. Songs are stored separately.
func (s *Store) CreateAlbum(ctx context.Context, album models.Album) error {
	return insertAlbum(ctx, s.db, album)
}

// UpdateAlbum overwrites the album's descriptive fields.
func (s *Store) UpdateAlbum(ctx context.Context, album models.Album) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE albums
		SET title = $1, artist = $2, release_year = $3, cover_art = $4, description = $5
		WHERE id = $6`,
		album.Title, album.Artist, album.ReleaseYear, album.CoverArt, album.Description, album.ID)
	if err != nil {
		return fmt.Errorf("update album: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

// SeedCatalog writes albums, their songs and the given playlists in one
// transaction so they share a creation timestamp.
func (s *Store) SeedCatalog(ctx context.Context, albums []models.Album, playlists []models.Playlist) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		rollback(tx)
	}()

	for _, album := range albums {
		if err := insertAlbum(ctx, tx, album); err != nil {
			return err
		}
		for _, song := range album.Songs {
			if song.AlbumID == "" {
				song.AlbumID = album.ID
			}
			if err := insertSong(ctx, tx, song); err != nil {
				return err
			}
		}
	}

	for _, playlist := range playlists {
		if err := insertPlaylist(ctx, tx, playlist); err != nil {
			return err
		}
		for i, song := range playlist.Songs {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO playlist_songs (playlist_id, song_id, position)
				VALUES ($1, $2, $3)`, playlist.ID, song.ID, i); err != nil {
				return fmt.Errorf("insert playlist song: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	tx = nil
	return nil
}

func insertAlbum(ctx context.Context, ex execer, album models.Album) error {
	if _, err := ex.ExecContext(ctx, `
		INSERT INTO albums (id, title, artist, release_year, cover_art, description)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		album.ID, album.Title, album.Artist, album.ReleaseYear, album.CoverArt, album.Description); err != nil {
		return fmt.Errorf("insert album: %w", err)
	}
	return nil
}
