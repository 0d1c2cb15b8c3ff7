package store

import (
	"context"
	"errors"
	"fmt"

	"arionfm/shared/go/models"
)

// ErrPlaylistNotFound signals a missing playlist record.
var ErrPlaylistNotFound = errors.New("playlist not found")

// ListPlaylists returns all playlists, oldest first, with their songs.
func (s *Store) ListPlaylists(ctx context.Context) ([]models.Playlist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, COALESCE(cover_art, ''), created_at
		FROM playlists
		ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	playlists := make([]models.Playlist, 0)
	for rows.Next() {
		var playlist models.Playlist
		if err := rows.Scan(&playlist.ID, &playlist.Title, &playlist.CoverArt, &playlist.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}
	rows.Close()

	for i := range playlists {
		songs, err := s.listPlaylistSongs(ctx, playlists[i].ID)
		if err != nil {
			return nil, err
		}
		playlists[i].Songs = songs
	}
	return playlists, nil
}

// CreatePlaylist persists a new, empty playlist.
func (s *Store) CreatePlaylist(ctx context.Context, playlist models.Playlist) error {
	return insertPlaylist(ctx, s.db, playlist)
}

// DeletePlaylist removes a playlist and its song references.
func (s *Store) DeletePlaylist(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// AssignSong appends songID to the playlist and backfills an unset playlist
// cover with cover. It reports false when the song was already present.
func (s *Store) AssignSong(ctx context.Context, playlistID, songID, cover string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		rollback(tx)
	}()

	var exists bool
	if err := tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM playlists WHERE id = $1)`, playlistID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check playlist: %w", err)
	}
	if !exists {
		return false, ErrPlaylistNotFound
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO playlist_songs (playlist_id, song_id, position)
		VALUES ($1, $2, (SELECT COALESCE(MAX(position) + 1, 0) FROM playlist_songs WHERE playlist_id = $1))`,
		playlistID, songID); err != nil {
		switch {
		case isUniqueViolation(err):
			return false, nil
		case isForeignKeyViolation(err):
			return false, ErrSongNotFound
		}
		return false, fmt.Errorf("insert playlist song: %w", err)
	}

	if cover != "" {
		if _, err := tx.ExecContext(ctx, `
			UPDATE playlists
			SET cover_art = $2
			WHERE id = $1 AND COALESCE(cover_art, '') = ''`, playlistID, cover); err != nil {
			return false, fmt.Errorf("backfill playlist cover: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit assign: %w", err)
	}
	tx = nil
	return true, nil
}

func (s *Store) listPlaylistSongs(ctx context.Context, playlistID string) ([]models.Song, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+songColumns+`
		FROM playlist_songs ps
		JOIN songs s ON s.id = ps.song_id
		WHERE ps.playlist_id = $1
		ORDER BY ps.position ASC`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("list playlist songs: %w", err)
	}
	defer rows.Close()

	songs := make([]models.Song, 0)
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("scan playlist song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlist songs: %w", err)
	}
	return songs, nil
}

func insertPlaylist(ctx context.Context, ex execer, playlist models.Playlist) error {
	if _, err := ex.ExecContext(ctx, `
		INSERT INTO playlists (id, title, cover_art, created_at)
		VALUES ($1, $2, $3, $4)`,
		playlist.ID, playlist.Title, nullIfEmpty(playlist.CoverArt), playlist.CreatedAt); err != nil {
		return fmt.Errorf("insert playlist: %w", err)
	}
	return nil
}
