package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"arionfm/shared/go/models"
)

// ErrSongNotFound signals a missing song record.
var ErrSongNotFound = errors.New("song not found")

const songColumns = `s.id, s.title, s.artist, s.duration, s.audio_src, COALESCE(s.cover_art, ''),
		       COALESCE(s.album_id, ''), COALESCE(s.lyrics, ''), s.plays, s.likes, s.moods, s.is_premium`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSong(row rowScanner) (models.Song, error) {
	var song models.Song
	err := row.Scan(&song.ID, &song.Title, &song.Artist, &song.Duration, &song.AudioSrc,
		&song.CoverArt, &song.AlbumID, &song.Lyrics, &song.Plays, &song.Likes,
		pq.Array(&song.Moods), &song.IsPremium)
	return song, err
}

// ListSongs returns every song in insertion order.
func (s *Store) ListSongs(ctx context.Context) ([]models.Song, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+songColumns+`
		FROM songs s
		ORDER BY s.created_at ASC, s.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()

	songs := make([]models.Song, 0)
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}

// GetSong returns a single song by id.
func (s *Store) GetSong(ctx context.Context, id string) (models.Song, error) {
	song, err := scanSong(s.db.QueryRowContext(ctx, `
		SELECT `+songColumns+`
		FROM songs s
		WHERE s.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Song{}, ErrSongNotFound
	}
	if err != nil {
		return models.Song{}, fmt.Errorf("get song: %w", err)
	}
	return song, nil
}

// CreateSong inserts a song. An unknown album id yields ErrAlbumNotFound.
func (s *Store) CreateSong(ctx context.Context, song models.Song) error {
	err := insertSong(ctx, s.db, song)
	if isForeignKeyViolation(err) {
		return ErrAlbumNotFound
	}
	return err
}

// DeleteSong removes a song and, through the foreign key, its playlist entries.
func (s *Store) DeleteSong(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSongNotFound
	}
	return nil
}

func insertSong(ctx context.Context, ex execer, song models.Song) error {
	moods := song.Moods
	if moods == nil {
		moods = []string{}
	}
	if _, err := ex.ExecContext(ctx, `
		INSERT INTO songs (id, title, artist, duration, audio_src, cover_art, album_id, lyrics, plays, likes, moods, is_premium)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		song.ID, song.Title, song.Artist, song.Duration, song.AudioSrc,
		nullIfEmpty(song.CoverArt), nullIfEmpty(song.AlbumID), nullIfEmpty(song.Lyrics),
		song.Plays, song.Likes, pq.Array(moods), song.IsPremium); err != nil {
		return fmt.Errorf("insert song: %w", err)
	}
	return nil
}
