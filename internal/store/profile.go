package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"arionfm/shared/go/models"
)

// ErrProfileNotFound means the singleton profile row has not been written yet.
var ErrProfileNotFound = errors.New("profile not found")

// GetProfile loads the artist profile.
func (s *Store) GetProfile(ctx context.Context) (models.ArtistProfile, error) {
	var (
		profile models.ArtistProfile
		stats   []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT name, tagline, bio, stats, image_url, updated_at
		FROM artist_profile
		WHERE id = $1`, models.ProfileRowID).
		Scan(&profile.Name, &profile.Tagline, &profile.Bio, &stats, &profile.Image, &profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ArtistProfile{}, ErrProfileNotFound
	}
	if err != nil {
		return models.ArtistProfile{}, fmt.Errorf("get profile: %w", err)
	}
	if len(stats) > 0 {
		if err := json.Unmarshal(stats, &profile.Stats); err != nil {
			return models.ArtistProfile{}, fmt.Errorf("decode profile stats: %w", err)
		}
	}
	return profile, nil
}

// UpdateProfile writes the singleton profile row, creating it when missing.
func (s *Store) UpdateProfile(ctx context.Context, profile models.ArtistProfile) (models.ArtistProfile, error) {
	stats := profile.Stats
	if stats == nil {
		stats = []models.Stat{}
	}
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return models.ArtistProfile{}, fmt.Errorf("encode profile stats: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, `
		INSERT INTO artist_profile (id, name, tagline, bio, stats, image_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, tagline = EXCLUDED.tagline, bio = EXCLUDED.bio,
		    stats = EXCLUDED.stats, image_url = EXCLUDED.image_url, updated_at = NOW()
		RETURNING updated_at`,
		models.ProfileRowID, profile.Name, profile.Tagline, profile.Bio, statsJSON, profile.Image,
	).Scan(&profile.UpdatedAt); err != nil {
		return models.ArtistProfile{}, fmt.Errorf("upsert profile: %w", err)
	}
	profile.Stats = stats
	return profile, nil
}
