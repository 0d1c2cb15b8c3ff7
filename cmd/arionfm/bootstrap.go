package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"arionfm/internal/app/library"
	"arionfm/internal/app/profile"
	"arionfm/internal/store"
)

// bootstrapCatalog loads the built-in albums, playlist and artist profile
// into an empty database.
func bootstrapCatalog(ctx context.Context, dataStore *store.Store) error {
	count, err := dataStore.CountAlbums(ctx)
	if err != nil {
		return fmt.Errorf("count albums: %w", err)
	}
	if count > 0 {
		return nil
	}

	albums := library.SeedAlbums()
	if err := dataStore.SeedCatalog(ctx, albums, library.SeedPlaylists(time.Now().UTC())); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	if _, err := dataStore.GetProfile(ctx); errors.Is(err, store.ErrProfileNotFound) {
		if _, err := dataStore.UpdateProfile(ctx, profile.Default()); err != nil {
			return fmt.Errorf("seed artist profile: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("read artist profile: %w", err)
	}

	log.Info().Int("albums", len(albums)).Msg("seeded empty catalog")
	return nil
}
