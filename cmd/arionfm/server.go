package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"arionfm/internal/admin"
	"arionfm/internal/app/library"
	"arionfm/internal/app/playlists"
	"arionfm/internal/app/profile"
	"arionfm/internal/app/studio"
	"arionfm/internal/cdn"
	"arionfm/internal/httpapi"
	"arionfm/internal/likes"
	"arionfm/internal/session"
	"arionfm/internal/store"
	"arionfm/shared/go/config"
	"arionfm/shared/go/middleware"
)

// newHTTPHandler wires the services and returns the routed handler along
// with the session registry, whose idle sweep the caller owns.
func newHTTPHandler(ctx context.Context, cfg *config.Config, dataStore *store.Store, likeStore *likes.Store) (http.Handler, *session.Registry, error) {
	issuer, err := admin.NewIssuer(cfg.Admin.Password, cfg.Admin.TokenSecret, admin.DefaultTokenTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("admin issuer: %w", err)
	}

	media, err := cdn.New(cfg.CDN)
	switch {
	case errors.Is(err, cdn.ErrNotConfigured):
		log.Warn().Msg("media CDN not configured, uploads disabled")
	case err != nil:
		return nil, nil, err
	}

	// Base services
	librarySvc := library.New(dataStore)
	playlistSvc := playlists.New(dataStore)
	profileSvc := profile.New(dataStore, media)
	studioSvc := studio.New(dataStore, media)

	registry := session.NewRegistry(librarySvc, session.Deps{
		Playlists: playlistSvc,
		Likes:     likeStore,
		Auth:      issuer,
	})
	if err := registry.Load(ctx); err != nil {
		return nil, nil, err
	}

	routes := httpapi.New(registry, profileSvc, studioSvc, issuer).Routes()
	return middleware.Chain(routes,
		middleware.Recovery(),
		middleware.RequestLogging(),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	), registry, nil
}
