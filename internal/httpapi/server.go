package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"arionfm/internal/admin"
	"arionfm/internal/app/playlists"
	"arionfm/internal/app/studio"
	"arionfm/internal/cdn"
	"arionfm/internal/imageedit"
	"arionfm/internal/playback"
	"arionfm/internal/session"
	"arionfm/internal/store"
	"arionfm/internal/theme"
	"arionfm/internal/visualizer"
	"arionfm/shared/go/logging"
	"arionfm/shared/go/middleware"
	"arionfm/shared/go/models"
)

const (
	// SessionHeader carries the listener session id.
	SessionHeader = "X-Session-ID"
	// sessionParam is the fallback for clients that cannot set headers
	// (audio elements, EventSource).
	sessionParam   = "session"
	defaultSession = "default"

	maxUploadBytes = 64 << 20
)

// ProfileService exposes the artist profile workflows.
type ProfileService interface {
	Get(ctx context.Context) (models.ArtistProfile, error)
	Update(ctx context.Context, profile models.ArtistProfile) (models.ArtistProfile, error)
	EditImage(ctx context.Context, src io.Reader, adj imageedit.Adjustments) (models.ArtistProfile, error)
}

// StudioService exposes the admin catalogue workflows.
type StudioService interface {
	CreateAlbum(ctx context.Context, in studio.AlbumInput) (models.Album, error)
	EditAlbum(ctx context.Context, in studio.AlbumEdit) (models.Album, error)
	UploadSong(ctx context.Context, in studio.SongInput) (models.Song, error)
	DeleteSong(ctx context.Context, id string) error
	Download(ctx context.Context, songID string) (studio.Download, error)
}

// Server wires HTTP handlers to the listener sessions and services.
type Server struct {
	sessions *session.Registry
	profile  ProfileService
	studio   StudioService
	verifier middleware.TokenVerifier

	frameInterval time.Duration
	newVisualizer func() *visualizer.Visualizer
}

// New configures a Server.
func New(sessions *session.Registry, profile ProfileService, studio StudioService, verifier middleware.TokenVerifier) *Server {
	return &Server{
		sessions:      sessions,
		profile:       profile,
		studio:        studio,
		verifier:      verifier,
		frameInterval: visualizer.FrameInterval,
		newVisualizer: visualizer.NewSeeded,
	}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	adminOnly := middleware.RequireAdmin(s.verifier)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Catalog and navigation
	mux.HandleFunc("GET /api/v1/state", s.handleState)
	mux.HandleFunc("GET /api/v1/catalog", s.handleCatalog)
	mux.HandleFunc("GET /api/v1/library", s.handleLibrary)
	mux.HandleFunc("PUT /api/v1/library/search", s.handleSearch)
	mux.HandleFunc("POST /api/v1/library/mood", s.handleToggleMood)
	mux.HandleFunc("GET /api/v1/moods", s.handleMoods)
	mux.HandleFunc("GET /api/v1/queue", s.handleQueue)
	mux.HandleFunc("PUT /api/v1/view", s.handleSetView)
	mux.HandleFunc("POST /api/v1/albums/{id}/open", s.handleOpenAlbum)
	mux.HandleFunc("POST /api/v1/playlists/{id}/open", s.handleOpenPlaylist)

	// Player
	mux.HandleFunc("GET /api/v1/player", s.handlePlayerStatus)
	mux.HandleFunc("POST /api/v1/player/play", s.handlePlay)
	mux.HandleFunc("POST /api/v1/player/toggle", s.handlePlayPause)
	mux.HandleFunc("POST /api/v1/player/next", s.handleNext)
	mux.HandleFunc("POST /api/v1/player/prev", s.handlePrev)
	mux.HandleFunc("POST /api/v1/player/ended", s.handleEnded)
	mux.HandleFunc("POST /api/v1/player/seek", s.handleSeek)
	mux.HandleFunc("POST /api/v1/player/progress", s.handleProgress)
	mux.HandleFunc("PUT /api/v1/player/volume", s.handleVolume)
	mux.HandleFunc("GET /api/v1/visualizer", s.handleVisualizer)

	// Drag and drop
	mux.HandleFunc("POST /api/v1/drag", s.handleBeginDrag)
	mux.HandleFunc("DELETE /api/v1/drag", s.handleCancelDrag)
	mux.HandleFunc("POST /api/v1/playlists/{id}/drop", s.handleDrop)
	mux.HandleFunc("POST /api/v1/local", s.handleDropFile)
	mux.HandleFunc("GET /api/v1/local/{id}", s.handleLocalMedia)

	// Likes and playlists
	mux.HandleFunc("GET /api/v1/likes", s.handleLikes)
	mux.HandleFunc("POST /api/v1/likes/{songId}", s.handleToggleLike)
	mux.HandleFunc("GET /api/v1/playlists", s.handleListPlaylists)
	mux.HandleFunc("POST /api/v1/playlists", s.handleCreatePlaylist)
	mux.HandleFunc("DELETE /api/v1/playlists/{id}", s.handleDeletePlaylist)

	// Themes
	mux.HandleFunc("GET /api/v1/themes", s.handleThemes)
	mux.HandleFunc("PUT /api/v1/theme", s.handleSelectTheme)

	// Admin gate
	mux.HandleFunc("POST /api/v1/admin/click", s.handleSecretClick)
	mux.HandleFunc("POST /api/v1/admin/login", s.handleLogin)
	mux.HandleFunc("POST /api/v1/admin/dismiss", s.handleDismissLogin)
	mux.HandleFunc("POST /api/v1/admin/logout", s.handleLogout)

	// Artist profile
	mux.HandleFunc("GET /api/v1/profile", s.handleGetProfile)
	mux.Handle("PUT /api/v1/profile", adminOnly(http.HandlerFunc(s.handleUpdateProfile)))
	mux.Handle("POST /api/v1/profile/image", adminOnly(http.HandlerFunc(s.handleEditProfileImage)))

	// Studio
	mux.Handle("POST /api/v1/studio/albums", adminOnly(http.HandlerFunc(s.handleCreateAlbum)))
	mux.Handle("PATCH /api/v1/studio/albums/{id}", adminOnly(http.HandlerFunc(s.handleEditAlbum)))
	mux.Handle("POST /api/v1/studio/songs", adminOnly(http.HandlerFunc(s.handleUploadSong)))
	mux.Handle("DELETE /api/v1/studio/songs/{id}", adminOnly(http.HandlerFunc(s.handleDeleteSong)))
	mux.HandleFunc("GET /api/v1/songs/{id}/download", s.handleDownload)

	return mux
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// session resolves the caller's session and tags the request context with it.
func (s *Server) session(r *http.Request) (*session.Session, *http.Request) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		id = r.URL.Query().Get(sessionParam)
	}
	if id == "" {
		id = defaultSession
	}
	return s.sessions.Get(id), r.WithContext(logging.WithSession(r.Context(), id))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return false
	}
	return true
}

// writeError maps domain errors onto status codes. Anything unrecognised is
// logged and reported as a server error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		fieldErrs validation.Errors
		ruleErr   validation.Error
	)
	switch {
	case errors.As(err, &fieldErrs):
		fields := make(map[string]string, len(fieldErrs))
		for name, e := range fieldErrs {
			fields[name] = e.Error()
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields})
		return
	case errors.As(err, &ruleErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, playlists.ErrTitleRequired),
		errors.Is(err, studio.ErrAlbumTitleRequired),
		errors.Is(err, studio.ErrFileRequired),
		errors.Is(err, studio.ErrAlbumRequired),
		errors.Is(err, playback.ErrInvalidSeek),
		errors.Is(err, playback.ErrInvalidVolume),
		errors.Is(err, theme.ErrUnknownTheme),
		errors.Is(err, models.ErrUnknownView),
		errors.Is(err, imageedit.ErrUnsupportedImage):
		status = http.StatusBadRequest
	case errors.Is(err, studio.ErrNotAudio), errors.Is(err, studio.ErrNotImage):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, admin.ErrIncorrectPassword):
		status = http.StatusUnauthorized
	case errors.Is(err, session.ErrAdminLocked):
		status = http.StatusForbidden
	case errors.Is(err, session.ErrSongNotFound), errors.Is(err, store.ErrSongNotFound),
		errors.Is(err, session.ErrAlbumNotFound), errors.Is(err, store.ErrAlbumNotFound),
		errors.Is(err, session.ErrPlaylistNotFound), errors.Is(err, store.ErrPlaylistNotFound):
		status = http.StatusNotFound
	case errors.Is(err, cdn.ErrNotConfigured):
		status = http.StatusServiceUnavailable
	case errors.Is(err, cdn.ErrUpload):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		logging.WithContext(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
