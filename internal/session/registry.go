package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"arionfm/internal/app/library"
	"arionfm/internal/state"
	"arionfm/internal/theme"
	"arionfm/shared/go/logging"
)

// Registry owns every live session plus the shared catalog they start from.
type Registry struct {
	deps    Deps
	library library.Service

	catalog *state.Store
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry.
func NewRegistry(lib library.Service, deps Deps) *Registry {
	return &Registry{
		deps:     deps,
		library:  lib,
		catalog:  state.NewStore(state.Initial(theme.DefaultID)),
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Load fetches albums and playlists and hands them to every session.
func (r *Registry) Load(ctx context.Context) error {
	albums, err := r.library.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	r.Broadcast(state.LoadCatalog{Albums: albums})

	lists, err := r.deps.Playlists.List(ctx)
	if err != nil {
		logging.WithContext(ctx).Warn().Err(err).Msg("load playlists, starting with none")
		return nil
	}
	r.Broadcast(state.LoadPlaylists{Playlists: lists})
	return nil
}

// Get returns the session for id, creating it on first use. Every call
// counts as use for idle eviction.
func (r *Registry) Get(id string) *Session {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		s.touch(r.now())
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.touch(r.now())
		return s
	}

	shared := r.catalog.Snapshot()
	initial := state.Initial(theme.DefaultID)
	initial.Albums = shared.Albums
	initial.Playlists = shared.Playlists

	s = newSession(id, initial, r.deps, r.Broadcast)
	s.touch(r.now())
	r.sessions[id] = s
	return s
}

// Sweep evicts sessions not fetched within idle and frees their local media.
// It returns the number evicted.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	var evicted []*Session
	for id, s := range r.sessions {
		if s.unusedSince(cutoff) {
			delete(r.sessions, id)
			evicted = append(evicted, s)
		}
	}
	r.mu.Unlock()

	for _, s := range evicted {
		s.release()
	}
	return len(evicted)
}

// Run sweeps idle sessions every interval until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(idle); n > 0 {
				logging.WithContext(ctx).Debug().
					Int("evicted", n).
					Int("live", r.Len()).
					Msg("evicted idle sessions")
			}
		}
	}
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Catalog returns the shared catalog state.
func (r *Registry) Catalog() state.State {
	return r.catalog.Snapshot()
}

// Broadcast applies a catalog change to the shared state and every session.
func (r *Registry) Broadcast(a state.Action) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.catalog.Dispatch(a)
	for _, s := range r.sessions {
		s.apply(a)
	}
}
