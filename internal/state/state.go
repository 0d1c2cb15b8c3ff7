// Package state holds one listener's view of the catalog and player selection.
// All changes go through Reduce so every snapshot is immutable.
package state

import (
	"sync"

	"arionfm/internal/queue"
	"arionfm/shared/go/models"
)

// State is the listener-facing application state. Selections are held by id
// so edits to albums and playlists show through.
type State struct {
	Albums            []models.Album    `json:"albums"`
	Playlists         []models.Playlist `json:"playlists"`
	View              models.ViewState  `json:"view"`
	CurrentAlbumID    string            `json:"currentAlbumId,omitempty"`
	CurrentPlaylistID string            `json:"currentPlaylistId,omitempty"`
	CurrentSong       *models.Song      `json:"currentSong,omitempty"`
	SearchQuery       string            `json:"searchQuery"`
	ActiveMood        string            `json:"activeMood,omitempty"`
	ThemeID           string            `json:"themeId"`
}

// Initial returns the state of a fresh session on the home view.
func Initial(themeID string) State {
	return State{
		Albums:    []models.Album{},
		Playlists: []models.Playlist{},
		View:      models.ViewHome,
		ThemeID:   themeID,
	}
}

// CurrentAlbum resolves the selected album, or nil.
func (s State) CurrentAlbum() *models.Album {
	if s.CurrentAlbumID == "" {
		return nil
	}
	for i := range s.Albums {
		if s.Albums[i].ID == s.CurrentAlbumID {
			return &s.Albums[i]
		}
	}
	return nil
}

// CurrentPlaylist resolves the selected playlist, or nil.
func (s State) CurrentPlaylist() *models.Playlist {
	if s.CurrentPlaylistID == "" {
		return nil
	}
	for i := range s.Playlists {
		if s.Playlists[i].ID == s.CurrentPlaylistID {
			return &s.Playlists[i]
		}
	}
	return nil
}

// Queue returns the songs next and previous navigate over.
func (s State) Queue() []models.Song {
	return queue.Resolve(s.queueContext())
}

// FindSong looks a song up across all albums.
func (s State) FindSong(id string) (models.Song, bool) {
	for _, a := range s.Albums {
		if i := a.IndexOfSong(id); i >= 0 {
			return a.Songs[i], true
		}
	}
	return models.Song{}, false
}

// FindPlaylist looks a playlist up by id.
func (s State) FindPlaylist(id string) (models.Playlist, bool) {
	for _, p := range s.Playlists {
		if p.ID == id {
			return p, true
		}
	}
	return models.Playlist{}, false
}

func (s State) queueContext() queue.Context {
	return queue.Context{
		View:       s.View,
		Album:      s.CurrentAlbum(),
		Playlist:   s.CurrentPlaylist(),
		Query:      s.SearchQuery,
		ActiveMood: s.ActiveMood,
		Albums:     s.Albums,
	}
}

// Store serialises dispatches for one session. Snapshots share backing
// arrays with the store and must be treated as read-only.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore wraps an initial state.
func NewStore(initial State) *Store {
	return &Store{state: initial}
}

// Dispatch applies the action and returns the resulting snapshot.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
	return s.state
}

// Transition applies the action and returns the states on either side of it.
func (s *Store) Transition(a Action) (before, after State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before = s.state
	s.state = Reduce(s.state, a)
	return before, s.state
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
