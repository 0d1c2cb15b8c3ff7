// Package session composes the per-listener controllers: catalog view state,
// playback, drag and drop and the admin gate.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"arionfm/internal/admin"
	"arionfm/internal/app/playlists"
	"arionfm/internal/app/studio"
	"arionfm/internal/playback"
	"arionfm/internal/queue"
	"arionfm/internal/state"
	"arionfm/internal/theme"
	"arionfm/shared/go/logging"
	"arionfm/shared/go/models"
)

const (
	localArtist   = "Local Upload"
	localMood     = "Local"
	localDuration = "--:--"
)

var (
	// ErrSongNotFound is returned for song ids outside the catalog.
	ErrSongNotFound = errors.New("song not found")
	// ErrAlbumNotFound is returned for album ids outside the catalog.
	ErrAlbumNotFound = errors.New("album not found")
	// ErrPlaylistNotFound is returned for unknown playlist ids.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrAdminLocked is returned when the studio view is requested before login.
	ErrAdminLocked = errors.New("admin view is locked")
)

// LikeStore persists the liked-song set.
type LikeStore interface {
	List(ctx context.Context) ([]string, error)
	Toggle(ctx context.Context, songID string) (bool, error)
}

// Deps are the shared services every session uses.
type Deps struct {
	Playlists playlists.Service
	Likes     LikeStore
	Auth      admin.Authenticator
}

// LocalFile is an audio file dropped onto the player. Only the latest is kept.
type LocalFile struct {
	Song        models.Song
	ContentType string
	Data        []byte
}

// Snapshot is everything a client needs to render.
type Snapshot struct {
	State    state.State     `json:"state"`
	Queue    []models.Song   `json:"queue"`
	Moods    []string        `json:"moods"`
	Player   playback.Status `json:"player"`
	Admin    admin.Status    `json:"admin"`
	Liked    []string        `json:"liked"`
	Theme    models.Theme    `json:"theme"`
	Dragging bool            `json:"dragging"`
}

// Session is one listener's controller.
type Session struct {
	ID string

	deps    Deps
	publish func(state.Action)
	now     func() time.Time

	store  *state.Store
	player *playback.Controller
	drag   state.DragSession
	gate   admin.Gate

	// ctl serialises transitions that touch the store and the player or
	// gate together. The ended hook takes it, so Ended must run outside it.
	ctl sync.Mutex

	mu    sync.Mutex
	local *LocalFile

	lastUsed atomic.Int64
}

func newSession(id string, initial state.State, deps Deps, publish func(state.Action)) *Session {
	s := &Session{
		ID:      id,
		deps:    deps,
		publish: publish,
		now:     time.Now,
		store:   state.NewStore(initial),
	}
	s.player = playback.NewController(func() { s.Next() })
	return s
}

func (s *Session) touch(t time.Time) {
	s.lastUsed.Store(t.UnixNano())
}

// unusedSince reports whether the session was last fetched before t.
func (s *Session) unusedSince(t time.Time) bool {
	return s.lastUsed.Load() < t.UnixNano()
}

// release drops the buffered local file so an evicted session holds no media.
func (s *Session) release() {
	s.mu.Lock()
	s.local = nil
	s.mu.Unlock()
}

func (s *Session) apply(a state.Action) state.State {
	return s.store.Dispatch(a)
}

// State returns the current view state.
func (s *Session) State() state.State {
	return s.store.Snapshot()
}

// Player exposes the playback controller.
func (s *Session) Player() *playback.Controller {
	return s.player
}

// Snapshot assembles the render view.
func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	st := s.store.Snapshot()
	liked, err := s.deps.Likes.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list likes: %w", err)
	}
	th, err := theme.Lookup(st.ThemeID)
	if err != nil {
		th, _ = theme.Lookup(theme.DefaultID)
	}
	return Snapshot{
		State:    st,
		Queue:    st.Queue(),
		Moods:    queue.Moods(queue.AllSongs(st.Albums)),
		Player:   s.player.Status(),
		Admin:    s.gate.Status(),
		Liked:    liked,
		Theme:    th,
		Dragging: s.drag.Holding(),
	}, nil
}

// PlaySong starts a catalog song. albumID, when set, becomes the current album.
func (s *Session) PlaySong(songID, albumID string) (state.State, error) {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	st := s.store.Snapshot()
	song, ok := st.FindSong(songID)
	if !ok {
		if local, found := s.LocalFile(songID); found {
			song = local.Song
		} else {
			return st, ErrSongNotFound
		}
	}
	if albumID != "" && !hasAlbum(st, albumID) {
		return st, ErrAlbumNotFound
	}
	return s.play(state.PlaySong{Song: song, AlbumID: albumID}, song), nil
}

// PlayPause toggles playback. With nothing loaded it starts the first song
// of the first album.
func (s *Session) PlayPause() state.State {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	st := s.store.Snapshot()
	if st.CurrentSong == nil {
		if len(st.Albums) > 0 && len(st.Albums[0].Songs) > 0 {
			first := st.Albums[0]
			return s.play(state.PlaySong{Song: first.Songs[0], AlbumID: first.ID}, first.Songs[0])
		}
		return st
	}
	s.player.Toggle()
	return st
}

// Next advances the queue and keeps playing.
func (s *Session) Next() state.State {
	return s.advance(state.Forward)
}

// Prev steps back in the queue. It does nothing at the head.
func (s *Session) Prev() state.State {
	return s.advance(state.Backward)
}

// TrackEnded is reported by the client when the audio element finishes.
func (s *Session) TrackEnded() state.State {
	s.player.Ended()
	return s.store.Snapshot()
}

func (s *Session) advance(dir state.Direction) state.State {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	before, after := s.store.Transition(state.Advance{Direction: dir})
	if before.CurrentSong == nil {
		return after
	}
	q := before.Queue()
	var moved bool
	if dir == state.Backward {
		_, moved = queue.Prev(q, before.CurrentSong.ID)
	} else {
		_, moved = queue.Next(q, before.CurrentSong.ID)
	}

	if moved && after.CurrentSong != nil {
		s.player.Load(*after.CurrentSong)
		s.player.Play()
	}
	return after
}

// play must be called with ctl held.
func (s *Session) play(a state.Action, song models.Song) state.State {
	st := s.apply(a)
	s.player.Load(song)
	s.player.Play()
	return st
}

// SetView switches the active panel. The studio panel needs a login.
func (s *Session) SetView(v models.ViewState) (state.State, error) {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	if v == models.ViewAdmin && !s.gate.Status().Authenticated {
		return s.store.Snapshot(), ErrAdminLocked
	}
	return s.apply(state.SetView{View: v}), nil
}

// OpenAlbum shows an album's details.
func (s *Session) OpenAlbum(id string) (state.State, error) {
	st := s.store.Snapshot()
	if !hasAlbum(st, id) {
		return st, ErrAlbumNotFound
	}
	return s.apply(state.OpenAlbum{AlbumID: id}), nil
}

// OpenPlaylist shows a playlist's details.
func (s *Session) OpenPlaylist(id string) (state.State, error) {
	st := s.store.Snapshot()
	if _, ok := st.FindPlaylist(id); !ok {
		return st, ErrPlaylistNotFound
	}
	return s.apply(state.OpenPlaylist{PlaylistID: id}), nil
}

// SetSearch updates the library query.
func (s *Session) SetSearch(q string) state.State {
	return s.apply(state.SetSearch{Query: q})
}

// ToggleMood toggles a mood filter.
func (s *Session) ToggleMood(mood string) state.State {
	return s.apply(state.ToggleMood{Mood: mood})
}

// SelectTheme switches the palette.
func (s *Session) SelectTheme(id string) (state.State, error) {
	if _, err := theme.Lookup(id); err != nil {
		return s.store.Snapshot(), err
	}
	return s.apply(state.SelectTheme{ThemeID: id}), nil
}

// BeginDrag starts dragging a catalog song.
func (s *Session) BeginDrag(songID string) error {
	song, ok := s.store.Snapshot().FindSong(songID)
	if !ok {
		return ErrSongNotFound
	}
	s.drag.Begin(song)
	return nil
}

// CancelDrag abandons the drag.
func (s *Session) CancelDrag() {
	s.drag.Cancel()
}

// DropOnPlaylist assigns the dragged song to a playlist. The drag ends
// whatever the outcome. With nothing dragged it is a no-op.
func (s *Session) DropOnPlaylist(ctx context.Context, playlistID string) (bool, error) {
	song, ok := s.drag.Take()
	if !ok {
		return false, nil
	}
	if _, found := s.store.Snapshot().FindPlaylist(playlistID); !found {
		return false, ErrPlaylistNotFound
	}

	added, err := s.deps.Playlists.Assign(ctx, playlistID, song)
	if err != nil {
		logging.WithContext(ctx).Error().Err(err).
			Str("playlist_id", playlistID).
			Str("song_id", song.ID).
			Msg("assign song to playlist")
		return false, err
	}
	s.publish(state.SongAssigned{PlaylistID: playlistID, Song: song})
	return added, nil
}

// DropFile plays a local audio file immediately.
func (s *Session) DropFile(name, contentType string, data []byte) (models.Song, error) {
	if !studio.IsAudio(contentType) {
		return models.Song{}, studio.ErrNotAudio
	}

	id := fmt.Sprintf("local-%d", s.now().UnixMilli())
	song := models.Song{
		ID:       id,
		Title:    studio.TitleFromFilename(name),
		Artist:   localArtist,
		Duration: localDuration,
		AudioSrc: "/api/v1/local/" + id,
		Moods:    []string{localMood},
	}

	s.mu.Lock()
	s.local = &LocalFile{Song: song, ContentType: contentType, Data: data}
	s.mu.Unlock()

	s.ctl.Lock()
	defer s.ctl.Unlock()
	s.play(state.PlayLocal{Song: song}, song)
	return song, nil
}

// LocalFile returns the dropped file with the given song id.
func (s *Session) LocalFile(id string) (LocalFile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.local == nil || s.local.Song.ID != id {
		return LocalFile{}, false
	}
	return *s.local, true
}

// Liked lists liked song ids in the order they were liked.
func (s *Session) Liked(ctx context.Context) ([]string, error) {
	return s.deps.Likes.List(ctx)
}

// ToggleLike flips the like on a song.
func (s *Session) ToggleLike(ctx context.Context, songID string) (bool, error) {
	return s.deps.Likes.Toggle(ctx, songID)
}

// AdminStatus reports the gate for rendering.
func (s *Session) AdminStatus() admin.Status {
	return s.gate.Status()
}

// SecretClick counts a hidden-trigger click.
func (s *Session) SecretClick() admin.Status {
	s.gate.SecretClick()
	return s.gate.Status()
}

// Login unlocks the studio for this session and returns the admin token.
func (s *Session) Login(password string) (string, error) {
	return s.gate.Login(s.deps.Auth, password)
}

// DismissLogin hides the login prompt.
func (s *Session) DismissLogin() admin.Status {
	s.gate.DismissLogin()
	return s.gate.Status()
}

// Logout hides the studio again and leaves the studio panel for home.
func (s *Session) Logout() admin.Status {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	s.gate.Logout()
	if s.store.Snapshot().View == models.ViewAdmin {
		s.apply(state.SetView{View: models.ViewHome})
	}
	return s.gate.Status()
}

// CreatePlaylist persists a playlist and shows it to every session.
func (s *Session) CreatePlaylist(ctx context.Context, title string) (models.Playlist, error) {
	p, err := s.deps.Playlists.Create(ctx, title)
	if err != nil {
		return models.Playlist{}, err
	}
	s.publish(state.PlaylistAdded{Playlist: p})
	return p, nil
}

// DeletePlaylist removes a playlist everywhere.
func (s *Session) DeletePlaylist(ctx context.Context, id string) error {
	if err := s.deps.Playlists.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(state.PlaylistRemoved{PlaylistID: id})
	return nil
}

func hasAlbum(st state.State, id string) bool {
	for _, a := range st.Albums {
		if a.ID == id {
			return true
		}
	}
	return false
}
