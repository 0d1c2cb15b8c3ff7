package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"arionfm/internal/admin"
	"arionfm/internal/app/studio"
	"arionfm/internal/state"
	"arionfm/shared/go/models"
)

type stubLibrary struct {
	albums []models.Album
	err    error
}

func (s stubLibrary) Catalog(context.Context) ([]models.Album, error) {
	return s.albums, s.err
}

type stubPlaylists struct {
	mu        sync.Mutex
	lists     []models.Playlist
	assigned  []string
	assignErr error
	listErr   error
}

func (s *stubPlaylists) List(context.Context) ([]models.Playlist, error) {
	return s.lists, s.listErr
}

func (s *stubPlaylists) Create(_ context.Context, title string) (models.Playlist, error) {
	if title == "" {
		return models.Playlist{}, errors.New("title required")
	}
	return models.Playlist{ID: "p-" + title, Title: title, Songs: []models.Song{}}, nil
}

func (s *stubPlaylists) Delete(context.Context, string) error {
	return nil
}

func (s *stubPlaylists) Assign(_ context.Context, playlistID string, song models.Song) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.assignErr != nil {
		return false, s.assignErr
	}
	s.assigned = append(s.assigned, playlistID+"/"+song.ID)
	return true, nil
}

type stubLikes struct {
	ids []string
}

func (s *stubLikes) List(context.Context) ([]string, error) {
	return s.ids, nil
}

func (s *stubLikes) Toggle(_ context.Context, id string) (bool, error) {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return false, nil
		}
	}
	s.ids = append(s.ids, id)
	return true, nil
}

type stubAuth struct{}

func (stubAuth) Authenticate(password string) (string, error) {
	if password != "palm" {
		return "", admin.ErrIncorrectPassword
	}
	return "token", nil
}

func testCatalog() []models.Album {
	return []models.Album{
		{ID: "a1", Title: "Tides", Songs: []models.Song{
			{ID: "s1", Title: "Shore", Plays: 10, Moods: []string{"Chill"}},
			{ID: "s2", Title: "Reef", Plays: 30, Moods: []string{"Hype"}},
		}},
		{ID: "a2", Title: "Dunes", Songs: []models.Song{
			{ID: "s3", Title: "Mirage", Plays: 20, Moods: []string{"Chill"}},
		}},
	}
}

func newTestRegistry(t *testing.T, pl *stubPlaylists) *Registry {
	t.Helper()
	if pl == nil {
		pl = &stubPlaylists{lists: []models.Playlist{{ID: "p1", Title: "Island", Songs: []models.Song{}}}}
	}
	reg := NewRegistry(stubLibrary{albums: testCatalog()}, Deps{
		Playlists: pl,
		Likes:     &stubLikes{},
		Auth:      stubAuth{},
	})
	if err := reg.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return reg
}

func TestRegistryGetReturnsSameSession(t *testing.T) {
	reg := newTestRegistry(t, nil)

	var wg sync.WaitGroup
	got := make([]*Session, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = reg.Get("listener")
		}(i)
	}
	wg.Wait()

	for _, s := range got[1:] {
		if s != got[0] {
			t.Fatalf("expected one session per id")
		}
	}
	if reg.Len() != 1 {
		t.Fatalf("Len = %d, want 1", reg.Len())
	}
	if n := len(got[0].State().Albums); n != 2 {
		t.Fatalf("session started with %d albums, want 2", n)
	}
}

func TestLoadFailsWhenCatalogFails(t *testing.T) {
	reg := NewRegistry(stubLibrary{err: errors.New("boom")}, Deps{Playlists: &stubPlaylists{}})
	if err := reg.Load(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPlaySongStartsPlayback(t *testing.T) {
	s := newTestRegistry(t, nil).Get("a")

	st, err := s.PlaySong("s3", "a2")
	if err != nil {
		t.Fatalf("PlaySong: %v", err)
	}
	if st.CurrentSong == nil || st.CurrentSong.ID != "s3" || st.CurrentAlbumID != "a2" {
		t.Fatalf("unexpected state %+v", st)
	}
	status := s.Player().Status()
	if !status.IsPlaying || status.SongID != "s3" {
		t.Fatalf("player = %+v", status)
	}

	if _, err := s.PlaySong("missing", ""); !errors.Is(err, ErrSongNotFound) {
		t.Fatalf("err = %v, want ErrSongNotFound", err)
	}
	if _, err := s.PlaySong("s1", "nope"); !errors.Is(err, ErrAlbumNotFound) {
		t.Fatalf("err = %v, want ErrAlbumNotFound", err)
	}
}

func TestPlayPauseWithoutSongStartsFirstTrack(t *testing.T) {
	s := newTestRegistry(t, nil).Get("a")

	st := s.PlayPause()
	if st.CurrentSong == nil || st.CurrentSong.ID != "s1" {
		t.Fatalf("expected first song of first album, got %+v", st.CurrentSong)
	}
	if !s.Player().IsPlaying() {
		t.Fatalf("expected playing")
	}

	s.PlayPause()
	if s.Player().IsPlaying() {
		t.Fatalf("expected paused after toggle")
	}
}

func TestNextAndPrevFollowAlbumQueue(t *testing.T) {
	s := newTestRegistry(t, nil).Get("a")
	if _, err := s.OpenAlbum("a1"); err != nil {
		t.Fatalf("OpenAlbum: %v", err)
	}
	if _, err := s.PlaySong("s1", "a1"); err != nil {
		t.Fatalf("PlaySong: %v", err)
	}

	if st := s.Prev(); st.CurrentSong.ID != "s1" {
		t.Fatalf("Prev at head moved to %s", st.CurrentSong.ID)
	}
	if st := s.Next(); st.CurrentSong.ID != "s2" {
		t.Fatalf("Next = %s, want s2", st.CurrentSong.ID)
	}
	s.Player().Pause()
	if st := s.Next(); st.CurrentSong.ID != "s1" {
		t.Fatalf("Next should wrap to s1, got %s", st.CurrentSong.ID)
	}
	if !s.Player().IsPlaying() {
		t.Fatalf("Next should resume playback")
	}
}

func TestTrackEndedAdvances(t *testing.T) {
	s := newTestRegistry(t, nil).Get("a")
	s.OpenAlbum("a1")
	s.PlaySong("s1", "a1")

	st := s.TrackEnded()
	if st.CurrentSong == nil || st.CurrentSong.ID != "s2" {
		t.Fatalf("expected s2 after track ended, got %+v", st.CurrentSong)
	}
	if got := s.Player().Status().SongID; got != "s2" {
		t.Fatalf("player loaded %s, want s2", got)
	}
}

func TestOpenPlaylistUnknown(t *testing.T) {
	s := newTestRegistry(t, nil).Get("a")
	if _, err := s.OpenPlaylist("nope"); !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestDropOnPlaylistBroadcasts(t *testing.T) {
	pl := &stubPlaylists{lists: []models.Playlist{{ID: "p1", Title: "Island", Songs: []models.Song{}}}}
	reg := newTestRegistry(t, pl)
	a := reg.Get("a")
	b := reg.Get("b")

	if added, err := a.DropOnPlaylist(context.Background(), "p1"); err != nil || added {
		t.Fatalf("drop without drag = %v, %v", added, err)
	}

	if err := a.BeginDrag("s2"); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	added, err := a.DropOnPlaylist(context.Background(), "p1")
	if err != nil || !added {
		t.Fatalf("DropOnPlaylist = %v, %v", added, err)
	}

	for _, s := range []*Session{a, b} {
		p, _ := s.State().FindPlaylist("p1")
		if !p.Contains("s2") {
			t.Fatalf("session %s does not see the assigned song", s.ID)
		}
	}
	if _, ok := reg.Catalog().FindPlaylist("p1"); !ok {
		t.Fatalf("shared catalog lost the playlist")
	}
	if len(pl.assigned) != 1 || pl.assigned[0] != "p1/s2" {
		t.Fatalf("assigned = %v", pl.assigned)
	}
}

func TestDropOnPlaylistFailureKeepsState(t *testing.T) {
	pl := &stubPlaylists{
		lists:     []models.Playlist{{ID: "p1", Title: "Island", Songs: []models.Song{}}},
		assignErr: errors.New("db down"),
	}
	s := newTestRegistry(t, pl).Get("a")
	s.BeginDrag("s1")

	if _, err := s.DropOnPlaylist(context.Background(), "p1"); err == nil {
		t.Fatalf("expected error")
	}
	p, _ := s.State().FindPlaylist("p1")
	if len(p.Songs) != 0 {
		t.Fatalf("playlist changed after failed assign: %+v", p.Songs)
	}
	snap, _ := s.Snapshot(context.Background())
	if snap.Dragging {
		t.Fatalf("drag should end after a drop")
	}
}

func TestDropFilePlaysLocalAudio(t *testing.T) {
	s := newTestRegistry(t, nil).Get("a")
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }

	if _, err := s.DropFile("cover.png", "image/png", []byte("x")); !errors.Is(err, studio.ErrNotAudio) {
		t.Fatalf("err = %v, want ErrNotAudio", err)
	}

	song, err := s.DropFile("sunset_jam.mp3", "audio/mpeg", []byte("ID3"))
	if err != nil {
		t.Fatalf("DropFile: %v", err)
	}
	if song.ID != "local-1700000000000" || song.AudioSrc != "/api/v1/local/local-1700000000000" {
		t.Fatalf("unexpected song %+v", song)
	}
	if song.Artist != "Local Upload" || !song.HasMood("Local") {
		t.Fatalf("unexpected song %+v", song)
	}

	st := s.State()
	if st.View != models.ViewSongDetails || st.CurrentSong.ID != song.ID {
		t.Fatalf("unexpected state %+v", st)
	}
	f, ok := s.LocalFile(song.ID)
	if !ok || string(f.Data) != "ID3" || f.ContentType != "audio/mpeg" {
		t.Fatalf("LocalFile = %+v, %v", f, ok)
	}
	if !s.Player().IsPlaying() {
		t.Fatalf("expected local file to play")
	}
}

func TestCreatePlaylistReachesEverySession(t *testing.T) {
	reg := newTestRegistry(t, nil)
	a := reg.Get("a")
	b := reg.Get("b")

	p, err := a.CreatePlaylist(context.Background(), "Road")
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}
	if _, ok := b.State().FindPlaylist(p.ID); !ok {
		t.Fatalf("other session missing new playlist")
	}
	if _, ok := reg.Get("c").State().FindPlaylist(p.ID); !ok {
		t.Fatalf("new session missing new playlist")
	}

	if err := b.DeletePlaylist(context.Background(), p.ID); err != nil {
		t.Fatalf("DeletePlaylist: %v", err)
	}
	if _, ok := a.State().FindPlaylist(p.ID); ok {
		t.Fatalf("playlist still visible after delete")
	}
}

func TestSnapshot(t *testing.T) {
	s := newTestRegistry(t, nil).Get("a")
	if _, err := s.ToggleLike(context.Background(), "s1"); err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if _, err := s.SelectTheme("no-such-theme"); err == nil {
		t.Fatalf("expected unknown theme error")
	}

	snap, err := s.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Queue) != 3 || snap.Queue[0].ID != "s2" {
		t.Fatalf("home queue = %+v", snap.Queue)
	}
	if len(snap.Moods) != 2 || snap.Moods[0] != "Chill" {
		t.Fatalf("moods = %v", snap.Moods)
	}
	if len(snap.Liked) != 1 || snap.Liked[0] != "s1" {
		t.Fatalf("liked = %v", snap.Liked)
	}
	if snap.Theme.ID == "" {
		t.Fatalf("expected a theme")
	}
}

func TestAdminGate(t *testing.T) {
	s := newTestRegistry(t, nil).Get("a")
	for i := 0; i < 4; i++ {
		if s.SecretClick().ShowLogin {
			t.Fatalf("login shown after %d clicks", i+1)
		}
	}
	if !s.SecretClick().ShowLogin {
		t.Fatalf("login hidden after five clicks")
	}
	if _, err := s.Login("wrong"); !errors.Is(err, admin.ErrIncorrectPassword) {
		t.Fatalf("err = %v", err)
	}
	token, err := s.Login("  palm ")
	if err != nil || token != "token" {
		t.Fatalf("Login = %q, %v", token, err)
	}
	if s.Logout().Authenticated {
		t.Fatalf("still authenticated after logout")
	}
}

func TestAdminViewRequiresLogin(t *testing.T) {
	s := newTestRegistry(t, nil).Get("a")

	st, err := s.SetView(models.ViewAdmin)
	if !errors.Is(err, ErrAdminLocked) {
		t.Fatalf("err = %v, want ErrAdminLocked", err)
	}
	if st.View != models.ViewHome {
		t.Fatalf("view = %s, want HOME", st.View)
	}

	if _, err := s.Login("palm"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if st, err := s.SetView(models.ViewAdmin); err != nil || st.View != models.ViewAdmin {
		t.Fatalf("SetView = %s, %v", st.View, err)
	}

	s.Logout()
	if got := s.State().View; got != models.ViewHome {
		t.Fatalf("view after logout = %s, want HOME", got)
	}
	if _, err := s.SetView(models.ViewAdmin); !errors.Is(err, ErrAdminLocked) {
		t.Fatalf("err after logout = %v, want ErrAdminLocked", err)
	}
}

func TestLogoutKeepsOtherViews(t *testing.T) {
	s := newTestRegistry(t, nil).Get("a")
	if _, err := s.SetView(models.ViewLibrary); err != nil {
		t.Fatalf("SetView: %v", err)
	}
	s.Logout()
	if got := s.State().View; got != models.ViewLibrary {
		t.Fatalf("view = %s, want LIBRARY", got)
	}
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	reg := newTestRegistry(t, nil)
	clock := time.Unix(1700000000, 0)
	reg.now = func() time.Time { return clock }

	stale := reg.Get("stale")
	song, err := stale.DropFile("demo.mp3", "audio/mpeg", []byte("ID3"))
	if err != nil {
		t.Fatalf("DropFile: %v", err)
	}

	clock = clock.Add(20 * time.Minute)
	reg.Get("fresh")

	clock = clock.Add(15 * time.Minute)
	if n := reg.Sweep(30 * time.Minute); n != 1 {
		t.Fatalf("Sweep evicted %d, want 1", n)
	}
	if reg.Len() != 1 {
		t.Fatalf("Len = %d, want 1", reg.Len())
	}
	if _, ok := stale.LocalFile(song.ID); ok {
		t.Fatalf("evicted session still holds its local file")
	}
	if reg.Get("stale") == stale {
		t.Fatalf("expected a new session after eviction")
	}
}

func TestRunStopsWithContext(t *testing.T) {
	reg := newTestRegistry(t, nil)
	reg.Get("a")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reg.Run(ctx, time.Millisecond, time.Nanosecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for reg.Len() != 0 {
		select {
		case <-deadline:
			t.Fatalf("idle session was never swept")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-deadline:
		t.Fatalf("Run did not return after cancel")
	}
}

func TestConcurrentTransportKeepsPlayerInStep(t *testing.T) {
	s := newTestRegistry(t, nil).Get("a")
	s.OpenAlbum("a1")
	s.PlaySong("s1", "a1")

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 4 {
			case 0:
				s.Next()
			case 1:
				s.Prev()
			case 2:
				s.TrackEnded()
			default:
				s.PlaySong("s2", "a1")
			}
		}(i)
	}
	wg.Wait()

	if got, want := s.Player().Status().SongID, s.State().CurrentSong.ID; got != want {
		t.Fatalf("player loaded %s, state has %s", got, want)
	}
}

func TestBroadcastDoesNotResetSelection(t *testing.T) {
	reg := newTestRegistry(t, nil)
	s := reg.Get("a")
	s.OpenAlbum("a2")

	reg.Broadcast(state.AlbumEdited{Album: models.Album{ID: "a2", Title: "Dunes II"}})

	st := s.State()
	if st.CurrentAlbumID != "a2" || st.CurrentAlbum().Title != "Dunes II" {
		t.Fatalf("unexpected state %+v", st)
	}
	if len(st.CurrentAlbum().Songs) != 1 {
		t.Fatalf("edit dropped songs")
	}
}
