package state

import "arionfm/shared/go/models"

// Action is a state transition understood by Reduce.
type Action interface {
	isAction()
}

// Direction picks the neighbour Advance moves to.
type Direction int

const (
	Forward Direction = iota
	Backward
)

type (
	// LoadCatalog replaces the album list.
	LoadCatalog struct{ Albums []models.Album }
	// LoadPlaylists replaces the playlist list.
	LoadPlaylists struct{ Playlists []models.Playlist }
	// SetView switches the active panel.
	SetView struct{ View models.ViewState }
	// OpenAlbum selects an album and shows its details.
	OpenAlbum struct{ AlbumID string }
	// OpenPlaylist selects a playlist and shows its details.
	OpenPlaylist struct{ PlaylistID string }
	// SetSearch updates the library query.
	SetSearch struct{ Query string }
	// ToggleMood activates a mood filter, or clears it when already active.
	ToggleMood struct{ Mood string }
	// PlaySong makes Song current. AlbumID, when set, becomes the current album.
	PlaySong struct {
		Song    models.Song
		AlbumID string
	}
	// Advance moves to the next or previous song in the queue.
	Advance struct{ Direction Direction }
	// PlayLocal plays a file that is not part of the catalog.
	PlayLocal struct{ Song models.Song }
	// PlaylistAdded appends a newly created playlist.
	PlaylistAdded struct{ Playlist models.Playlist }
	// PlaylistRemoved drops a playlist.
	PlaylistRemoved struct{ PlaylistID string }
	// SongAssigned records a song dropped onto a playlist.
	SongAssigned struct {
		PlaylistID string
		Song       models.Song
	}
	// AlbumAdded puts a new album at the front of the catalog.
	AlbumAdded struct{ Album models.Album }
	// AlbumEdited replaces an album's descriptive fields. Songs are kept.
	AlbumEdited struct{ Album models.Album }
	// SongAdded appends an uploaded song to its album.
	SongAdded struct {
		AlbumID string
		Song    models.Song
	}
	// SongRemoved deletes a song from every album and playlist.
	SongRemoved struct{ SongID string }
	// SelectTheme switches the colour theme.
	SelectTheme struct{ ThemeID string }
)

func (LoadCatalog) isAction()     {}
func (LoadPlaylists) isAction()   {}
func (SetView) isAction()         {}
func (OpenAlbum) isAction()       {}
func (OpenPlaylist) isAction()    {}
func (SetSearch) isAction()       {}
func (ToggleMood) isAction()      {}
func (PlaySong) isAction()        {}
func (Advance) isAction()         {}
func (PlayLocal) isAction()       {}
func (PlaylistAdded) isAction()   {}
func (PlaylistRemoved) isAction() {}
func (SongAssigned) isAction()    {}
func (AlbumAdded) isAction()      {}
func (AlbumEdited) isAction()     {}
func (SongAdded) isAction()       {}
func (SongRemoved) isAction()     {}
func (SelectTheme) isAction()     {}
