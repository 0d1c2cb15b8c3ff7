package models

import (
	"errors"
	"fmt"
)

// ViewState selects the active panel and, with it, the playback queue.
type ViewState string

const (
	ViewHome            ViewState = "HOME"
	ViewLibrary         ViewState = "LIBRARY"
	ViewAlbumDetails    ViewState = "ALBUM_DETAILS"
	ViewPlaylistDetails ViewState = "PLAYLIST_DETAILS"
	ViewSongDetails     ViewState = "SONG_DETAILS"
	ViewArtistProfile   ViewState = "ARTIST_PROFILE"
	ViewAdmin           ViewState = "ADMIN"
)

// ErrUnknownView is returned for view names outside the enumeration.
var ErrUnknownView = errors.New("unknown view")

var views = map[ViewState]struct{}{
	ViewHome:            {},
	ViewLibrary:         {},
	ViewAlbumDetails:    {},
	ViewPlaylistDetails: {},
	ViewSongDetails:     {},
	ViewArtistProfile:   {},
	ViewAdmin:           {},
}

// ParseViewState validates a wire value.
func ParseViewState(raw string) (ViewState, error) {
	v := ViewState(raw)
	if _, ok := views[v]; !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownView, raw)
	}
	return v, nil
}
