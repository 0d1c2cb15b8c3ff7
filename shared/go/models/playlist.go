package models

import "time"

// Playlist holds references to songs that also live in their albums.
// A playlist never contains the same song id twice.
type Playlist struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Songs     []Song    `json:"songs"`
	CoverArt  string    `json:"coverArt,omitempty" db:"cover_art"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Contains reports whether the playlist already references the song.
func (p Playlist) Contains(songID string) bool {
	return indexOfSong(p.Songs, songID) >= 0
}

// WithSong returns a copy with song appended, or the playlist unchanged when
// the song is already present. An unset cover is taken from the song.
func (p Playlist) WithSong(song Song) (Playlist, bool) {
	if p.Contains(song.ID) {
		return p, false
	}
	out := p.Clone()
	out.Songs = append(out.Songs, song.Clone())
	if out.CoverArt == "" {
		out.CoverArt = song.CoverArt
	}
	return out, true
}

// Clone returns a copy that shares no slices with p.
func (p Playlist) Clone() Playlist {
	clone := p
	clone.Songs = cloneSongs(p.Songs)
	return clone
}
