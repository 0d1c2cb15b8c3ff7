package models

// Album owns its songs.
type Album struct {
	ID          string `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Artist      string `json:"artist" db:"artist"`
	ReleaseYear int    `json:"releaseYear" db:"release_year"`
	CoverArt    string `json:"coverArt" db:"cover_art"`
	Description string `json:"description" db:"description"`
	Songs       []Song `json:"songs"`
}

// Clone returns a deep copy of the album and its songs.
func (a Album) Clone() Album {
	clone := a
	clone.Songs = cloneSongs(a.Songs)
	return clone
}

// IndexOfSong returns the position of the song with the given id, or -1.
func (a Album) IndexOfSong(id string) int {
	return indexOfSong(a.Songs, id)
}

func cloneSongs(src []Song) []Song {
	if src == nil {
		return nil
	}
	out := make([]Song, len(src))
	for i, s := range src {
		out[i] = s.Clone()
	}
	return out
}

func indexOfSong(songs []Song, id string) int {
	for i, s := range songs {
		if s.ID == id {
			return i
		}
	}
	return -1
}
