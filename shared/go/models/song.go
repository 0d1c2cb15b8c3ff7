package models

// Song is a playable track. Only Plays and Likes change after load; whether
// the listener liked a song is tracked outside the song.
type Song struct {
	ID        string   `json:"id" db:"id"`
	Title     string   `json:"title" db:"title"`
	Artist    string   `json:"artist" db:"artist"`
	Duration  string   `json:"duration" db:"duration"`
	AudioSrc  string   `json:"audioSrc" db:"audio_src"`
	CoverArt  string   `json:"coverArt,omitempty" db:"cover_art"`
	AlbumID   string   `json:"albumId,omitempty" db:"album_id"`
	Lyrics    string   `json:"lyrics,omitempty" db:"lyrics"`
	Plays     int      `json:"plays" db:"plays"`
	Likes     int      `json:"likes" db:"likes"`
	Moods     []string `json:"moods" db:"moods"`
	IsPremium bool     `json:"isPremium,omitempty" db:"is_premium"`
}

// HasMood reports whether mood is one of the song's tags.
func (s Song) HasMood(mood string) bool {
	for _, m := range s.Moods {
		if m == mood {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with s.
func (s Song) Clone() Song {
	clone := s
	if s.Moods != nil {
		clone.Moods = make([]string, len(s.Moods))
		copy(clone.Moods, s.Moods)
	}
	return clone
}
