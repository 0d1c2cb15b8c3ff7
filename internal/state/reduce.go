package state

import (
	"arionfm/internal/queue"
	"arionfm/shared/go/models"
)

// Reduce returns the state after applying a. It never mutates s.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case LoadCatalog:
		s.Albums = cloneAlbums(a.Albums)
	case LoadPlaylists:
		s.Playlists = clonePlaylists(a.Playlists)
	case SetView:
		s.View = a.View
	case OpenAlbum:
		s.CurrentAlbumID = a.AlbumID
		s.View = models.ViewAlbumDetails
	case OpenPlaylist:
		s.CurrentPlaylistID = a.PlaylistID
		s.View = models.ViewPlaylistDetails
	case SetSearch:
		s.SearchQuery = a.Query
	case ToggleMood:
		if s.ActiveMood == a.Mood {
			s.ActiveMood = ""
		} else {
			s.ActiveMood = a.Mood
		}
	case PlaySong:
		s.CurrentSong = songPtr(a.Song)
		if a.AlbumID != "" {
			s.CurrentAlbumID = a.AlbumID
		} else if s.View != models.ViewPlaylistDetails {
			s.CurrentAlbumID = ""
		}
	case Advance:
		s = advance(s, a.Direction)
	case PlayLocal:
		s.CurrentSong = songPtr(a.Song)
		s.View = models.ViewSongDetails
	case PlaylistAdded:
		s.Playlists = append(clonePlaylists(s.Playlists), a.Playlist.Clone())
	case PlaylistRemoved:
		s.Playlists = removePlaylist(s.Playlists, a.PlaylistID)
		if s.CurrentPlaylistID == a.PlaylistID {
			s.CurrentPlaylistID = ""
			s.View = models.ViewLibrary
		}
	case SongAssigned:
		s.Playlists = assignSong(s.Playlists, a.PlaylistID, a.Song)
	case AlbumAdded:
		albums := make([]models.Album, 0, len(s.Albums)+1)
		albums = append(albums, a.Album.Clone())
		s.Albums = append(albums, cloneAlbums(s.Albums)...)
	case AlbumEdited:
		s.Albums = editAlbum(s.Albums, a.Album)
	case SongAdded:
		s.Albums = addSong(s.Albums, a.AlbumID, a.Song)
	case SongRemoved:
		s.Albums = removeSongFromAlbums(s.Albums, a.SongID)
		s.Playlists = removeSongFromPlaylists(s.Playlists, a.SongID)
	case SelectTheme:
		s.ThemeID = a.ThemeID
	}
	return s
}

func advance(s State, dir Direction) State {
	if s.CurrentSong == nil {
		return s
	}
	q := queue.Resolve(s.queueContext())

	var (
		song models.Song
		ok   bool
	)
	if dir == Backward {
		song, ok = queue.Prev(q, s.CurrentSong.ID)
	} else {
		song, ok = queue.Next(q, s.CurrentSong.ID)
	}
	if ok {
		s.CurrentSong = songPtr(song)
	}
	return s
}

func songPtr(song models.Song) *models.Song {
	c := song.Clone()
	return &c
}

func cloneAlbums(src []models.Album) []models.Album {
	out := make([]models.Album, len(src))
	for i, a := range src {
		out[i] = a.Clone()
	}
	return out
}

func clonePlaylists(src []models.Playlist) []models.Playlist {
	out := make([]models.Playlist, len(src))
	for i, p := range src {
		out[i] = p.Clone()
	}
	return out
}

func removePlaylist(src []models.Playlist, id string) []models.Playlist {
	out := make([]models.Playlist, 0, len(src))
	for _, p := range src {
		if p.ID != id {
			out = append(out, p.Clone())
		}
	}
	return out
}

func assignSong(src []models.Playlist, playlistID string, song models.Song) []models.Playlist {
	out := clonePlaylists(src)
	for i := range out {
		if out[i].ID == playlistID {
			out[i], _ = out[i].WithSong(song)
		}
	}
	return out
}

func editAlbum(src []models.Album, edited models.Album) []models.Album {
	out := cloneAlbums(src)
	for i := range out {
		if out[i].ID != edited.ID {
			continue
		}
		songs := out[i].Songs
		out[i] = edited.Clone()
		out[i].Songs = songs
	}
	return out
}

func addSong(src []models.Album, albumID string, song models.Song) []models.Album {
	out := cloneAlbums(src)
	for i := range out {
		if out[i].ID == albumID && out[i].IndexOfSong(song.ID) < 0 {
			out[i].Songs = append(out[i].Songs, song.Clone())
		}
	}
	return out
}

func removeSongFromAlbums(src []models.Album, songID string) []models.Album {
	out := cloneAlbums(src)
	for i := range out {
		out[i].Songs = withoutSong(out[i].Songs, songID)
	}
	return out
}

func removeSongFromPlaylists(src []models.Playlist, songID string) []models.Playlist {
	out := clonePlaylists(src)
	for i := range out {
		out[i].Songs = withoutSong(out[i].Songs, songID)
	}
	return out
}

func withoutSong(songs []models.Song, songID string) []models.Song {
	out := songs[:0:0]
	for _, s := range songs {
		if s.ID != songID {
			out = append(out, s)
		}
	}
	return out
}
