// Package queue derives the playback queue from what the listener is looking at.
package queue

import (
	"sort"
	"strings"

	"arionfm/shared/go/models"
)

// PopularSize is the length of the default queue shown on the home view.
const PopularSize = 6

// Context is everything the queue depends on. Album and Playlist are nil when
// nothing is selected.
type Context struct {
	View       models.ViewState
	Album      *models.Album
	Playlist   *models.Playlist
	Query      string
	ActiveMood string
	Albums     []models.Album
}

// Resolve returns the ordered songs that next/previous navigate.
func Resolve(c Context) []models.Song {
	switch {
	case c.View == models.ViewPlaylistDetails && c.Playlist != nil:
		return c.Playlist.Songs
	case c.View == models.ViewAlbumDetails && c.Album != nil:
		return c.Album.Songs
	case c.View == models.ViewLibrary:
		return Filter(AllSongs(c.Albums), c.Query, c.ActiveMood)
	default:
		return Popular(AllSongs(c.Albums), PopularSize)
	}
}

// AllSongs flattens albums in album order.
func AllSongs(albums []models.Album) []models.Song {
	var n int
	for _, a := range albums {
		n += len(a.Songs)
	}
	out := make([]models.Song, 0, n)
	for _, a := range albums {
		out = append(out, a.Songs...)
	}
	return out
}

// Filter keeps songs whose title or artist contains query, ignoring case, and
// that carry mood when one is set.
func Filter(songs []models.Song, query, mood string) []models.Song {
	q := strings.ToLower(query)
	out := make([]models.Song, 0, len(songs))
	for _, s := range songs {
		if q != "" && !strings.Contains(strings.ToLower(s.Title), q) &&
			!strings.Contains(strings.ToLower(s.Artist), q) {
			continue
		}
		if mood != "" && !s.HasMood(mood) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Popular returns the n most played songs. Ties keep catalog order.
func Popular(songs []models.Song, n int) []models.Song {
	sorted := make([]models.Song, len(songs))
	copy(sorted, songs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Plays > sorted[j].Plays
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Moods lists the distinct moods across songs in first-seen order.
func Moods(songs []models.Song) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, s := range songs {
		for _, m := range s.Moods {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}

// IndexOf returns the position of songID in the queue, or -1.
func IndexOf(queue []models.Song, songID string) int {
	for i, s := range queue {
		if s.ID == songID {
			return i
		}
	}
	return -1
}

// Next returns the song after currentID, wrapping to the head of the queue.
// A song that is not queued also restarts from the head.
func Next(queue []models.Song, currentID string) (models.Song, bool) {
	if len(queue) == 0 {
		return models.Song{}, false
	}
	idx := IndexOf(queue, currentID)
	if idx >= 0 && idx < len(queue)-1 {
		return queue[idx+1], true
	}
	return queue[0], true
}

// Prev returns the song before currentID. It does not wrap.
func Prev(queue []models.Song, currentID string) (models.Song, bool) {
	idx := IndexOf(queue, currentID)
	if idx <= 0 {
		return models.Song{}, false
	}
	return queue[idx-1], true
}
