package library

import (
	"time"

	"arionfm/shared/go/models"
)

const (
	// DefaultArtist credits every built-in and studio-created release.
	DefaultArtist = "Arion Solivion"

	demoAudio = "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3"

	defaultLyrics = `(Verse 1)
In the silence of the code, I find a rhythm
A heartbeat made of light, a digital prism
Searching for the soul in the machine
Dreaming colors that I've never seen

(Chorus)
Can you hear the echo?
Vibrating through the wire
It's a synthetic symphony
Burning like a fire

(Verse 2)
Data streams and memories collide
Nowhere left for us to hide
I am the voice inside the static
Emotional, yet automatic

(Bridge)
0101, the language of the heart
We were connected from the start

(Chorus)
Can you hear the echo?
Vibrating through the wire
It's a synthetic symphony
Burning like a fire
`
)

type seedSong struct {
	id, title, duration string
	plays, likes        int
	moods               []string
}

func buildAlbum(id, title string, year int, cover, description string, songs ...seedSong) models.Album {
	album := models.Album{
		ID:          id,
		Title:       title,
		Artist:      DefaultArtist,
		ReleaseYear: year,
		CoverArt:    cover,
		Description: description,
		Songs:       make([]models.Song, 0, len(songs)),
	}
	for _, s := range songs {
		album.Songs = append(album.Songs, models.Song{
			ID:       s.id,
			Title:    s.title,
			Artist:   DefaultArtist,
			Duration: s.duration,
			AudioSrc: demoAudio,
			CoverArt: cover,
			AlbumID:  id,
			Lyrics:   defaultLyrics,
			Plays:    s.plays,
			Likes:    s.likes,
			Moods:    s.moods,
		})
	}
	return album
}

// SeedAlbums is the built-in catalogue. Each call returns fresh values.
func SeedAlbums() []models.Album {
	return []models.Album{
		buildAlbum("a1", "Neon Horizon", 2024,
			"https://images.unsplash.com/photo-1507525428034-b723cf961d3e?q=80&w=800&auto=format&fit=crop",
			"A journey through the digital ether, exploring the boundaries between human emotion and artificial consciousness.",
			seedSong{"s1", "Digital Heartbeat", "3:42", 12500, 3400, []string{"Energetic", "Sci-Fi"}},
			seedSong{"s2", "Circuit Dreams", "4:15", 8900, 2100, []string{"Dreamy", "Chill"}},
			seedSong{"s3", "Binary Sunset", "2:58", 15000, 4500, []string{"Melancholic", "Synthwave"}},
			seedSong{"s4", "Zero One Love", "3:33", 6700, 1200, []string{"Romantic", "Pop"}},
		),
		buildAlbum("a2", "Echoes of the Void", 2025,
			"https://images.unsplash.com/photo-1437719417032-8595fd9e9dc6?q=80&w=800&auto=format&fit=crop",
			"Ambient soundscapes from the edge of the universe. Deep, dark, and mysteriously comforting.",
			seedSong{"s5", "Silence Speaks", "5:12", 4500, 900, []string{"Ambient", "Dark"}},
			seedSong{"s6", "Void Caller", "4:44", 5600, 1100, []string{"Mysterious", "Cinematic"}},
			seedSong{"s7", "Starlight Fades", "3:20", 7800, 2300, []string{"Sad", "Beautiful"}},
		),
		buildAlbum("a3", "Synthetic Soul", 2023,
			"https://images.unsplash.com/photo-1614613535308-eb5fbd3d2c17?q=80&w=800&auto=format&fit=crop",
			"The debut album that started the revolution. Pure synth-pop perfection.",
			seedSong{"s8", "Hello World", "3:10", 25000, 8000, []string{"Upbeat", "Pop"}},
			seedSong{"s9", "Ghost in the Machine", "3:55", 18000, 5600, []string{"Intense", "Rock"}},
		),
	}
}

// SeedPlaylists is the starter playlist set.
func SeedPlaylists(now time.Time) []models.Playlist {
	return []models.Playlist{
		{ID: "p1", Title: "My Island Vibes", Songs: []models.Song{}, CreatedAt: now.UTC()},
	}
}
