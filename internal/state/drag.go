package state

import (
	"sync"

	"arionfm/shared/go/models"
)

// DragSession holds the song currently being dragged toward a playlist.
type DragSession struct {
	mu   sync.Mutex
	song *models.Song
}

// Begin starts dragging song, replacing any earlier drag.
func (d *DragSession) Begin(song models.Song) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := song.Clone()
	d.song = &c
}

// Take returns the dragged song and ends the drag.
func (d *DragSession) Take() (models.Song, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.song == nil {
		return models.Song{}, false
	}
	song := *d.song
	d.song = nil
	return song, true
}

// Cancel ends the drag without a drop.
func (d *DragSession) Cancel() {
	d.mu.Lock()
	d.song = nil
	d.mu.Unlock()
}

// Holding reports whether a drag is in progress.
func (d *DragSession) Holding() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.song != nil
}
