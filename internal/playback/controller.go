// Package playback tracks what the bound audio element is doing.
package playback

import (
	"errors"
	"sync"

	"arionfm/shared/go/models"
)

var (
	// ErrInvalidSeek rejects seek targets outside [0,100].
	ErrInvalidSeek = errors.New("seek percent must be between 0 and 100")
	// ErrInvalidVolume rejects volumes outside [0,1].
	ErrInvalidVolume = errors.New("volume must be between 0 and 1")
)

// DefaultVolume is full output.
const DefaultVolume = 1.0

// Status is a snapshot of the controller.
type Status struct {
	SongID      string  `json:"songId,omitempty"`
	IsPlaying   bool    `json:"isPlaying"`
	CurrentTime float64 `json:"currentTime"`
	Duration    float64 `json:"duration"`
	Progress    float64 `json:"progress"`
	Volume      float64 `json:"volume"`
}

// Controller owns play/pause, position and volume. It never touches the queue.
type Controller struct {
	mu          sync.Mutex
	songID      string
	playing     bool
	currentTime float64
	duration    float64
	volume      float64
	onEnded     func()
}

// NewController returns a paused controller. onEnded runs when the element
// reports the end of a track.
func NewController(onEnded func()) *Controller {
	return &Controller{volume: DefaultVolume, onEnded: onEnded}
}

// Load binds a new song and resets its position.
func (c *Controller) Load(song models.Song) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.songID = song.ID
	c.currentTime = 0
	c.duration = 0
}

// Play starts playback.
func (c *Controller) Play() {
	c.mu.Lock()
	c.playing = true
	c.mu.Unlock()
}

// Pause stops playback.
func (c *Controller) Pause() {
	c.mu.Lock()
	c.playing = false
	c.mu.Unlock()
}

// Toggle flips between playing and paused and returns the new state.
func (c *Controller) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = !c.playing
	return c.playing
}

// IsPlaying reports whether playback is running.
func (c *Controller) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// Seek moves to percent of the track. With no known duration it rewinds.
func (c *Controller) Seek(percent float64) (float64, error) {
	if percent < 0 || percent > 100 {
		return 0, ErrInvalidSeek
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.duration > 0 {
		c.currentTime = percent / 100 * c.duration
	} else {
		c.currentTime = 0
	}
	return c.currentTime, nil
}

// Report records the element's position and duration.
func (c *Controller) Report(currentTime, duration float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if duration > 0 {
		c.duration = duration
	}
	if currentTime >= 0 {
		c.currentTime = currentTime
	}
}

// Progress is the position as a percentage of the duration.
func (c *Controller) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progressLocked()
}

func (c *Controller) progressLocked() float64 {
	if c.duration <= 0 {
		return 0
	}
	return c.currentTime / c.duration * 100
}

// SetVolume changes the output level.
func (c *Controller) SetVolume(v float64) error {
	if v < 0 || v > 1 {
		return ErrInvalidVolume
	}
	c.mu.Lock()
	c.volume = v
	c.mu.Unlock()
	return nil
}

// Ended runs the on-ended hook outside the lock.
func (c *Controller) Ended() {
	c.mu.Lock()
	hook := c.onEnded
	c.mu.Unlock()
	if hook != nil {
		hook()
	}
}

// Status returns a snapshot.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		SongID:      c.songID,
		IsPlaying:   c.playing,
		CurrentTime: c.currentTime,
		Duration:    c.duration,
		Progress:    c.progressLocked(),
		Volume:      c.volume,
	}
}
