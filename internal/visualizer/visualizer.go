// Package visualizer produces the animated bar heights shown under the player.
package visualizer

import (
	"context"
	"math/rand"
	"time"
)

const (
	// Bars is the number of columns.
	Bars = 60
	// Height is the canvas height the bars are scaled to.
	Height = 100.0
	// IdleHeight is where bars settle while paused.
	IdleHeight = 5.0
	// FrameInterval approximates one animation frame.
	FrameInterval = time.Second / 30

	easing    = 0.1
	peakRatio = 0.8
)

// Visualizer eases each bar toward a new target every frame. It is not safe
// for concurrent use; each stream owns one.
type Visualizer struct {
	bars []float64
	rnd  *rand.Rand
}

// New returns a visualizer with all bars at zero.
func New(src rand.Source) *Visualizer {
	return &Visualizer{bars: make([]float64, Bars), rnd: rand.New(src)}
}

// NewSeeded returns a visualizer seeded from the clock.
func NewSeeded() *Visualizer {
	return New(rand.NewSource(time.Now().UnixNano()))
}

// Step advances one frame and returns a copy of the bar heights.
func (v *Visualizer) Step(playing bool) []float64 {
	for i, h := range v.bars {
		target := IdleHeight
		if playing {
			target = v.rnd.Float64() * Height * peakRatio
		}
		v.bars[i] = h + (target-h)*easing
	}
	out := make([]float64, len(v.bars))
	copy(out, v.bars)
	return out
}

// Run emits a frame every interval until ctx is done or emit fails.
func (v *Visualizer) Run(ctx context.Context, interval time.Duration, playing func() bool, emit func([]float64) error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := emit(v.Step(playing())); err != nil {
				return err
			}
		}
	}
}
