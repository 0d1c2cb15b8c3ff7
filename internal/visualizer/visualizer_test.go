package visualizer

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"
)

func TestStepStaysInRange(t *testing.T) {
	v := New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		for _, h := range v.Step(true) {
			if h < 0 || h > Height*peakRatio {
				t.Fatalf("bar height %v out of range", h)
			}
		}
	}
}

func TestStepSettlesWhenPaused(t *testing.T) {
	v := New(rand.NewSource(1))
	var bars []float64
	for i := 0; i < 300; i++ {
		bars = v.Step(false)
	}
	if len(bars) != Bars {
		t.Fatalf("got %d bars", len(bars))
	}
	for _, h := range bars {
		if h < IdleHeight-0.01 || h > IdleHeight+0.01 {
			t.Fatalf("bar %v did not settle at idle height", h)
		}
	}
}

func TestStepEasesTenPercent(t *testing.T) {
	v := New(rand.NewSource(1))
	bars := v.Step(false)
	if bars[0] != IdleHeight*easing {
		t.Fatalf("first frame = %v, want %v", bars[0], IdleHeight*easing)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	v := New(rand.NewSource(1))
	ctx, cancel := context.WithCancel(context.Background())

	frames := 0
	err := v.Run(ctx, time.Millisecond, func() bool { return true }, func(b []float64) error {
		frames++
		if frames == 3 {
			cancel()
		}
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	if frames < 3 {
		t.Fatalf("emitted %d frames", frames)
	}
}

func TestRunStopsOnEmitError(t *testing.T) {
	v := New(rand.NewSource(1))
	boom := errors.New("client gone")
	err := v.Run(context.Background(), time.Millisecond, func() bool { return false }, func([]float64) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Run = %v, want %v", err, boom)
	}
}
