package imageedit

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"strings"
	"testing"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func patterned(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 2), G: uint8(y * 4), B: uint8((x*7 + y*3) % 256), A: 0xff})
		}
	}
	return img
}

func TestRenderIdentityCentersImage(t *testing.T) {
	src := patterned(100, 60)
	out := Render(src, DefaultAdjustments())

	if out.Bounds().Dx() != CanvasSize || out.Bounds().Dy() != CanvasSize {
		t.Fatalf("canvas = %v", out.Bounds())
	}

	offX, offY := (CanvasSize-100)/2, (CanvasSize-60)/2
	for y := 0; y < 60; y++ {
		for x := 0; x < 100; x++ {
			want := src.RGBAAt(x, y)
			if got := out.RGBAAt(x+offX, y+offY); got != want {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}

	black := color.RGBA{A: 0xff}
	outside := []image.Point{{0, 0}, {offX - 1, 200}, {offX + 100, 200}, {200, offY - 1}, {200, offY + 60}}
	for _, p := range outside {
		if got := out.RGBAAt(p.X, p.Y); got != black {
			t.Fatalf("pixel %v = %v, want black", p, got)
		}
	}
}

func TestRenderPanAndScale(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	adj := DefaultAdjustments()
	adj.Scale = 2
	adj = adj.Pan(-100, 0)

	out := Render(solid(100, 100, red), adj)

	// 200x200 image centred at (100, 200)
	if got := out.RGBAAt(20, 200); got != red {
		t.Fatalf("left edge = %v, want red", got)
	}
	if got := out.RGBAAt(220, 200); got != (color.RGBA{A: 0xff}) {
		t.Fatalf("right of image = %v, want black", got)
	}
}

func TestBrightnessZeroIsBlack(t *testing.T) {
	adj := DefaultAdjustments()
	adj.Brightness = 0
	out := Render(solid(100, 100, color.RGBA{R: 200, G: 120, B: 40, A: 0xff}), adj)
	if got := out.RGBAAt(200, 200); got != (color.RGBA{A: 0xff}) {
		t.Fatalf("pixel = %v, want black", got)
	}
}

func TestSaturationZeroIsGray(t *testing.T) {
	adj := DefaultAdjustments()
	adj.Saturation = 0
	out := Render(solid(100, 100, color.RGBA{R: 200, G: 120, B: 40, A: 0xff}), adj)
	got := out.RGBAAt(200, 200)
	if got.R != got.G || got.G != got.B {
		t.Fatalf("pixel = %v, want gray", got)
	}
}

func TestContrastDoesNotTouchBackground(t *testing.T) {
	adj := DefaultAdjustments()
	adj.Contrast = 0
	out := Render(solid(10, 10, color.RGBA{R: 0xff, A: 0xff}), adj)
	if got := out.RGBAAt(0, 0); got != (color.RGBA{A: 0xff}) {
		t.Fatalf("background = %v, want black", got)
	}
}

func TestZoomClamps(t *testing.T) {
	adj := DefaultAdjustments()
	if got := adj.Zoom(100).Scale; math.Abs(got-0.9) > 1e-9 {
		t.Fatalf("Zoom(100) = %v", got)
	}
	if got := adj.Zoom(-100000).Scale; got != MaxScale {
		t.Fatalf("zoom in clamp = %v", got)
	}
	if got := adj.Zoom(100000).Scale; got != MinScale {
		t.Fatalf("zoom out clamp = %v", got)
	}
}

func TestValidate(t *testing.T) {
	adj := DefaultAdjustments()
	if err := adj.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	adj.Brightness = 250
	if err := adj.Validate(); err == nil {
		t.Fatalf("expected brightness out of range")
	}
}

func TestLoadAndDataURL(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(20, 10, color.RGBA{G: 0xff, A: 0xff})); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	img, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	url, err := DataURL(Render(img, DefaultAdjustments()))
	if err != nil {
		t.Fatalf("DataURL: %v", err)
	}
	const prefix = "data:image/jpeg;base64,"
	if !strings.HasPrefix(url, prefix) {
		t.Fatalf("unexpected prefix: %.40s", url)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, prefix))
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode jpeg: %v", err)
	}
	if cfg.Width != CanvasSize || cfg.Height != CanvasSize {
		t.Fatalf("jpeg size = %dx%d", cfg.Width, cfg.Height)
	}
}

func TestLoadRejectsText(t *testing.T) {
	if _, err := Load(strings.NewReader("not an image")); err == nil {
		t.Fatalf("expected error")
	}
}
