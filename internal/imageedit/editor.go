// Package imageedit renders the profile photo editor's output: a square,
// zoomed, panned and colour-adjusted JPEG.
package imageedit

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	_ "golang.org/x/image/webp"
)

const (
	// CanvasSize is the width and height of the rendered image.
	CanvasSize = 400
	MinScale   = 0.1
	MaxScale   = 5.0
	// JPEGQuality matches a 0.9 canvas export.
	JPEGQuality = 90

	wheelSensitivity = 0.001
)

// ErrUnsupportedImage is returned when the upload is not a decodable image.
var ErrUnsupportedImage = errors.New("unsupported image")

// Adjustments are the editor controls. Filters are CSS percentages where 100
// leaves the image unchanged.
type Adjustments struct {
	Scale      float64 `json:"scale"`
	PanX       float64 `json:"panX"`
	PanY       float64 `json:"panY"`
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Saturation float64 `json:"saturation"`
}

// DefaultAdjustments is the untouched editor.
func DefaultAdjustments() Adjustments {
	return Adjustments{Scale: 1, Brightness: 100, Contrast: 100, Saturation: 100}
}

// Validate checks every control is in range.
func (a Adjustments) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Scale, validation.Min(MinScale), validation.Max(MaxScale)),
		validation.Field(&a.Brightness, validation.Min(0.0), validation.Max(200.0)),
		validation.Field(&a.Contrast, validation.Min(0.0), validation.Max(200.0)),
		validation.Field(&a.Saturation, validation.Min(0.0), validation.Max(200.0)),
	)
}

// Zoom applies a wheel delta. Scrolling down shrinks the image.
func (a Adjustments) Zoom(deltaY float64) Adjustments {
	a.Scale = clamp(a.Scale-deltaY*wheelSensitivity, MinScale, MaxScale)
	return a
}

// Pan moves the image by a drag delta in canvas pixels.
func (a Adjustments) Pan(dx, dy float64) Adjustments {
	a.PanX += dx
	a.PanY += dy
	return a
}

// Load decodes a PNG, JPEG, GIF or WebP image.
func Load(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	return img, nil
}

// Render draws src centred on a black canvas, translated by the pan, scaled
// about its centre, with filters applied to the image only. An image with
// an odd dimension lands on a half pixel offset and is resampled, as a
// canvas drawImage call would be.
func Render(src image.Image, adj Adjustments) *image.RGBA {
	layer := image.NewRGBA(image.Rect(0, 0, CanvasSize, CanvasSize))

	b := src.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	s := adj.Scale
	cx := CanvasSize/2 + adj.PanX
	cy := CanvasSize/2 + adj.PanY

	s2d := f64.Aff3{
		s, 0, cx - s*(float64(b.Min.X)+w/2),
		0, s, cy - s*(float64(b.Min.Y)+h/2),
	}
	draw.BiLinear.Transform(layer, s2d, src, b, draw.Over, nil)

	out := image.NewRGBA(layer.Bounds())
	f := newFilter(adj)
	for y := 0; y < CanvasSize; y++ {
		for x := 0; x < CanvasSize; x++ {
			out.SetRGBA(x, y, f.overBlack(layer.RGBAAt(x, y)))
		}
	}
	return out
}

// EncodeJPEG writes img as a quality 90 JPEG.
func EncodeJPEG(w io.Writer, img image.Image) error {
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	return nil
}

// DataURL encodes img as a base64 JPEG data URL.
func DataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := EncodeJPEG(&buf, img); err != nil {
		return "", err
	}
	return JPEGDataURL(buf.Bytes()), nil
}

// JPEGDataURL wraps already encoded JPEG bytes in a data URL.
func JPEGDataURL(b []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(b)
}

type filter struct {
	brightness, contrast, saturation float64
	identity                         bool
}

func newFilter(adj Adjustments) filter {
	f := filter{
		brightness: adj.Brightness / 100,
		contrast:   adj.Contrast / 100,
		saturation: adj.Saturation / 100,
	}
	f.identity = f.brightness == 1 && f.contrast == 1 && f.saturation == 1
	return f
}

// overBlack filters a premultiplied pixel and flattens it onto black.
func (f filter) overBlack(c color.RGBA) color.RGBA {
	if c.A == 0 {
		return color.RGBA{A: 0xff}
	}
	if f.identity {
		return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	}

	a := float64(c.A) / 255
	r := float64(c.R) / 255 / a
	g := float64(c.G) / 255 / a
	bl := float64(c.B) / 255 / a

	// brightness
	r, g, bl = unit(r*f.brightness), unit(g*f.brightness), unit(bl*f.brightness)

	// contrast
	r = unit((r-0.5)*f.contrast + 0.5)
	g = unit((g-0.5)*f.contrast + 0.5)
	bl = unit((bl-0.5)*f.contrast + 0.5)

	// saturate, using the filter effects luminance matrix
	s := f.saturation
	nr := (0.213+0.787*s)*r + (0.715-0.715*s)*g + (0.072-0.072*s)*bl
	ng := (0.213-0.213*s)*r + (0.715+0.285*s)*g + (0.072-0.072*s)*bl
	nb := (0.213-0.213*s)*r + (0.715-0.715*s)*g + (0.072+0.928*s)*bl

	return color.RGBA{
		R: to8(unit(nr) * a),
		G: to8(unit(ng) * a),
		B: to8(unit(nb) * a),
		A: 0xff,
	}
}

func unit(v float64) float64 {
	return clamp(v, 0, 1)
}

func to8(v float64) uint8 {
	return uint8(math.Round(v * 255))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
