// Package render draws obstacle fields and traced routes to PNG.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/katalvlaran/pathtrace/field"
	"github.com/katalvlaran/pathtrace/gridpath"
)

// ErrBadScale is returned for a non-positive Options.Scale.
var ErrBadScale = errors.New("render: scale must be positive")

// Palette cycles through route colors in draw order.
var Palette = []color.Color{
	color.RGBA{220, 30, 30, 255},
	color.RGBA{30, 90, 220, 255},
	color.RGBA{240, 150, 0, 255},
	color.RGBA{150, 40, 200, 255},
}

var (
	startColor = color.RGBA{0, 200, 0, 255}
	endColor   = color.RGBA{0, 0, 200, 255}
)

// Options controls overlay geometry.
type Options struct {
	// Scale is the pixel size of one field cell.
	Scale int
	// LineWidth of the route stroke in pixels; 0 means Scale/2 (at least 1).
	LineWidth float64
	// Markers draws start and end discs on every route.
	Markers bool
}

// DefaultOptions returns Scale 4 with markers.
func DefaultOptions() Options {
	return Options{Scale: 4, Markers: true}
}

// Overlay paints f as a grayscale background (0 white, the field maximum
// darkest) and strokes each route on top of it.
func Overlay(f *field.Field, routes []gridpath.Route, opts Options) (image.Image, error) {
	dc, err := draw(f, routes, opts)
	if err != nil {
		return nil, err
	}

	return dc.Image(), nil
}

// EncodePNG writes the overlay to w.
func EncodePNG(w io.Writer, f *field.Field, routes []gridpath.Route, opts Options) error {
	dc, err := draw(f, routes, opts)
	if err != nil {
		return err
	}

	return dc.EncodePNG(w)
}

// SavePNG writes the overlay to path.
func SavePNG(path string, f *field.Field, routes []gridpath.Route, opts Options) error {
	dc, err := draw(f, routes, opts)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}

	return nil
}

func draw(f *field.Field, routes []gridpath.Route, opts Options) (*gg.Context, error) {
	if f == nil {
		return nil, gridpath.ErrNilField
	}
	if opts.Scale <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadScale, opts.Scale)
	}
	s := opts.Scale

	dc := gg.NewContextForRGBA(background(f, s))

	lw := opts.LineWidth
	if lw <= 0 {
		lw = max(float64(s)/2, 1)
	}
	center := func(p gridpath.Point) (float64, float64) {
		return float64(p.X*s) + float64(s)/2, float64(p.Y*s) + float64(s)/2
	}

	for i, r := range routes {
		if len(r.Points) == 0 {
			continue
		}
		dc.SetColor(Palette[i%len(Palette)])
		dc.SetLineWidth(lw)
		dc.MoveTo(center(r.Points[0]))
		for _, p := range r.Points[1:] {
			dc.LineTo(center(p))
		}
		dc.Stroke()
	}

	if opts.Markers {
		radius := max(float64(s)/2, 1)
		for _, r := range routes {
			if len(r.Points) == 0 {
				continue
			}
			x, y := center(r.Points[0])
			dc.SetColor(startColor)
			dc.DrawCircle(x, y, radius)
			dc.Fill()
			x, y = center(r.Points[len(r.Points)-1])
			dc.SetColor(endColor)
			dc.DrawCircle(x, y, radius)
			dc.Fill()
		}
	}

	return dc, nil
}

// background renders the field into an RGBA image, one s×s block per cell.
func background(f *field.Field, s int) *image.RGBA {
	w, h := f.Width(), f.Height()
	img := image.NewRGBA(image.Rect(0, 0, w*s, h*s))

	peak := 0.0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			peak = max(peak, f.Value(x, y))
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g := uint8(255)
			if v := f.Value(x, y); v > 0 && peak > 0 {
				g = uint8(255 - 200*v/peak)
			}
			c := color.RGBA{g, g, g, 255}
			for dy := 0; dy < s; dy++ {
				for dx := 0; dx < s; dx++ {
					img.SetRGBA(x*s+dx, y*s+dy, c)
				}
			}
		}
	}

	return img
}
