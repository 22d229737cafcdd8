// SPDX-License-Identifier: MIT

package field

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
)

// ImageOptions controls how pixel intensity becomes a field value.
type ImageOptions struct {
	// Invert maps luminance l to 255-l before thresholding, so dark pixels
	// become high values (useful when structures are drawn dark on light).
	Invert bool

	// Threshold, if > 0, binarizes the field: 1 where the (possibly inverted)
	// luminance is >= Threshold, 0 elsewhere. 0 keeps raw luminance in [0,255].
	Threshold float64

	// MaxPixels, if > 0, rejects images whose width×height exceeds it with
	// ErrTooLarge. Decode checks the header before any pixel is decoded.
	MaxPixels int64
}

// CheckSize reports ErrTooLarge when w×h exceeds limit. limit <= 0 means none.
func CheckSize(w, h int, limit int64) error {
	if limit > 0 && int64(w)*int64(h) > limit {
		return fmt.Errorf("%w: %d×%d exceeds %d", ErrTooLarge, w, h, limit)
	}

	return nil
}

// FromImage builds a field with one cell per pixel of img.
// Cell (x,y) corresponds to pixel (Bounds.Min.X+x, Bounds.Min.Y+y); its value is
// the 8-bit luminance, optionally inverted and thresholded per opts.
//
// Errors:
//   - ErrNilImage if img is nil.
//   - ErrInvalidDimensions if img has an empty bounds rectangle.
//
// Complexity: O(w*h).
func FromImage(img image.Image, opts ImageOptions) (*Field, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	b := img.Bounds()
	if err := CheckSize(b.Dx(), b.Dy(), opts.MaxPixels); err != nil {
		return nil, err
	}
	f, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, fmt.Errorf("FromImage %v: %w", b, err)
	}
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			v := float64(g.Y)
			if opts.Invert {
				v = 255 - v
			}
			if opts.Threshold > 0 {
				if v >= opts.Threshold {
					v = 1
				} else {
					v = 0
				}
			}
			f.data[y*f.w+x] = v
		}
	}

	return f, nil
}

// Decode reads an image in any registered format (PNG, JPEG, GIF) and converts it.
//
// With MaxPixels set, the header is read first (image.DecodeConfig) and an
// oversized image is rejected without allocating its pixels.
func Decode(r io.Reader, opts ImageOptions) (*Field, error) {
	if opts.MaxPixels > 0 {
		var head bytes.Buffer
		cfg, _, err := image.DecodeConfig(io.TeeReader(r, &head))
		if err != nil {
			return nil, fmt.Errorf("field: decode image header: %w", err)
		}
		if err := CheckSize(cfg.Width, cfg.Height, opts.MaxPixels); err != nil {
			return nil, err
		}
		r = io.MultiReader(&head, r)
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("field: decode image: %w", err)
	}

	return FromImage(img, opts)
}

// Load opens path and decodes it with Decode.
func Load(path string, opts ImageOptions) (*Field, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("field: open image: %w", err)
	}
	defer fh.Close()

	return Decode(fh, opts)
}
