// Package field_test contains unit tests for the dense Field buffer.
package field_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathtrace/field"
)

// TestNewInvalidDimensions ensures New rejects non-positive dimensions.
func TestNewInvalidDimensions(t *testing.T) {
	_, err := field.New(0, 5)
	require.ErrorIs(t, err, field.ErrInvalidDimensions)

	_, err = field.New(5, -1)
	require.ErrorIs(t, err, field.ErrInvalidDimensions)
}

// TestFromRowsErrors verifies that FromRows rejects empty, ragged and non-finite input.
func TestFromRowsErrors(t *testing.T) {
	cases := []struct {
		name string
		rows [][]float64
		err  error
	}{
		{"EmptyRows", [][]float64{}, field.ErrEmptyField},
		{"EmptyCols", [][]float64{{}}, field.ErrEmptyField},
		{"NonRectangular", [][]float64{{1, 2}, {3}}, field.ErrNonRectangular},
		{"NaN", [][]float64{{0, math.NaN()}}, field.ErrNaNInf},
		{"Inf", [][]float64{{math.Inf(1)}}, field.ErrNaNInf},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := field.FromRows(tc.rows)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

// TestFromRowsLayout checks that rows[y][x] lands at (x,y) and the input is copied.
func TestFromRowsLayout(t *testing.T) {
	rows := [][]float64{
		{1, 2, 3},
		{4, 5, 6},
	}
	f, err := field.FromRows(rows)
	require.NoError(t, err)
	require.Equal(t, 3, f.Width())
	require.Equal(t, 2, f.Height())

	v, err := f.At(2, 1)
	require.NoError(t, err)
	require.Equal(t, 6.0, v)
	require.Equal(t, 2.0, f.Value(1, 0))

	rows[0][0] = 99
	require.Equal(t, 1.0, f.Value(0, 0), "FromRows must deep-copy")
	require.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, f.Rows())
}

// TestAtSetOutOfRange ensures At and Set return ErrOutOfRange on invalid access.
func TestAtSetOutOfRange(t *testing.T) {
	f, err := field.New(2, 2)
	require.NoError(t, err)

	_, err = f.At(-1, 0)
	require.ErrorIs(t, err, field.ErrOutOfRange)
	_, err = f.At(0, 2)
	require.ErrorIs(t, err, field.ErrOutOfRange)
	require.ErrorIs(t, f.Set(2, 0, 1), field.ErrOutOfRange)
	require.ErrorIs(t, f.Set(0, 0, math.NaN()), field.ErrNaNInf)

	require.True(t, f.InBounds(1, 1))
	require.False(t, f.InBounds(1, 2))
}

// TestFillCloneCount covers the bulk helpers.
func TestFillCloneCount(t *testing.T) {
	f, err := field.New(3, 3)
	require.NoError(t, err)
	require.NoError(t, f.Fill(-1))
	require.ErrorIs(t, f.Fill(math.Inf(-1)), field.ErrNaNInf)

	c := f.Clone()
	require.NoError(t, c.Set(1, 1, 7))
	require.Equal(t, -1.0, f.Value(1, 1), "clone must not share storage")
	require.Equal(t, 1, c.Count(func(v float64) bool { return v > 0 }))
	require.Equal(t, 9, f.Count(func(v float64) bool { return v < 0 }))
	require.Equal(t, "[-1, -1, -1]\n[-1, 7, -1]\n[-1, -1, -1]\n", c.String())
}

// TestFromImage checks luminance, inversion and thresholding on a 2×1 image.
func TestFromImage(t *testing.T) {
	img := image.NewGray(image.Rect(10, 20, 12, 21)) // non-zero origin
	img.SetGray(10, 20, color.Gray{Y: 0})
	img.SetGray(11, 20, color.Gray{Y: 200})

	raw, err := field.FromImage(img, field.ImageOptions{})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0, 200}}, raw.Rows())

	inv, err := field.FromImage(img, field.ImageOptions{Invert: true})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{255, 55}}, inv.Rows())

	bin, err := field.FromImage(img, field.ImageOptions{Invert: true, Threshold: 128})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 0}}, bin.Rows())

	_, err = field.FromImage(nil, field.ImageOptions{})
	require.ErrorIs(t, err, field.ErrNilImage)
}

// TestDecodePNG round-trips a PNG through the registered decoders.
func TestDecodePNG(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(2, 1, color.Gray{Y: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	f, err := field.Decode(&buf, field.ImageOptions{Threshold: 1})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0, 0, 0}, {0, 0, 1}}, f.Rows())

	_, err = field.Decode(bytes.NewReader([]byte("not an image")), field.ImageOptions{})
	require.Error(t, err)
}

// TestDecodeMaxPixels rejects an oversized image from its header alone and
// still decodes images within the limit after the header was consumed.
func TestDecodeMaxPixels(t *testing.T) {
	// 3000×3000 of zeros compresses to a few KB but would decode to 72 MB of float64.
	big := image.NewGray(image.Rect(0, 0, 3000, 3000))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, big))
	require.Less(t, buf.Len(), 1<<20)

	_, err := field.Decode(bytes.NewReader(buf.Bytes()), field.ImageOptions{MaxPixels: 1_000_000})
	require.ErrorIs(t, err, field.ErrTooLarge)

	small := image.NewGray(image.Rect(0, 0, 4, 3))
	small.SetGray(1, 2, color.Gray{Y: 90})
	buf.Reset()
	require.NoError(t, png.Encode(&buf, small))
	f, err := field.Decode(&buf, field.ImageOptions{MaxPixels: 12})
	require.NoError(t, err)
	require.Equal(t, 90.0, f.Value(1, 2))

	_, err = field.FromImage(small, field.ImageOptions{MaxPixels: 11})
	require.ErrorIs(t, err, field.ErrTooLarge)

	require.NoError(t, field.CheckSize(1<<20, 1<<20, 0), "zero limit means none")
}

// TestPut writes without checks, non-finite values included.
func TestPut(t *testing.T) {
	f, err := field.New(2, 2)
	require.NoError(t, err)
	f.Put(1, 1, math.Inf(1))
	require.True(t, math.IsInf(f.Value(1, 1), 1))
}
