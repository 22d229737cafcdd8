// SPDX-License-Identifier: MIT

// Package field - dense 2D scalar buffer (row-major) & safe accessors.
//
// Purpose:
//   - Hold a width×height grid of float64 values in one flat slice (offset = y*width + x).
//   - Serve both as the read-only obstacle/cost field of a search and as the
//     per-search history memo buffer.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Offer Value as an unchecked O(1) read for hot loops that already bounds-checked.
//
// Complexity quicksheet:
//   - New: O(w*h) zero-init; At/Set/Value: O(1); Clone/Fill: O(w*h).
package field

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt  = "At"
	ctxSet = "Set"
)

// fieldErrorf wraps a sentinel with the method tag and coordinates.
func fieldErrorf(method string, x, y int, err error) error {
	return fmt.Errorf("Field.%s(%d,%d): %w", method, x, y, err)
}

// Field is a dense row-major grid of float64 values.
// Coordinates are (x, y) with x the column in [0,Width) and y the row in [0,Height).
type Field struct {
	w, h int
	data []float64 // len == w*h
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Field)(nil)

// New creates a w×h field filled with zeros.
// Returns ErrInvalidDimensions if w <= 0 or h <= 0.
func New(w, h int) (*Field, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Field{w: w, h: h, data: make([]float64, w*h)}, nil
}

// FromRows builds a field from rows[y][x]. The input is deep-copied.
//
// Errors:
//   - ErrEmptyField if there are no rows or the first row is empty.
//   - ErrNonRectangular if any row length differs from the first.
//   - ErrNaNInf if any value is NaN or ±Inf.
func FromRows(rows [][]float64) (*Field, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyField
	}
	h, w := len(rows), len(rows[0])
	f := &Field{w: w, h: h, data: make([]float64, w*h)}
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrNonRectangular, y, len(row), w)
		}
		for x, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fieldErrorf("FromRows", x, y, ErrNaNInf)
			}
		}
		copy(f.data[y*w:(y+1)*w], row)
	}

	return f, nil
}

// Width returns the number of columns.
func (f *Field) Width() int { return f.w }

// Height returns the number of rows.
func (f *Field) Height() int { return f.h }

// InBounds reports whether (x,y) lies within the field.
// Complexity: O(1).
func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && x < f.w && y >= 0 && y < f.h
}

// At returns the value at (x,y) or ErrOutOfRange.
func (f *Field) At(x, y int) (float64, error) {
	if !f.InBounds(x, y) {
		return 0, fieldErrorf(ctxAt, x, y, ErrOutOfRange)
	}

	return f.data[y*f.w+x], nil
}

// Value returns the value at (x,y) without a bounds check.
// It panics like a slice index when (x,y) is outside the field; callers
// must check InBounds first.
func (f *Field) Value(x, y int) float64 { return f.data[y*f.w+x] }

// Put is the unchecked counterpart of Set: no bounds or finiteness checks.
// Callers must ensure InBounds(x, y).
func (f *Field) Put(x, y int, v float64) { f.data[y*f.w+x] = v }

// Set stores v at (x,y).
// Returns ErrOutOfRange for bad coordinates and ErrNaNInf for non-finite v.
func (f *Field) Set(x, y int, v float64) error {
	if !f.InBounds(x, y) {
		return fieldErrorf(ctxSet, x, y, ErrOutOfRange)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fieldErrorf(ctxSet, x, y, ErrNaNInf)
	}
	f.data[y*f.w+x] = v

	return nil
}

// Fill sets every cell to v. Non-finite v is rejected with ErrNaNInf.
func (f *Field) Fill(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("Field.Fill: %w", ErrNaNInf)
	}
	for i := range f.data {
		f.data[i] = v
	}

	return nil
}

// Clone returns a deep copy.
func (f *Field) Clone() *Field {
	data := make([]float64, len(f.data))
	copy(data, f.data)

	return &Field{w: f.w, h: f.h, data: data}
}

// Count returns how many cells satisfy pred, scanning in row-major order.
func (f *Field) Count(pred func(v float64) bool) int {
	n := 0
	for _, v := range f.data {
		if pred(v) {
			n++
		}
	}

	return n
}

// Rows returns a copy of the field as rows[y][x].
func (f *Field) Rows() [][]float64 {
	out := make([][]float64, f.h)
	for y := 0; y < f.h; y++ {
		out[y] = make([]float64, f.w)
		copy(out[y], f.data[y*f.w:(y+1)*f.w])
	}

	return out
}

// String renders one bracketed row per line, for diagnostics.
func (f *Field) String() string {
	var b strings.Builder
	for y := 0; y < f.h; y++ {
		b.WriteString("[")
		for x := 0; x < f.w; x++ {
			if x > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%g", f.data[y*f.w+x])
		}
		b.WriteString("]\n")
	}

	return b.String()
}
