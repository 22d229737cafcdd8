// SPDX-License-Identifier: MIT
// Package field: sentinel error set.
// Public accessors return these sentinels (possibly wrapped with coordinates
// via %w); callers match them with errors.Is. No accessor panics on user input.

package field

import "errors"

var (
	// ErrInvalidDimensions indicates non-positive width or height.
	ErrInvalidDimensions = errors.New("field: dimensions must be > 0")

	// ErrEmptyField indicates rows input with no rows or no columns.
	ErrEmptyField = errors.New("field: input must have at least one row and one column")

	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("field: all rows must have the same length")

	// ErrOutOfRange indicates a coordinate outside [0,width)×[0,height).
	ErrOutOfRange = errors.New("field: coordinate out of range")

	// ErrNaNInf indicates a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("field: NaN or Inf encountered")

	// ErrNilImage indicates a nil image.Image was passed to FromImage.
	ErrNilImage = errors.New("field: image is nil")

	// ErrTooLarge indicates width×height above ImageOptions.MaxPixels.
	ErrTooLarge = errors.New("field: too many pixels")
)
