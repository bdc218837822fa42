package fir

import (
	"errors"

	"github.com/naisuuuu/fir/pixel"
)

// Error taxonomy (spec.md §7), checked with errors.Is at API boundaries.
// The first four alias pixel's sentinels directly rather than redeclaring
// them, so a caller that only ever touches pixel.Image constructors still
// gets the same identity fir.Resizer.Resize returns.
var (
	// ErrInvalidBufferSize is returned when a buffer is too small for the
	// declared width, height and pixel type.
	ErrInvalidBufferSize = pixel.ErrInvalidBufferSize
	// ErrInvalidBufferAlignment is returned when a buffer's start address
	// violates the pixel type's component alignment.
	ErrInvalidBufferAlignment = pixel.ErrInvalidBufferAlignment
	// ErrPixelTypeMismatch is returned when the source and destination
	// images of a resize do not share a pixel type.
	ErrPixelTypeMismatch = pixel.ErrPixelTypeMismatch
	// ErrZeroDimension is returned when width or height is zero.
	ErrZeroDimension = pixel.ErrZeroDimension
	// ErrUnsupportedCPUExtension is returned by SetCPUExtensions when the
	// caller requests a tier the constructing Resizer did not detect.
	ErrUnsupportedCPUExtension = errors.New("fir: unsupported cpu extension")
)
