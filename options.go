package fir

import "github.com/naisuuuu/fir/pixel"

// Options controls per-resize behavior (spec.md §6: "Options:
// { mul_div_alpha: bool }").
type Options struct {
	// MulDivAlpha enables the premultiply-before/unpremultiply-after
	// pipeline (spec.md §4.3) for pixel types that carry alpha. It is
	// ignored for alphaless pixel types.
	MulDivAlpha bool
}

// DefaultOptions returns the options spec.md §6 calls for by default:
// MulDivAlpha true whenever pt carries an alpha channel.
func DefaultOptions(pt pixel.PixelType) Options {
	return Options{MulDivAlpha: pt.HasAlpha()}
}
