package fir

import "github.com/naisuuuu/fir/filter"

// algKind discriminates the ResizeAlg tagged union (spec.md §3:
// "Nearest | Convolution(FilterType) | SuperSampling(FilterType, k) |
// Interpolation(FilterType)"), plus an Auto variant for the "sensible
// default dispatcher" spec.md describes inline rather than naming.
type algKind int

const (
	algNearest algKind = iota
	algConvolution
	algSuperSampling
	algInterpolation
	algAuto
)

// ResizeAlg selects the resampling algorithm a Resizer uses.
type ResizeAlg struct {
	kind   algKind
	filter filter.Type
	k      int
}

// Nearest selects nearest-neighbour sampling: no filter, no coefficients.
func Nearest() ResizeAlg { return ResizeAlg{kind: algNearest} }

// Convolution selects plain two-pass convolution with filter f.
func Convolution(f filter.Type) ResizeAlg { return ResizeAlg{kind: algConvolution, filter: f} }

// SuperSampling box-averages k×k source blocks before convolving with
// filter f. k < 2 behaves like plain Convolution on that axis.
func SuperSampling(f filter.Type, k int) ResizeAlg {
	return ResizeAlg{kind: algSuperSampling, filter: f, k: k}
}

// Interpolation selects plain convolution with no box-average pre-pass,
// for callers that know they are only ever upscaling.
func Interpolation(f filter.Type) ResizeAlg { return ResizeAlg{kind: algInterpolation, filter: f} }

// Auto selects, independently per axis, SuperSampling with
// k = floor(src/dst) when k ≥ 2, else plain Convolution — the "sensible
// default dispatcher" spec.md §3 describes. Both passes use filter f.
func Auto(f filter.Type) ResizeAlg { return ResizeAlg{kind: algAuto, filter: f} }
