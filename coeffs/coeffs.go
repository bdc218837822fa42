// Package coeffs implements the coefficient builder (spec.md §4.2): for a
// given (src_size, dst_size, filter) triple it produces one fixed-point
// weight record per destination index, quantized to a single precision
// shared across the whole axis so the convolution kernels can bake the
// right-shift as a constant.
//
// The float windowing pass here is the direct descendant of the teacher's
// imgutil.newDistrib (naisuuuu-mangaconv/imgutil/scale.go): same centering
// formula, same "widen support under downscale" rule, same end-of-row
// clamp-by-sliding. What's added on top is spec.md's fixed-point
// quantization step, which imgutil never needed because it only ever
// produces float64 weights.
package coeffs

import (
	"errors"
	"math"
	"sort"

	"github.com/naisuuuu/fir/filter"
)

// ErrInvalidDimensions is returned when srcSize or dstSize is not positive.
var ErrInvalidDimensions = errors.New("coeffs: srcSize and dstSize must be >= 1")

// Accumulator selects the accumulator width the resulting table's weights
// must be safe to multiply-accumulate into, which bounds the maximum
// usable precision (spec.md §4.2: "the tightest precision that still lets
// the multiply-accumulate not overflow the kernel's accumulator").
type Accumulator int

const (
	// Accum32 is used by u8 pixel paths: i32 accumulator, weights kept
	// within signed 16-bit range so SIMD-shaped kernels can widen-multiply.
	Accum32 Accumulator = iota
	// Accum64 is used by u16 pixel paths: i64 accumulator, weights kept
	// within signed 32-bit range.
	Accum64
)

func (a Accumulator) maxPrecision() int {
	switch a {
	case Accum32:
		return 14
	case Accum64:
		return 15
	default:
		panic("coeffs: invalid Accumulator")
	}
}

func (a Accumulator) weightLimit() int64 {
	switch a {
	case Accum32:
		return math.MaxInt16
	case Accum64:
		return math.MaxInt32
	default:
		panic("coeffs: invalid Accumulator")
	}
}

// Record is the per-output-pixel coefficient tuple: the first source index
// in its support, and the weights contributed by each source index in
// [Start, Start+len(Weights)).
type Record struct {
	Start   int
	Weights []int32
}

// Table holds one coefficient record per destination index along a single
// axis, all sharing Precision fractional bits. Weights sum to 1<<Precision
// exactly for every record.
type Table struct {
	Precision int
	Records   []Record
}

// Build computes the coefficient table mapping srcSize source positions to
// dstSize destination positions under filter ft, with weights quantized
// for accum's accumulator width.
func Build(srcSize, dstSize int, ft filter.Type, accum Accumulator) (Table, error) {
	if srcSize < 1 || dstSize < 1 {
		return Table{}, ErrInvalidDimensions
	}

	scale := float64(srcSize) / float64(dstSize)
	filterScale := math.Max(1, scale)
	radius := ft.Radius() * filterScale

	type window struct {
		start, end int // inclusive source index bounds
		weights    []float64
	}
	windows := make([]window, dstSize)
	maxAbs := 0.0

	for i := 0; i < dstSize; i++ {
		center := (float64(i)+0.5)*scale - 0.5
		start := int(math.Ceil(center - radius))
		end := int(math.Floor(center + radius))

		// Slide the whole window rather than truncating asymmetrically.
		if start < 0 {
			end += -start
			start = 0
		}
		if end > srcSize-1 {
			start -= end - (srcSize - 1)
			end = srcSize - 1
		}
		if start < 0 {
			start = 0
		}
		if end > srcSize-1 {
			end = srcSize - 1
		}
		if end < start {
			end = start
		}

		n := end - start + 1
		weights := make([]float64, n)
		sum := 0.0
		for j := 0; j < n; j++ {
			w := ft.Kernel((float64(start+j) - center) / filterScale)
			weights[j] = w
			sum += w
		}
		if sum == 0 {
			// Degenerate support (e.g. srcSize == 1): fall back to an
			// unweighted single tap rather than dividing by zero.
			for j := range weights {
				weights[j] = 1.0 / float64(n)
			}
		} else {
			for j := range weights {
				weights[j] /= sum
				if a := math.Abs(weights[j]); a > maxAbs {
					maxAbs = a
				}
			}
		}

		windows[i] = window{start: start, end: end, weights: weights}
	}

	precision := accum.maxPrecision()
	limit := accum.weightLimit()
	for precision > 1 {
		if int64(math.Round(maxAbs*float64(int64(1)<<uint(precision)))) <= limit {
			break
		}
		precision--
	}
	scaleInt := int64(1) << uint(precision)

	records := make([]Record, dstSize)
	for i, w := range windows {
		records[i] = Record{Start: w.start, Weights: quantize(w.weights, scaleInt)}
	}

	return Table{Precision: precision, Records: records}, nil
}

// quantize rounds each float weight to a fixed-point integer with the
// given scale, then corrects the single weight with the largest rounding
// residual so the quantized weights sum to scale exactly (spec.md §9's
// open question: a deterministic, single largest-residual correction).
func quantize(weights []float64, scale int64) []int32 {
	q := make([]int32, len(weights))
	residual := make([]float64, len(weights))
	var sum int64
	for i, w := range weights {
		exact := w * float64(scale)
		rounded := math.Round(exact)
		q[i] = int32(rounded)
		residual[i] = exact - rounded
		sum += int64(q[i])
	}

	diff := scale - sum
	if diff == 0 || len(q) == 0 {
		return q
	}

	// Largest-residual correction: the weight whose rounding discarded the
	// most value absorbs the remaining difference. Ties broken by lowest
	// index for determinism.
	order := make([]int, len(q))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := math.Abs(residual[order[a]]), math.Abs(residual[order[b]])
		if ra == rb {
			return order[a] < order[b]
		}
		return ra > rb
	})
	q[order[0]] += int32(diff)
	return q
}
