// Package fir implements a separable two-pass raster image resampler
// (spec.md §1–§9): typed pixel views, a fixed-point coefficient builder,
// an alpha premultiply/unpremultiply pipeline, horizontal/vertical
// convolution, nearest-neighbour sampling, and the façade that dispatches
// between them.
//
// fir plays the role mangaconv played in the teacher repo: a small façade
// package (Resizer, ResizeAlg, Options) sitting on top of a set of
// leaf-level toolkit packages (pixel, filter, coeffs, alpha, convolution,
// nearest, cpufeat) — one façade constructor holding reusable state
// (coefficient cache, scratch buffers), mirroring the teacher's
// mangaconv.New(Params) *Converter holding its cacheScaler and pool.
package fir

import (
	"github.com/naisuuuu/fir/alpha"
	"github.com/naisuuuu/fir/coeffs"
	"github.com/naisuuuu/fir/convolution"
	"github.com/naisuuuu/fir/cpufeat"
	"github.com/naisuuuu/fir/filter"
	"github.com/naisuuuu/fir/nearest"
	"github.com/naisuuuu/fir/pixel"
)

// Resizer holds the chosen algorithm, the active CPU extension tier, a
// coefficient-table cache keyed by (axis, srcSize, dstSize, filter,
// accumulator width), and
// scratch buffers reused across calls (spec.md §4.7, §5). A Resizer is
// single-owner: two goroutines must not call Resize on the same instance
// concurrently, because it mutates the cache and scratch buffers. Two
// Resizer instances over disjoint memory may run on separate goroutines
// without synchronization.
type Resizer struct {
	alg      ResizeAlg
	detected cpufeat.Extensions
	cpu      cpufeat.Extensions
	cache    map[coeffKey]coeffs.Table

	boxBuf, passBuf, alphaBuf []byte
}

type coeffKey struct {
	axis             byte
	srcSize, dstSize int
	filter           filter.Type
	accum            coeffs.Accumulator
}

// New returns a Resizer using alg, with CPU extensions detected from the
// running host.
func New(alg ResizeAlg) *Resizer {
	d := cpufeat.Detect()
	return &Resizer{
		alg:      alg,
		detected: d,
		cpu:      d,
		cache:    make(map[coeffKey]coeffs.Table),
	}
}

// CPUExtensions reports the tier this Resizer currently kernels against.
func (r *Resizer) CPUExtensions() cpufeat.Extensions { return r.cpu }

// SetCPUExtensions narrows the Resizer to ext. Per spec.md §4.8, callers
// may only move downward from what was detected at construction — any tier
// at or below r.detected, not just Scalar or r.detected itself — via
// cpufeat.Clamp; a request above r.detected returns ErrUnsupportedCPUExtension
// and leaves the Resizer unchanged.
func (r *Resizer) SetCPUExtensions(ext cpufeat.Extensions) error {
	if ext > r.detected {
		return ErrUnsupportedCPUExtension
	}
	r.cpu = cpufeat.Clamp(r.detected, ext)
	return nil
}

// SetCPUExtensionsUnsafe forces ext regardless of what was detected. An
// unsupported tier can crash the process (illegal instruction) or
// silently miscompute; only use this when the deployment target is known
// to support ext.
func (r *Resizer) SetCPUExtensionsUnsafe(ext cpufeat.Extensions) {
	r.cpu = cpufeat.ForceUnsafe(ext)
}

// Resize fills dst from src under the Resizer's algorithm and opts. src
// and dst must share a pixel type; both must have width and height ≥ 1
// (guaranteed by every pixel.Image constructor, so this only rejects a
// mismatched pair).
func (r *Resizer) Resize(src, dst *pixel.Image, opts Options) error {
	if src.PixelType() != dst.PixelType() {
		return ErrPixelTypeMismatch
	}

	switch src.PixelType() {
	case pixel.TypeU8:
		return resizePlain[pixel.U8](r, src, dst)
	case pixel.TypeU8x3:
		return resizePlain[pixel.U8x3](r, src, dst)
	case pixel.TypeU16:
		return resizePlain[pixel.U16](r, src, dst)
	case pixel.TypeU16x3:
		return resizePlain[pixel.U16x3](r, src, dst)
	case pixel.TypeI32:
		return resizePlain[pixel.I32](r, src, dst)
	case pixel.TypeF32:
		return r.resizeFloat(src, dst)
	case pixel.TypeU8x2:
		return r.resizeU8x2(src, dst, opts)
	case pixel.TypeU8x4:
		return r.resizeU8x4(src, dst, opts)
	case pixel.TypeU16x2:
		return r.resizeU16x2(src, dst, opts)
	case pixel.TypeU16x4:
		return r.resizeU16x4(src, dst, opts)
	default:
		return ErrPixelTypeMismatch
	}
}

func resizePlain[P pixel.Pixel](r *Resizer, src, dst *pixel.Image) error {
	srcV, err := pixel.NewView[P](src)
	if err != nil {
		return err
	}
	dstV, err := pixel.NewViewMut[P](dst)
	if err != nil {
		return err
	}
	return resizeCore(r, srcV, dstV)
}

func (r *Resizer) resizeU8x2(src, dst *pixel.Image, opts Options) error {
	srcV, err := pixel.NewView[pixel.U8x2](src)
	if err != nil {
		return err
	}
	dstV, err := pixel.NewViewMut[pixel.U8x2](dst)
	if err != nil {
		return err
	}
	if !opts.MulDivAlpha {
		return resizeCore(r, srcV, dstV)
	}
	tmp, err := r.alphaImage(src.Width(), src.Height(), pixel.TypeU8x2)
	if err != nil {
		return err
	}
	tmpV, _ := pixel.NewViewMut[pixel.U8x2](tmp)
	alpha.Multiply(srcV, tmpV)
	tmpRO, _ := pixel.NewView[pixel.U8x2](tmp)
	if err := resizeCore(r, tmpRO, dstV); err != nil {
		return err
	}
	alpha.DivideInplace(dstV)
	return nil
}

func (r *Resizer) resizeU8x4(src, dst *pixel.Image, opts Options) error {
	srcV, err := pixel.NewView[pixel.U8x4](src)
	if err != nil {
		return err
	}
	dstV, err := pixel.NewViewMut[pixel.U8x4](dst)
	if err != nil {
		return err
	}
	if !opts.MulDivAlpha {
		return resizeCore(r, srcV, dstV)
	}
	tmp, err := r.alphaImage(src.Width(), src.Height(), pixel.TypeU8x4)
	if err != nil {
		return err
	}
	tmpV, _ := pixel.NewViewMut[pixel.U8x4](tmp)
	alpha.MultiplyRGBA(srcV, tmpV)
	tmpRO, _ := pixel.NewView[pixel.U8x4](tmp)
	if err := resizeCore(r, tmpRO, dstV); err != nil {
		return err
	}
	alpha.DivideRGBAInplace(dstV)
	return nil
}

func (r *Resizer) resizeU16x2(src, dst *pixel.Image, opts Options) error {
	srcV, err := pixel.NewView[pixel.U16x2](src)
	if err != nil {
		return err
	}
	dstV, err := pixel.NewViewMut[pixel.U16x2](dst)
	if err != nil {
		return err
	}
	if !opts.MulDivAlpha {
		return resizeCore(r, srcV, dstV)
	}
	tmp, err := r.alphaImage(src.Width(), src.Height(), pixel.TypeU16x2)
	if err != nil {
		return err
	}
	tmpV, _ := pixel.NewViewMut[pixel.U16x2](tmp)
	alpha.Multiply64(srcV, tmpV)
	tmpRO, _ := pixel.NewView[pixel.U16x2](tmp)
	if err := resizeCore(r, tmpRO, dstV); err != nil {
		return err
	}
	alpha.Divide64Inplace(dstV)
	return nil
}

func (r *Resizer) resizeU16x4(src, dst *pixel.Image, opts Options) error {
	srcV, err := pixel.NewView[pixel.U16x4](src)
	if err != nil {
		return err
	}
	dstV, err := pixel.NewViewMut[pixel.U16x4](dst)
	if err != nil {
		return err
	}
	if !opts.MulDivAlpha {
		return resizeCore(r, srcV, dstV)
	}
	tmp, err := r.alphaImage(src.Width(), src.Height(), pixel.TypeU16x4)
	if err != nil {
		return err
	}
	tmpV, _ := pixel.NewViewMut[pixel.U16x4](tmp)
	alpha.MultiplyRGBA64(srcV, tmpV)
	tmpRO, _ := pixel.NewView[pixel.U16x4](tmp)
	if err := resizeCore(r, tmpRO, dstV); err != nil {
		return err
	}
	alpha.DivideRGBA64Inplace(dstV)
	return nil
}

// resizeCore implements the C9 dispatch tree of spec.md §4.7 steps 2-5 for
// any non-float pixel type: Nearest short-circuits, otherwise an optional
// per-axis SuperSampling box-average pre-pass feeds a horizontal pass
// (skipped if widths already match) and a vertical pass (skipped if
// heights already match).
func resizeCore[P pixel.Pixel](r *Resizer, src pixel.View[P], dst pixel.ViewMut[P]) error {
	if r.alg.kind == algNearest {
		nearest.Resize[P](src, dst)
		return nil
	}

	f := r.alg.filter
	accum := accumFor[P]()
	cur := src

	kx, ky := superSamplingFactors(r.alg, src.Width(), src.Height(), dst.Width(), dst.Height())
	if kx >= 2 || ky >= 2 {
		bw, bh := src.Width(), src.Height()
		if kx >= 2 {
			bw = src.Width() / kx
		} else {
			kx = 1
		}
		if ky >= 2 {
			bh = src.Height() / ky
		} else {
			ky = 1
		}
		box, err := r.boxImage(bw, bh, pixel.TypeOf[P]())
		if err != nil {
			return err
		}
		boxV, _ := pixel.NewViewMut[P](box)
		convolution.BoxAverage[P](cur, boxV, kx, ky)
		boxRO, _ := pixel.NewView[P](box)
		cur = boxRO
	}

	mid := cur
	if cur.Width() != dst.Width() {
		tbl, err := r.coeffTable('h', cur.Width(), dst.Width(), f, accum)
		if err != nil {
			return err
		}
		passImg, err := r.passImage(dst.Width(), cur.Height(), pixel.TypeOf[P]())
		if err != nil {
			return err
		}
		passV, _ := pixel.NewViewMut[P](passImg)
		convolution.Horizontal[P](cur, passV, tbl)
		passRO, _ := pixel.NewView[P](passImg)
		mid = passRO
	}

	if mid.Height() != dst.Height() {
		tbl, err := r.coeffTable('v', mid.Height(), dst.Height(), f, accum)
		if err != nil {
			return err
		}
		convolution.Vertical[P](mid, dst, tbl)
		return nil
	}

	for y := 0; y < mid.Height(); y++ {
		copy(dst.RowMut(y), mid.Row(y))
	}
	return nil
}

// superSamplingFactors returns the per-axis block factor the resizeCore
// box-average pre-pass should use, or (1, 1) when none applies.
func superSamplingFactors(alg ResizeAlg, srcW, srcH, dstW, dstH int) (kx, ky int) {
	switch alg.kind {
	case algSuperSampling:
		kx, ky = 1, 1
		if dstW < srcW {
			kx = alg.k
		}
		if dstH < srcH {
			ky = alg.k
		}
		return kx, ky
	case algAuto:
		kx, ky = 1, 1
		if dstW < srcW {
			if k := srcW / dstW; k >= 2 {
				kx = k
			}
		}
		if dstH < srcH {
			if k := srcH / dstH; k >= 2 {
				ky = k
			}
		}
		return kx, ky
	default:
		return 1, 1
	}
}

func accumFor[P pixel.Pixel]() coeffs.Accumulator {
	switch pixel.TypeOf[P]() {
	case pixel.TypeU8, pixel.TypeU8x2, pixel.TypeU8x3, pixel.TypeU8x4:
		return coeffs.Accum32
	default:
		return coeffs.Accum64
	}
}

func (r *Resizer) coeffTable(axis byte, srcSize, dstSize int, f filter.Type, accum coeffs.Accumulator) (coeffs.Table, error) {
	key := coeffKey{axis: axis, srcSize: srcSize, dstSize: dstSize, filter: f, accum: accum}
	if t, ok := r.cache[key]; ok {
		return t, nil
	}
	t, err := coeffs.Build(srcSize, dstSize, f, accum)
	if err != nil {
		return coeffs.Table{}, err
	}
	r.cache[key] = t
	return t, nil
}

func (r *Resizer) boxImage(w, h int, pt pixel.PixelType) (*pixel.Image, error) {
	return pixel.FromBytesStrided(w, h, pt, w*pt.Size(), growScratch(&r.boxBuf, w*pt.Size()*h))
}

func (r *Resizer) passImage(w, h int, pt pixel.PixelType) (*pixel.Image, error) {
	return pixel.FromBytesStrided(w, h, pt, w*pt.Size(), growScratch(&r.passBuf, w*pt.Size()*h))
}

func (r *Resizer) alphaImage(w, h int, pt pixel.PixelType) (*pixel.Image, error) {
	return pixel.FromBytesStrided(w, h, pt, w*pt.Size(), growScratch(&r.alphaBuf, w*pt.Size()*h))
}

// growScratch returns a length-need slice backed by *buf, reallocating
// only when the existing backing array is too small (spec.md §5/§9:
// "scratch buffer grows to max(seen dimensions) and is reused").
func growScratch(buf *[]byte, need int) []byte {
	if len(*buf) < need {
		*buf = make([]byte, need)
	}
	return (*buf)[:need]
}

// resizeFloat is the F32 counterpart of resizeCore. F32 has no alpha
// variant and accumulates in floating point with no saturation (it still
// takes its weights from the quantized Accum64 coefficient tables, see
// convolution.HorizontalFloat), so it is kept separate from the generic
// integer path instead of forcing
// HorizontalFloat/VerticalFloat through the loadChannels/storeChannels
// machinery that only supports integer-representable channels.
func (r *Resizer) resizeFloat(src, dst *pixel.Image) error {
	srcV, err := pixel.NewView[pixel.F32](src)
	if err != nil {
		return err
	}
	dstV, err := pixel.NewViewMut[pixel.F32](dst)
	if err != nil {
		return err
	}

	if r.alg.kind == algNearest {
		nearest.Resize[pixel.F32](srcV, dstV)
		return nil
	}

	f := r.alg.filter
	cur := srcV

	kx, ky := superSamplingFactors(r.alg, srcV.Width(), srcV.Height(), dstV.Width(), dstV.Height())
	if kx >= 2 || ky >= 2 {
		bw, bh := srcV.Width(), srcV.Height()
		if kx >= 2 {
			bw = srcV.Width() / kx
		} else {
			kx = 1
		}
		if ky >= 2 {
			bh = srcV.Height() / ky
		} else {
			ky = 1
		}
		box, err := r.boxImage(bw, bh, pixel.TypeF32)
		if err != nil {
			return err
		}
		boxV, _ := pixel.NewViewMut[pixel.F32](box)
		convolution.BoxAverageFloat(cur, boxV, kx, ky)
		boxRO, _ := pixel.NewView[pixel.F32](box)
		cur = boxRO
	}

	mid := cur
	if cur.Width() != dstV.Width() {
		tbl, err := r.coeffTable('h', cur.Width(), dstV.Width(), f, coeffs.Accum64)
		if err != nil {
			return err
		}
		passImg, err := r.passImage(dstV.Width(), cur.Height(), pixel.TypeF32)
		if err != nil {
			return err
		}
		passV, _ := pixel.NewViewMut[pixel.F32](passImg)
		convolution.HorizontalFloat(cur, passV, tbl)
		passRO, _ := pixel.NewView[pixel.F32](passImg)
		mid = passRO
	}

	if mid.Height() != dstV.Height() {
		tbl, err := r.coeffTable('v', mid.Height(), dstV.Height(), f, coeffs.Accum64)
		if err != nil {
			return err
		}
		convolution.VerticalFloat(mid, dstV, tbl)
		return nil
	}

	for y := 0; y < mid.Height(); y++ {
		copy(dstV.RowMut(y), mid.Row(y))
	}
	return nil
}
