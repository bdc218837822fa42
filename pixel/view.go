package pixel

import (
	"errors"
	"unsafe"
)

// ErrPixelTypeMismatch is returned when a view is requested over an Image
// whose PixelType does not match the view's type parameter.
var ErrPixelTypeMismatch = errors.New("pixel: pixel type mismatch")

// View is a typed, bounds-checked, read-only window over an Image's pixel
// buffer. A View's lifetime is bounded by the backing Image: it holds no
// copy of the pixel data.
type View[P Pixel] struct {
	img *Image
}

// NewView returns a View[P] over img, or ErrPixelTypeMismatch if img's
// PixelType does not match P.
func NewView[P Pixel](img *Image) (View[P], error) {
	if TypeOf[P]() != img.PixelType() {
		return View[P]{}, ErrPixelTypeMismatch
	}
	return View[P]{img: img}, nil
}

// Width returns the view's width in pixels.
func (v View[P]) Width() int { return v.img.width }

// Height returns the view's height in pixels.
func (v View[P]) Height() int { return v.img.height }

// Row returns row y as a contiguous slice of exactly Width() pixels.
func (v View[P]) Row(y int) []P {
	return rowSlice[P](v.img, y)
}

// ViewMut is a typed, bounds-checked, mutable window over an Image's pixel
// buffer.
type ViewMut[P Pixel] struct {
	img *Image
}

// NewViewMut returns a ViewMut[P] over img, or ErrPixelTypeMismatch if
// img's PixelType does not match P.
func NewViewMut[P Pixel](img *Image) (ViewMut[P], error) {
	if TypeOf[P]() != img.PixelType() {
		return ViewMut[P]{}, ErrPixelTypeMismatch
	}
	return ViewMut[P]{img: img}, nil
}

// Width returns the view's width in pixels.
func (v ViewMut[P]) Width() int { return v.img.width }

// Height returns the view's height in pixels.
func (v ViewMut[P]) Height() int { return v.img.height }

// Row returns row y as a contiguous, read-only slice of exactly Width()
// pixels.
func (v ViewMut[P]) Row(y int) []P { return rowSlice[P](v.img, y) }

// RowMut returns row y as a contiguous, mutable slice of exactly Width()
// pixels.
func (v ViewMut[P]) RowMut(y int) []P { return rowSlice[P](v.img, y) }

// rowSlice reinterprets row y of img's backing buffer as a []P. Safe
// because P's field layout matches the byte layout of img's PixelType
// exactly (see types.go) — on little-endian hosts. types.go documents the
// big-endian scope narrowing this implies.
func rowSlice[P Pixel](img *Image, y int) []P {
	b := img.row(y)
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*P)(unsafe.Pointer(&b[0])), img.width)
}
