package convolution_test

import (
	"testing"

	"github.com/naisuuuu/fir/coeffs"
	"github.com/naisuuuu/fir/convolution"
	"github.com/naisuuuu/fir/filter"
	"github.com/naisuuuu/fir/pixel"
)

func newImage(t *testing.T, w, h int, pt pixel.PixelType) *pixel.Image {
	t.Helper()
	img, err := pixel.NewImage(w, h, pt)
	if err != nil {
		t.Fatalf("NewImage() error = %v", err)
	}
	return img
}

// A same-size Box-filtered horizontal pass is the identity: each output tap
// lands exactly on one source pixel with weight 1.
func TestHorizontalBoxIdentity(t *testing.T) {
	const w, h = 5, 3
	src := newImage(t, w, h, pixel.TypeU8x3)
	srcV, err := pixel.NewViewMut[pixel.U8x3](src)
	if err != nil {
		t.Fatalf("NewViewMut() error = %v", err)
	}
	for y := 0; y < h; y++ {
		row := srcV.RowMut(y)
		for x := range row {
			row[x] = pixel.U8x3{R: uint8(x * 10), G: uint8(y * 5), B: uint8(x + y)}
		}
	}

	dst := newImage(t, w, h, pixel.TypeU8x3)
	dstV, err := pixel.NewViewMut[pixel.U8x3](dst)
	if err != nil {
		t.Fatalf("NewViewMut() error = %v", err)
	}

	tbl, err := coeffs.Build(w, w, filter.Box, coeffs.Accum32)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	srcRO, err := pixel.NewView[pixel.U8x3](src)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	convolution.Horizontal[pixel.U8x3](srcRO, dstV, tbl)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			want := srcV.Row(y)[x]
			got := dstV.Row(y)[x]
			if got != want {
				t.Errorf("(%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

// Same shape as TestHorizontalBoxIdentity but along the vertical axis.
func TestVerticalBoxIdentity(t *testing.T) {
	const w, h = 3, 6
	src := newImage(t, w, h, pixel.TypeU16x4)
	srcV, err := pixel.NewViewMut[pixel.U16x4](src)
	if err != nil {
		t.Fatalf("NewViewMut() error = %v", err)
	}
	for y := 0; y < h; y++ {
		row := srcV.RowMut(y)
		for x := range row {
			row[x] = pixel.U16x4{R: uint16(x * 100), G: uint16(y * 50), B: uint16(x + y), A: 65535}
		}
	}

	dst := newImage(t, w, h, pixel.TypeU16x4)
	dstV, err := pixel.NewViewMut[pixel.U16x4](dst)
	if err != nil {
		t.Fatalf("NewViewMut() error = %v", err)
	}

	tbl, err := coeffs.Build(h, h, filter.Box, coeffs.Accum64)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	srcRO, err := pixel.NewView[pixel.U16x4](src)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	convolution.Vertical[pixel.U16x4](srcRO, dstV, tbl)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			want := srcV.Row(y)[x]
			got := dstV.Row(y)[x]
			if got != want {
				t.Errorf("(%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

// A uniformly white row must stay white under any filter: its quantized
// weights sum to exactly 1<<precision (coeffs.Build's largest-residual
// correction), so the weighted average of a constant is that constant
// exactly, and the result must land at the channel max without overshoot
// from the rounding bias.
func TestHorizontalUniformRowStaysAtMax(t *testing.T) {
	const srcW, dstW, h = 10, 3, 1
	src := newImage(t, srcW, h, pixel.TypeU8)
	srcV, err := pixel.NewViewMut[pixel.U8](src)
	if err != nil {
		t.Fatalf("NewViewMut() error = %v", err)
	}
	for x := 0; x < srcW; x++ {
		srcV.RowMut(0)[x] = pixel.U8{L: 255}
	}

	dst := newImage(t, dstW, h, pixel.TypeU8)
	dstV, err := pixel.NewViewMut[pixel.U8](dst)
	if err != nil {
		t.Fatalf("NewViewMut() error = %v", err)
	}

	tbl, err := coeffs.Build(srcW, dstW, filter.Lanczos3, coeffs.Accum32)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	srcRO, err := pixel.NewView[pixel.U8](src)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	convolution.Horizontal[pixel.U8](srcRO, dstV, tbl)

	for x := 0; x < dstW; x++ {
		if got := dstV.Row(0)[x].L; got != 255 {
			t.Errorf("dst[%d] = %d, want 255 (a uniform white row must stay white)", x, got)
		}
	}
}

// TestConvolutionClampsRingingUndershoot is the S4 seed scenario: an 8x8
// near-black source with a bright 2x2 center, resized to 4x4 under Lanczos3.
// Lanczos3's negative lobes make the accumulator at the dark corners dip
// below zero once the bright center is in range; saturate() must clamp that
// back to 0 rather than wrapping or leaving a negative value in the output.
func TestConvolutionClampsRingingUndershoot(t *testing.T) {
	const srcN, dstN = 8, 4
	src := newImage(t, srcN, srcN, pixel.TypeU8)
	srcV, err := pixel.NewViewMut[pixel.U8](src)
	if err != nil {
		t.Fatalf("NewViewMut() error = %v", err)
	}
	for y := 0; y < srcN; y++ {
		row := srcV.RowMut(y)
		for x := range row {
			row[x] = pixel.U8{L: 1}
		}
	}
	for y := 3; y < 5; y++ {
		row := srcV.RowMut(y)
		for x := 3; x < 5; x++ {
			row[x] = pixel.U8{L: 255}
		}
	}

	htbl, err := coeffs.Build(srcN, dstN, filter.Lanczos3, coeffs.Accum32)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	vtbl, err := coeffs.Build(srcN, dstN, filter.Lanczos3, coeffs.Accum32)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	mid := newImage(t, dstN, srcN, pixel.TypeU8)
	midV, err := pixel.NewViewMut[pixel.U8](mid)
	if err != nil {
		t.Fatalf("NewViewMut() error = %v", err)
	}
	srcRO, err := pixel.NewView[pixel.U8](src)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	convolution.Horizontal[pixel.U8](srcRO, midV, htbl)

	dst := newImage(t, dstN, dstN, pixel.TypeU8)
	dstV, err := pixel.NewViewMut[pixel.U8](dst)
	if err != nil {
		t.Fatalf("NewViewMut() error = %v", err)
	}
	midRO, err := pixel.NewView[pixel.U8](mid)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	convolution.Vertical[pixel.U8](midRO, dstV, vtbl)

	for y := 0; y < dstN; y++ {
		for x, p := range dstV.Row(y) {
			if p.L > 255 {
				t.Fatalf("(%d,%d) = %d, want <= 255", x, y, p.L)
			}
		}
	}
	// L is unsigned: a missing clamp doesn't show up as "negative" here, it
	// shows up as wraparound. A negative accumulator quantized straight to
	// uint8 without saturate() wraps to a value near 255; the corners,
	// farthest from the bright center, must instead land near the dark
	// background (1) once properly clamped to 0.
	corners := []struct{ x, y int }{{0, 0}, {dstN - 1, 0}, {0, dstN - 1}, {dstN - 1, dstN - 1}}
	for _, c := range corners {
		if got := dstV.Row(c.y)[c.x].L; got > 40 {
			t.Fatalf("corner (%d,%d) = %d, want a small value near background (ringing undershoot must clamp to 0, not wrap around)", c.x, c.y, got)
		}
	}
}

func TestHorizontalFloatIdentity(t *testing.T) {
	const w, h = 4, 1
	src := newImage(t, w, h, pixel.TypeF32)
	srcV, err := pixel.NewViewMut[pixel.F32](src)
	if err != nil {
		t.Fatalf("NewViewMut() error = %v", err)
	}
	for x := 0; x < w; x++ {
		srcV.RowMut(0)[x] = pixel.F32{V: float32(x) * 1.5}
	}

	dst := newImage(t, w, h, pixel.TypeF32)
	dstV, err := pixel.NewViewMut[pixel.F32](dst)
	if err != nil {
		t.Fatalf("NewViewMut() error = %v", err)
	}

	tbl, err := coeffs.Build(w, w, filter.Box, coeffs.Accum32)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	srcRO, err := pixel.NewView[pixel.F32](src)
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	convolution.HorizontalFloat(srcRO, dstV, tbl)

	for x := 0; x < w; x++ {
		want := srcV.Row(0)[x].V
		got := dstV.Row(0)[x].V
		if diff := want - got; diff < -1e-4 || diff > 1e-4 {
			t.Errorf("dst[%d] = %v, want %v", x, got, want)
		}
	}
}
