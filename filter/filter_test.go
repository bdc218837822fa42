package filter_test

import (
	"math"
	"testing"

	"github.com/naisuuuu/fir/filter"
)

func TestRadius(t *testing.T) {
	tests := []struct {
		t    filter.Type
		want float64
	}{
		{filter.Box, 0.5},
		{filter.Bilinear, 1},
		{filter.Hamming, 1},
		{filter.CatmullRom, 2},
		{filter.Mitchell, 2},
		{filter.Gaussian, 2},
		{filter.Lanczos3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.t.String(), func(t *testing.T) {
			if got := tt.t.Radius(); got != tt.want {
				t.Errorf("Radius() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKernelAtZero(t *testing.T) {
	for _, tt := range []filter.Type{filter.Box, filter.Bilinear, filter.Hamming, filter.CatmullRom, filter.Mitchell, filter.Gaussian, filter.Lanczos3} {
		if got := tt.Kernel(0); got <= 0 {
			t.Errorf("%s.Kernel(0) = %v, want > 0", tt, got)
		}
	}
}

func TestKernelOutsideSupportIsZero(t *testing.T) {
	for _, tt := range []filter.Type{filter.Box, filter.Bilinear, filter.Hamming, filter.CatmullRom, filter.Mitchell, filter.Gaussian, filter.Lanczos3} {
		x := tt.Radius() + 0.5
		if got := tt.Kernel(x); got != 0 {
			t.Errorf("%s.Kernel(%v) = %v, want 0", tt, x, got)
		}
	}
}

func TestBilinearIsTriangle(t *testing.T) {
	if got := filter.Bilinear.Kernel(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Bilinear.Kernel(0.5) = %v, want 0.5", got)
	}
	if got := filter.Bilinear.Kernel(1); got != 0 {
		t.Errorf("Bilinear.Kernel(1) = %v, want 0", got)
	}
}

func TestLanczos3HasNegativeLobe(t *testing.T) {
	neg := false
	for x := 1.0; x < 3; x += 0.05 {
		if filter.Lanczos3.Kernel(x) < 0 {
			neg = true
			break
		}
	}
	if !neg {
		t.Error("expected Lanczos3 to have a negative lobe between its first and last zero crossings")
	}
}

func TestCatmullRomMatchesClosedForm(t *testing.T) {
	// spec.md's closed form at x=0.5 within the first piece: 1.5x^3-2.5x^2+1.
	x := 0.5
	want := 1.5*x*x*x - 2.5*x*x + 1
	if got := filter.CatmullRom.Kernel(x); math.Abs(got-want) > 1e-9 {
		t.Errorf("CatmullRom.Kernel(0.5) = %v, want %v", got, want)
	}
}
