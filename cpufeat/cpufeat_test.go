package cpufeat_test

import (
	"testing"

	"github.com/naisuuuu/fir/cpufeat"
)

func TestDetectReturnsSupportedTier(t *testing.T) {
	got := cpufeat.Detect()
	switch got {
	case cpufeat.Scalar, cpufeat.SSE41, cpufeat.AVX2, cpufeat.NEON, cpufeat.WASMSIMD128:
	default:
		t.Fatalf("Detect returned unrecognized tier %v", got)
	}
}

func TestDetectNeverReturnsWASMSIMD128(t *testing.T) {
	// x/sys/cpu has no portable WASM SIMD128 detection, so the native
	// detector must never claim it even if it compiled under GOARCH=wasm.
	if got := cpufeat.Detect(); got == cpufeat.WASMSIMD128 {
		t.Fatalf("Detect claimed WASMSIMD128, which is never auto-detected")
	}
}

func TestClampNeverExceedsDetected(t *testing.T) {
	cases := []struct{ detected, requested cpufeat.Extensions }{
		{cpufeat.Scalar, cpufeat.AVX2},
		{cpufeat.SSE41, cpufeat.AVX2},
		{cpufeat.AVX2, cpufeat.AVX2},
		{cpufeat.AVX2, cpufeat.Scalar},
	}
	for _, c := range cases {
		got := cpufeat.Clamp(c.detected, c.requested)
		if got > c.detected {
			t.Fatalf("Clamp(%v, %v) = %v, exceeds detected", c.detected, c.requested, got)
		}
	}
}

func TestClampPicksRequestedWhenWeaker(t *testing.T) {
	if got := cpufeat.Clamp(cpufeat.AVX2, cpufeat.Scalar); got != cpufeat.Scalar {
		t.Fatalf("Clamp(AVX2, Scalar) = %v, want Scalar", got)
	}
}

func TestForceUnsafeReturnsRequestedVerbatim(t *testing.T) {
	if got := cpufeat.ForceUnsafe(cpufeat.NEON); got != cpufeat.NEON {
		t.Fatalf("ForceUnsafe(NEON) = %v, want NEON", got)
	}
}

func TestStringNamesAllTiers(t *testing.T) {
	tiers := []cpufeat.Extensions{cpufeat.Scalar, cpufeat.SSE41, cpufeat.AVX2, cpufeat.NEON, cpufeat.WASMSIMD128}
	for _, tier := range tiers {
		if tier.String() == "unknown" {
			t.Fatalf("tier %d has no name", int(tier))
		}
	}
}
