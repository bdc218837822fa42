// Package cpufeat implements runtime CPU feature detection (spec.md §4.8,
// component C10): at Resizer construction time, find the best available
// instruction-set extension and report it through structured logging, the
// same way CWBudde-MayFlyCircleFit's fit.ssd.go detects AVX2/NEON at init()
// time via golang.org/x/sys/cpu and logs the chosen backend with
// log/slog. That package picks one global backend in init(); this one
// detects once per Resizer and lets the caller downgrade (never upgrade)
// afterward, per spec.
package cpufeat

import (
	"log/slog"

	"golang.org/x/sys/cpu"
)

// Extensions names an instruction-set tier a convolution kernel variant can
// target. Tiers have no cross-architecture ordering; Clamp only compares a
// detected tier against a requested tier for the same running binary.
type Extensions int

const (
	// Scalar is the portable reference tier, always available.
	Scalar Extensions = iota
	SSE41
	AVX2
	NEON
	WASMSIMD128
)

// String returns the canonical name of the extension tier.
func (e Extensions) String() string {
	switch e {
	case Scalar:
		return "scalar"
	case SSE41:
		return "SSE4.1"
	case AVX2:
		return "AVX2"
	case NEON:
		return "NEON"
	case WASMSIMD128:
		return "WASM SIMD128"
	default:
		return "unknown"
	}
}

// Detect probes the running CPU and returns the highest extension tier this
// package has a kernel variant for. It never returns a tier the hardware
// doesn't actually support.
//
// x/sys/cpu exposes a feature struct per architecture family unconditionally
// (cpu.X86, cpu.ARM64, ...); on architectures other than the one actually
// running, the fields simply stay false, so no build tags are needed here.
// The one exception is WASM: x/sys/cpu has no runtime SIMD128 detection for
// that GOARCH (there is no portable feature-detection instruction in wasm),
// so WASMSIMD128 is never auto-detected — a caller targeting a browser/
// runtime known to support it must opt in explicitly via ForceUnsafe
// (Clamp never returns a tier above the detected one).
func Detect() Extensions {
	e := detectNative()
	slog.Debug("cpufeat: detected CPU extensions", "extensions", e.String())
	return e
}

func detectNative() Extensions {
	if cpu.X86.HasAVX2 {
		return AVX2
	}
	if cpu.X86.HasSSE41 {
		return SSE41
	}
	if cpu.ARM64.HasASIMD {
		return NEON
	}
	return Scalar
}

// Clamp returns the weaker of detected and requested, implementing spec.md
// §4.8's "caller may override downward, never upward" rule for the normal,
// safe entry point.
func Clamp(detected, requested Extensions) Extensions {
	if requested < detected {
		return requested
	}
	return detected
}

// ForceUnsafe returns requested verbatim regardless of what was detected.
// This is the explicit escape hatch spec.md §4.8 permits for upward
// overrides: using a tier the hardware may not support can crash the
// process (illegal instruction) or silently miscompute. Callers that reach
// for this must already know their deployment target supports it.
func ForceUnsafe(requested Extensions) Extensions {
	return requested
}
