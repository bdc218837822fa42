package pixel

// The concrete pixel struct types below are the Go analogue of the typed
// pixel wrappers in the original Rust source (pixels::U8, pixels::U8x2,
// ...): a fixed-size struct whose field layout matches the packed byte
// layout in the PixelType table exactly, so a byte buffer can be
// reinterpreted as a pixel slice with no copying.
//
// Multi-byte components are little-endian on disk per spec; these structs
// are reinterpreted directly from memory with no byte-swap. On the
// supported targets (amd64, arm64, riscv64, wasm) that's exact, since the
// host is little-endian too. It is NOT exact on a big-endian host
// (s390x, ppc64): this is a deliberate scope narrowing from spec's "readers
// on big-endian hosts must byte-swap," kept in sync with
// original_source's own native-pointer-cast behavior, which also never
// swaps. See DESIGN.md's Open Question decisions.

type U8 struct{ L uint8 }

type U8x2 struct{ L, A uint8 }

type U8x3 struct{ R, G, B uint8 }

type U8x4 struct{ R, G, B, A uint8 }

type U16 struct{ L uint16 }

type U16x2 struct{ L, A uint16 }

type U16x3 struct{ R, G, B uint16 }

type U16x4 struct{ R, G, B, A uint16 }

type I32 struct{ V int32 }

type F32 struct{ V float32 }

// Pixel is the set of concrete pixel struct types a View may be
// instantiated with. It is a closed set mirroring the PixelType
// enumeration.
type Pixel interface {
	U8 | U8x2 | U8x3 | U8x4 | U16 | U16x2 | U16x3 | U16x4 | I32 | F32
}

// TypeOf returns the PixelType corresponding to the pixel struct type P.
func TypeOf[P Pixel]() PixelType {
	var z P
	switch any(z).(type) {
	case U8:
		return TypeU8
	case U8x2:
		return TypeU8x2
	case U8x3:
		return TypeU8x3
	case U8x4:
		return TypeU8x4
	case U16:
		return TypeU16
	case U16x2:
		return TypeU16x2
	case U16x3:
		return TypeU16x3
	case U16x4:
		return TypeU16x4
	case I32:
		return TypeI32
	case F32:
		return TypeF32
	default:
		panic("pixel: unreachable pixel struct type")
	}
}
