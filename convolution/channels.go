package convolution

import "github.com/naisuuuu/fir/pixel"

// loadChannels unpacks p's components into dst[:n], widened to int64 so the
// fixed-point accumulator (spec.md §4.4) has room regardless of the pixel's
// native width. n is the pixel type's channel count, at most 4.
func loadChannels[P pixel.Pixel](p P, dst *[4]int64) int {
	switch v := any(p).(type) {
	case pixel.U8:
		dst[0] = int64(v.L)
		return 1
	case pixel.U8x2:
		dst[0], dst[1] = int64(v.L), int64(v.A)
		return 2
	case pixel.U8x3:
		dst[0], dst[1], dst[2] = int64(v.R), int64(v.G), int64(v.B)
		return 3
	case pixel.U8x4:
		dst[0], dst[1], dst[2], dst[3] = int64(v.R), int64(v.G), int64(v.B), int64(v.A)
		return 4
	case pixel.U16:
		dst[0] = int64(v.L)
		return 1
	case pixel.U16x2:
		dst[0], dst[1] = int64(v.L), int64(v.A)
		return 2
	case pixel.U16x3:
		dst[0], dst[1], dst[2] = int64(v.R), int64(v.G), int64(v.B)
		return 3
	case pixel.U16x4:
		dst[0], dst[1], dst[2], dst[3] = int64(v.R), int64(v.G), int64(v.B), int64(v.A)
		return 4
	case pixel.I32:
		dst[0] = int64(v.V)
		return 1
	default:
		panic("convolution: pixel type has no fixed-point channel representation")
	}
}

// storeChannels packs src[:n], already saturated to P's channel range, back
// into a pixel value of type P.
func storeChannels[P pixel.Pixel](src *[4]int64, n int) P {
	var z P
	switch any(z).(type) {
	case pixel.U8:
		return any(pixel.U8{L: uint8(src[0])}).(P)
	case pixel.U8x2:
		return any(pixel.U8x2{L: uint8(src[0]), A: uint8(src[1])}).(P)
	case pixel.U8x3:
		return any(pixel.U8x3{R: uint8(src[0]), G: uint8(src[1]), B: uint8(src[2])}).(P)
	case pixel.U8x4:
		return any(pixel.U8x4{R: uint8(src[0]), G: uint8(src[1]), B: uint8(src[2]), A: uint8(src[3])}).(P)
	case pixel.U16:
		return any(pixel.U16{L: uint16(src[0])}).(P)
	case pixel.U16x2:
		return any(pixel.U16x2{L: uint16(src[0]), A: uint16(src[1])}).(P)
	case pixel.U16x3:
		return any(pixel.U16x3{R: uint16(src[0]), G: uint16(src[1]), B: uint16(src[2])}).(P)
	case pixel.U16x4:
		return any(pixel.U16x4{R: uint16(src[0]), G: uint16(src[1]), B: uint16(src[2]), A: uint16(src[3])}).(P)
	case pixel.I32:
		return any(pixel.I32{V: int32(src[0])}).(P)
	default:
		panic("convolution: pixel type has no fixed-point channel representation")
	}
}

func saturate(v, min, max int64) int64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
