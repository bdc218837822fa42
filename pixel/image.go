package pixel

import "errors"

// Errors returned by Image constructors. The resizer façade in package fir
// re-exports these under spec.md's error taxonomy names.
var (
	// ErrInvalidBufferSize is returned when a buffer is too small for the
	// declared width, height and pixel type.
	ErrInvalidBufferSize = errors.New("pixel: invalid buffer size")
	// ErrInvalidBufferAlignment is returned when a buffer's start address
	// violates the pixel type's component alignment.
	ErrInvalidBufferAlignment = errors.New("pixel: invalid buffer alignment")
	// ErrZeroDimension is returned when width or height is zero.
	ErrZeroDimension = errors.New("pixel: width and height must be >= 1")
)

// Image is a contiguous, row-major pixel buffer of known width, height,
// pixel type and row stride. It either owns its buffer (NewImage) or
// borrows a caller-provided slice for the image's lifetime (FromBytes).
// The view layer (View/ViewMut) does not care which.
type Image struct {
	width, height int
	stride        int
	pixelType     PixelType
	buf           []byte
}

// NewImage allocates a zeroed image of the given width, height and pixel
// type, tightly packed (stride == width*pixelType.Size()).
func NewImage(width, height int, pt PixelType) (*Image, error) {
	if width < 1 || height < 1 {
		return nil, ErrZeroDimension
	}
	stride := width * pt.Size()
	buf := make([]byte, stride*height)
	return &Image{width: width, height: height, stride: stride, pixelType: pt, buf: buf}, nil
}

// FromBytes wraps buf as an image of the given width, height and pixel
// type without copying it, using a tightly packed stride. buf must outlive
// the returned Image.
func FromBytes(width, height int, pt PixelType, buf []byte) (*Image, error) {
	return FromBytesStrided(width, height, pt, width*pt.Size(), buf)
}

// FromBytesStrided is like FromBytes but accepts an explicit row stride in
// bytes, for buffers with row padding. stride must be >= width*pt.Size().
func FromBytesStrided(width, height int, pt PixelType, stride int, buf []byte) (*Image, error) {
	if width < 1 || height < 1 {
		return nil, ErrZeroDimension
	}
	minStride := width * pt.Size()
	if stride < minStride {
		return nil, ErrInvalidBufferSize
	}
	if len(buf) < stride*height {
		return nil, ErrInvalidBufferSize
	}
	if !pt.IsAligned(buf) {
		return nil, ErrInvalidBufferAlignment
	}
	return &Image{width: width, height: height, stride: stride, pixelType: pt, buf: buf}, nil
}

// Width returns the image width in pixels.
func (im *Image) Width() int { return im.width }

// Height returns the image height in pixels.
func (im *Image) Height() int { return im.height }

// Stride returns the row stride in bytes.
func (im *Image) Stride() int { return im.stride }

// PixelType returns the image's pixel layout.
func (im *Image) PixelType() PixelType { return im.pixelType }

// Buffer returns the image's backing bytes, row-major with Stride() bytes
// per row.
func (im *Image) Buffer() []byte { return im.buf }

// BufferMut returns a mutable view of the image's backing bytes.
func (im *Image) BufferMut() []byte { return im.buf }

// Copy returns a deep copy of the image with its own freshly allocated
// buffer, so the result outlives any borrow the source held.
func (im *Image) Copy() *Image {
	buf := make([]byte, len(im.buf))
	copy(buf, im.buf)
	return &Image{width: im.width, height: im.height, stride: im.stride, pixelType: im.pixelType, buf: buf}
}

// row returns the byte slice of row y.
func (im *Image) row(y int) []byte {
	off := y * im.stride
	return im.buf[off : off+im.width*im.pixelType.Size()]
}
