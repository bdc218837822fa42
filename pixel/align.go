package pixel

import "unsafe"

// uintptrAlign returns the address of buf's backing array as a uintptr, for
// alignment checks only. It never dereferences the address, but it indexes
// buf[0] and so panics on a zero-length slice; IsAligned handles the empty
// case before calling it.
func uintptrAlign(buf []byte) uintptr {
	return uintptr(unsafe.Pointer(&buf[0]))
}
