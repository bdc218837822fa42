package pixel_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/naisuuuu/fir/pixel"
)

func TestPixelTypeMetadata(t *testing.T) {
	tests := []struct {
		pt       pixel.PixelType
		size     int
		channels int
		align    int
		alpha    bool
		name     string
	}{
		{pixel.TypeU8, 1, 1, 1, false, "U8"},
		{pixel.TypeU8x2, 2, 2, 1, true, "U8x2"},
		{pixel.TypeU8x3, 3, 3, 1, false, "U8x3"},
		{pixel.TypeU8x4, 4, 4, 1, true, "U8x4"},
		{pixel.TypeU16, 2, 1, 2, false, "U16"},
		{pixel.TypeU16x2, 4, 2, 2, true, "U16x2"},
		{pixel.TypeU16x3, 6, 3, 2, false, "U16x3"},
		{pixel.TypeU16x4, 8, 4, 2, true, "U16x4"},
		{pixel.TypeI32, 4, 1, 4, false, "I32"},
		{pixel.TypeF32, 4, 1, 4, false, "F32"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pt.Size(); got != tt.size {
				t.Errorf("Size() = %d, want %d", got, tt.size)
			}
			if got := tt.pt.Channels(); got != tt.channels {
				t.Errorf("Channels() = %d, want %d", got, tt.channels)
			}
			if got := tt.pt.Alignment(); got != tt.align {
				t.Errorf("Alignment() = %d, want %d", got, tt.align)
			}
			if got := tt.pt.HasAlpha(); got != tt.alpha {
				t.Errorf("HasAlpha() = %v, want %v", got, tt.alpha)
			}
			if got := tt.pt.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
		})
	}
}

func TestIsAligned(t *testing.T) {
	// U8 has no alignment requirement: any offset into any buffer qualifies.
	buf := make([]byte, 65)
	if !pixel.TypeU8.IsAligned(buf[1:]) {
		t.Error("U8 should never report misalignment")
	}
	if !pixel.TypeU8.IsAligned(nil) {
		t.Error("a nil buffer should be considered aligned")
	}
	if diff := cmp.Diff(pixel.TypeU8.Size(), 1); diff != "" {
		t.Errorf("sanity mismatch (-want +got):\n%s", diff)
	}
}
