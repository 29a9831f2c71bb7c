package types

import "testing"

func TestVertexFormatStride(t *testing.T) {
	tests := []struct {
		format VertexFormat
		stride int
	}{
		{VertexP2, 8},
		{VertexP3, 12},
		{VertexP3N3, 24},
		{VertexP3C4, 28},
		{VertexP3T2, 20},
		{VertexP3N3C4T2, 48},
		{VertexP2N3C4T2, 44},
	}
	for _, tt := range tests {
		if got := tt.format.Stride(); got != tt.stride {
			t.Errorf("%s.Stride() = %d, want %d", tt.format, got, tt.stride)
		}
	}
}

func TestVertexFormatOffsets(t *testing.T) {
	f := VertexP3N3C4T2
	if got := f.Offset(AttribPosition); got != 0 {
		t.Errorf("position offset = %d, want 0", got)
	}
	if got := f.Offset(AttribNormal); got != 12 {
		t.Errorf("normal offset = %d, want 12", got)
	}
	if got := f.Offset(AttribColor); got != 24 {
		t.Errorf("color offset = %d, want 24", got)
	}
	if got := f.Offset(AttribTexCoord0); got != 40 {
		t.Errorf("texcoord0 offset = %d, want 40", got)
	}
}

func TestVertexFormatHasAttrib(t *testing.T) {
	if !VertexP3T2.HasAttrib(AttribTexCoord0) {
		t.Error("P3T2 lacks texcoord0")
	}
	if VertexP3T2.HasAttrib(AttribNormal) {
		t.Error("P3T2 has a normal")
	}
	if !VertexP2C4.HasAttrib(AttribColor) {
		t.Error("P2C4 lacks color")
	}
}
