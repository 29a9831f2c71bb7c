package types

import "testing"

func TestUniformSizes(t *testing.T) {
	tests := []struct {
		typ  UniformType
		size uint32
	}{
		{UniformInteger1, 4},
		{UniformInteger4, 16},
		{UniformFloat1, 4},
		{UniformFloat4, 16},
		{UniformFloat3x3, 36},
		{UniformFloat4x4, 64},
	}
	for _, tt := range tests {
		if got := tt.typ.SizeBytes(); got != tt.size {
			t.Errorf("%s.SizeBytes() = %d, want %d", tt.typ, got, tt.size)
		}
	}
}

func TestStockUniformByName(t *testing.T) {
	for u := StockUniform(0); u < StockUniformCount; u++ {
		got, ok := StockUniformByName(u.Name())
		if !ok || got != u {
			t.Errorf("StockUniformByName(%q) = (%v, %t), want (%v, true)", u.Name(), got, ok, u)
		}
	}

	if _, ok := StockUniformByName("u_tint"); ok {
		t.Error("u_tint resolved as a stock uniform")
	}
}
