package core

import "testing"

func TestSortKeyLayerInTopByte(t *testing.T) {
	program := NewID[programMarker](0x42, 1)

	for layer := uint8(0); layer < MaxLayers; layer++ {
		k := encodeKey(layer, program)
		if k.Layer() != layer {
			t.Errorf("Layer() = %d, want %d", k.Layer(), layer)
		}
		if uint8(k>>keyLayerShift) != layer {
			t.Errorf("top byte = %d, want %d", uint8(k>>keyLayerShift), layer)
		}
	}
}

func TestSortKeyOrdersByLayerFirst(t *testing.T) {
	pLow := NewID[programMarker](1, 1)
	pHigh := NewID[programMarker](200, 1)

	if encodeKey(1, pHigh) >= encodeKey(2, pLow) {
		t.Error("higher layer does not dominate program sub-key")
	}
	if encodeKey(3, pLow) >= encodeKey(3, pHigh) {
		t.Error("program sub-key not ordered within a layer")
	}
}
