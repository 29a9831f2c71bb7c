package core

import (
	"errors"
	"testing"
)

func TestTableCreateHasDestroy(t *testing.T) {
	tab := newTable[vertexBufferMarker](8)

	id, err := tab.create()
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if id.IsZero() {
		t.Fatal("create returned zero handle")
	}
	if !tab.has(id) {
		t.Error("has = false for live handle")
	}

	tab.destroy(id)
	if tab.has(id) {
		t.Error("has = true after destroy")
	}
}

func TestTableEpochAdvancesOnReuse(t *testing.T) {
	tab := newTable[textureMarker](4)

	a, _ := tab.create()
	tab.destroy(a)

	b, _ := tab.create()
	if a.Index() != b.Index() {
		t.Fatalf("index not reused: %v then %v", a, b)
	}
	if a == b {
		t.Error("stale handle compares equal to reused handle")
	}
	if tab.has(a) {
		t.Error("stale handle is live after slot reuse")
	}
	if !tab.has(b) {
		t.Error("reused handle is not live")
	}
}

func TestTableExhaustion(t *testing.T) {
	tab := newTable[shaderMarker](2)

	if _, err := tab.create(); err != nil {
		t.Fatalf("create 1 failed: %v", err)
	}
	id, err := tab.create()
	if err != nil {
		t.Fatalf("create 2 failed: %v", err)
	}

	if _, err := tab.create(); !errors.Is(err, ErrPoolExhausted) {
		t.Errorf("create over capacity: err = %v, want ErrPoolExhausted", err)
	}

	// Destroying frees a slot for a new create.
	tab.destroy(id)
	if _, err := tab.create(); err != nil {
		t.Errorf("create after destroy failed: %v", err)
	}
}

func TestTableDestroyInvalidPanics(t *testing.T) {
	tab := newTable[programMarker](4)
	id, _ := tab.create()
	tab.destroy(id)

	defer func() {
		if recover() == nil {
			t.Error("double destroy did not panic")
		}
	}()
	tab.destroy(id)
}

func TestTableZeroHandleNeverLive(t *testing.T) {
	tab := newTable[uniformMarker](4)
	if tab.has(UniformID{}) {
		t.Error("zero handle reported live")
	}
}
