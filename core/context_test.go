package core

import (
	"testing"

	"github.com/gogpu/forge/linear"
	"github.com/gogpu/forge/types"
)

func newTestContext() *renderContext {
	c := newRenderContext(1<<16, 1<<16, 64)
	c.transientVB = &TransientVertexBuffer{
		Buffer: NewID[vertexBufferMarker](0, 1),
		Format: types.VertexFormatCount,
		Size:   4096,
	}
	c.transientIB = &TransientIndexBuffer{
		Buffer: NewID[indexBufferMarker](0, 1),
		Size:   4096,
	}
	return c
}

func TestCommitResetsDrawState(t *testing.T) {
	c := newTestContext()
	program := NewID[programMarker](5, 1)
	vb := NewID[vertexBufferMarker](9, 1)

	c.setState(types.StateDefault)
	c.setPose(linear.Translate(linear.Vec3{X: 1}))
	c.setProgram(program)
	c.setVertexBuffer(vb, types.VertexP3, 3)
	c.commit(0)

	if c.numStates != 1 {
		t.Fatalf("numStates = %d, want 1", c.numStates)
	}

	s := &c.state
	if s.flags != types.StateNone {
		t.Errorf("flags after commit = %#x, want StateNone", uint64(s.flags))
	}
	if s.pose != linear.Identity() {
		t.Error("pose not reset to identity")
	}
	if !s.program.IsZero() || !s.vb.IsZero() || !s.ib.IsZero() {
		t.Error("handles not reset to invalid")
	}
	if s.numVertices != WholeBuffer || s.numIndices != WholeBuffer {
		t.Error("counts not reset to WholeBuffer")
	}
	if s.format != types.VertexFormatCount {
		t.Error("vertex format not reset")
	}
	for i := range s.samplers {
		if s.samplers[i].raw != 0 || s.samplers[i].flags != types.SamplerTexture {
			t.Errorf("sampler %d not reset", i)
		}
	}

	// The snapshot kept what was recorded.
	if c.states[0].program != program || c.states[0].vb != vb {
		t.Error("snapshot lost recorded state")
	}
}

func TestCommitLayerOutOfRangePanics(t *testing.T) {
	c := newTestContext()
	defer func() {
		if recover() == nil {
			t.Error("commit(8) did not panic")
		}
	}()
	c.commit(MaxLayers)
}

func TestLayerSetterOutOfRangePanics(t *testing.T) {
	c := newTestContext()
	defer func() {
		if recover() == nil {
			t.Error("setLayerView(8) did not panic")
		}
	}()
	c.setLayerView(MaxLayers, linear.Identity())
}

func TestLayerStateSurvivesCommitAndClear(t *testing.T) {
	c := newTestContext()
	view := linear.Translate(linear.Vec3{Z: -3})

	c.setLayerView(2, view)
	c.commit(0)
	c.clear()

	if c.layers[2].view != view {
		t.Error("layer view lost across commit and clear")
	}
	if !c.layers[2].touched {
		t.Error("layer not marked touched")
	}
}

func TestSortDrawsStable(t *testing.T) {
	c := newTestContext()
	program := NewID[programMarker](1, 1)
	c.setProgram(program)

	// Commit order: layer 2, layer 0, layer 2, layer 0.
	for i, layer := range []uint8{2, 0, 2, 0} {
		c.setProgram(program)
		c.setVertexBuffer(NewID[vertexBufferMarker](uint32(i), 1), types.VertexP3, 3)
		c.commit(layer)
	}

	c.sortDraws()

	// Ascending keys.
	for i := 1; i < c.numStates; i++ {
		if c.keys[i-1] > c.keys[i] {
			t.Fatalf("keys[%d] > keys[%d]", i-1, i)
		}
	}

	// Stable within equal keys: layer 0 draws keep order 1, 3;
	// layer 2 draws keep order 0, 2.
	wantVB := []uint32{1, 3, 0, 2}
	for i, want := range wantVB {
		if got := c.states[i].vb.Index(); got != want {
			t.Errorf("sorted draw %d has vb %d, want %d", i, got, want)
		}
	}
}

func TestTransientReservationOffsets(t *testing.T) {
	c := newTestContext()
	stride := uint32(types.VertexP3T2.Stride())

	if got := c.reserveTransientVertices(6, types.VertexP3T2); got != 0 {
		t.Errorf("first reservation offset = %d, want 0", got)
	}
	if got := c.reserveTransientVertices(4, types.VertexP3T2); got != 6*stride {
		t.Errorf("second reservation offset = %d, want %d", got, 6*stride)
	}

	if got := c.reserveTransientIndices(6); got != 0 {
		t.Errorf("first index reservation offset = %d, want 0", got)
	}
	if got := c.reserveTransientIndices(6); got != 6*types.IndexStride {
		t.Errorf("second index reservation offset = %d, want %d", got, 6*types.IndexStride)
	}

	// clear rewinds both rings.
	c.clear()
	if got := c.reserveTransientVertices(1, types.VertexP3T2); got != 0 {
		t.Errorf("offset after clear = %d, want 0", got)
	}
	if got := c.reserveTransientIndices(1); got != 0 {
		t.Errorf("index offset after clear = %d, want 0", got)
	}
}

func TestTransientReservationOverflowPanics(t *testing.T) {
	c := newTestContext()
	defer func() {
		if recover() == nil {
			t.Error("ring overflow did not panic")
		}
	}()
	c.reserveTransientVertices(100000, types.VertexP3N3C4T2)
}
