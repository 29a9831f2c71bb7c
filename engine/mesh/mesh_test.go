package mesh

import (
	"testing"

	"github.com/gogpu/forge/core"
	"github.com/gogpu/forge/hal/noop"
	"github.com/gogpu/forge/linear"
	"github.com/gogpu/forge/types"
)

type recorder struct {
	*noop.Device
	draws        int
	lastIndexed  bool
	lastIndexCnt uint32
}

func (r *recorder) Draw(firstVertex, vertexCount, firstIndex, indexCount uint32, indexed bool) {
	r.draws++
	r.lastIndexed = indexed
	r.lastIndexCnt = indexCount
}

func newRenderer(t *testing.T) (*core.Renderer, *recorder) {
	t.Helper()
	device := &recorder{Device: noop.New()}
	r, err := core.New(core.Config{Device: device, SingleThreaded: true})
	if err != nil {
		t.Fatalf("core.New: %v", err)
	}
	r.Init()
	return r, device
}

var quadVerts = []float32{
	-1, -1, 0,
	1, -1, 0,
	1, 1, 0,
	-1, 1, 0,
}

var quadIndices = []uint16{0, 1, 2, 0, 2, 3}

func TestNewRejectsPartialVertices(t *testing.T) {
	r, _ := newRenderer(t)
	defer r.Shutdown()

	if _, err := New(r, types.VertexP3, []float32{1, 2}, quadIndices); err == nil {
		t.Error("partial vertex accepted")
	}
}

func TestSubmitIssuesIndexedDraw(t *testing.T) {
	r, device := newRenderer(t)
	defer r.Shutdown()

	m, err := New(r, types.VertexP3, quadVerts, quadIndices)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	vs, _ := r.CreateShader(types.StageVertex, "vs")
	fs, _ := r.CreateShader(types.StageFragment, "fs")
	program, _ := r.CreateProgram(vs, fs)

	m.Submit(r, 0, program, linear.Identity(), types.StateDefault)
	r.Frame()

	if device.draws != 1 {
		t.Fatalf("draws = %d, want 1", device.draws)
	}
	if !device.lastIndexed {
		t.Error("draw was not indexed")
	}
	if device.lastIndexCnt != uint32(len(quadIndices)) {
		t.Errorf("index count = %d, want %d", device.lastIndexCnt, len(quadIndices))
	}

	m.Destroy(r)
	r.Frame()
}
