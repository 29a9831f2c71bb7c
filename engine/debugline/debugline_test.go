package debugline

import (
	"testing"

	"github.com/gogpu/forge/core"
	"github.com/gogpu/forge/hal/noop"
	"github.com/gogpu/forge/linear"
	"github.com/gogpu/forge/types"
)

type recorder struct {
	*noop.Device
	draws int
}

func (r *recorder) Draw(firstVertex, vertexCount, firstIndex, indexCount uint32, indexed bool) {
	r.draws++
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

func TestDrawerAccumulatesSegments(t *testing.T) {
	d := New()
	d.Add(linear.Vec3{}, linear.Vec3{X: 1}, linear.White)
	d.AddAxes(linear.Vec3{}, 1)

	if d.Count() != 4 {
		t.Errorf("Count = %d, want 4", d.Count())
	}
	if len(d.verts) != 4*2*floatsPerVertex {
		t.Errorf("verts len = %d, want %d", len(d.verts), 4*2*floatsPerVertex)
	}
}

func TestSubmitDrawsOnceAndResets(t *testing.T) {
	r, device := newRenderer(t)
	defer r.Shutdown()

	vs, _ := r.CreateShader(types.StageVertex, "vs")
	fs, _ := r.CreateShader(types.StageFragment, "fs")
	program, _ := r.CreateProgram(vs, fs)

	d := New()
	d.Add(linear.Vec3{}, linear.Vec3{X: 1}, linear.White)
	d.Submit(r, 0, program)
	r.Frame()

	if device.draws != 1 {
		t.Errorf("draws = %d, want 1", device.draws)
	}
	if d.Count() != 0 {
		t.Errorf("Count after submit = %d, want 0", d.Count())
	}

	// Empty drawer submits nothing.
	d.Submit(r, 0, program)
	r.Frame()
	if device.draws != 1 {
		t.Errorf("draws after empty submit = %d, want 1", device.draws)
	}
}
