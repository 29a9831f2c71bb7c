package core

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gogpu/forge/linear"
	"github.com/gogpu/forge/types"
)

func newTestRenderer(t *testing.T, singleThreaded bool) (*Renderer, *traceDevice) {
	t.Helper()

	device := newTraceDevice()
	r, err := New(Config{
		Device:                    device,
		SingleThreaded:            singleThreaded,
		MaxVertexBuffers:          64,
		MaxIndexBuffers:           64,
		MaxTextures:               64,
		MaxShaders:                16,
		MaxPrograms:               16,
		MaxUniforms:               16,
		MaxRenderTargets:          8,
		MaxDraws:                  64,
		CommandBufferSize:         1 << 16,
		ConstantBufferSize:        1 << 16,
		TransientVertexBufferSize: 1 << 16,
		TransientIndexBufferSize:  1 << 16,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return r, device
}

func newTestProgram(t *testing.T, r *Renderer) ProgramID {
	t.Helper()
	vs, err := r.CreateShader(types.StageVertex, "vs")
	if err != nil {
		t.Fatalf("CreateShader: %v", err)
	}
	fs, err := r.CreateShader(types.StageFragment, "fs")
	if err != nil {
		t.Fatalf("CreateShader: %v", err)
	}
	p, err := r.CreateProgram(vs, fs)
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}
	return p
}

// S1: single triangle with default state on layer 0.
func TestSingleTriangle(t *testing.T) {
	r, device := newTestRenderer(t, true)
	r.Init()

	program := newTestProgram(t, r)
	vb, err := r.CreateVertexBuffer(Float32Bytes(0, 0, 0, 1, 0, 0, 0, 1, 0), types.VertexP3)
	if err != nil {
		t.Fatalf("CreateVertexBuffer: %v", err)
	}

	r.SetProgram(program)
	r.SetVertexBuffer(vb, types.VertexP3, 3)
	r.Commit(0)
	r.Frame()
	r.Shutdown()

	init := device.indexOf("init")
	create := device.indexOf("create_vb")
	bindProg := device.indexOf("bind_prog")
	draw := device.indexOf("draw")
	shutdown := device.indexOf("shutdown")

	if init < 0 || create < 0 || bindProg < 0 || draw < 0 || shutdown < 0 {
		t.Fatalf("missing trace entries: init=%d create=%d bind=%d draw=%d shutdown=%d",
			init, create, bindProg, draw, shutdown)
	}
	if !(init < create && create < bindProg && bindProg < draw && draw < shutdown) {
		t.Errorf("trace out of order: init=%d create=%d bind=%d draw=%d shutdown=%d",
			init, create, bindProg, draw, shutdown)
	}

	draws := device.entries("draw")
	if len(draws) != 1 {
		t.Fatalf("draw count = %d, want 1", len(draws))
	}
	if !strings.Contains(draws[0], "vc=3") || !strings.Contains(draws[0], "indexed=false") {
		t.Errorf("draw = %q, want 3 vertices non-indexed", draws[0])
	}
}

// S2: draws committed to out-of-order layers issue in layer order.
func TestLayerOrdering(t *testing.T) {
	r, device := newTestRenderer(t, true)
	r.Init()

	program := newTestProgram(t, r)
	vb1, _ := r.CreateVertexBuffer(Float32Bytes(0, 0, 0, 1, 0, 0, 0, 1, 0), types.VertexP3)
	vb2, _ := r.CreateVertexBuffer(Float32Bytes(0, 0, 0, 1, 0, 0, 0, 1, 0), types.VertexP3)

	r.SetProgram(program)
	r.SetVertexBuffer(vb1, types.VertexP3, 3)
	r.Commit(2)

	r.SetProgram(program)
	r.SetVertexBuffer(vb2, types.VertexP3, 3)
	r.Commit(0)

	r.Frame()

	binds := device.entries("bind_vb")
	if len(binds) != 2 {
		t.Fatalf("bind_vb count = %d, want 2", len(binds))
	}
	want2 := fmt.Sprintf("bind_vb %d ", vb2.Index())
	want1 := fmt.Sprintf("bind_vb %d ", vb1.Index())
	if !strings.HasPrefix(binds[0], want2) || !strings.HasPrefix(binds[1], want1) {
		t.Errorf("bind order = %v, want layer-0 draw (vb %d) first", binds, vb2.Index())
	}

	r.Shutdown()
}

// S3: transient carve-outs start at offset 0 and reset across frames.
func TestTransientCarveOut(t *testing.T) {
	r, _ := newTestRenderer(t, true)
	r.Init()

	var tvb TransientVertexBuffer
	var tib TransientIndexBuffer

	r.ReserveTransientVertexBuffer(&tvb, 6, types.VertexP3C4)
	r.ReserveTransientIndexBuffer(&tib, 6)

	stride := uint32(types.VertexP3C4.Stride())
	if tvb.StartVertex != 0 || tvb.Offset != 0 {
		t.Errorf("first tvb reservation at vertex %d offset %d, want 0", tvb.StartVertex, tvb.Offset)
	}
	if tvb.Size != 6*stride {
		t.Errorf("tvb.Size = %d, want %d", tvb.Size, 6*stride)
	}
	if tib.StartIndex != 0 || tib.Size != 6*types.IndexStride {
		t.Errorf("tib = start %d size %d", tib.StartIndex, tib.Size)
	}

	// A second reservation this frame is placed behind the first.
	var tvb2 TransientVertexBuffer
	r.ReserveTransientVertexBuffer(&tvb2, 2, types.VertexP3C4)
	if tvb2.Offset != 6*stride {
		t.Errorf("second reservation offset = %d, want %d", tvb2.Offset, 6*stride)
	}

	r.Frame()

	// Next frame starts from 0 again.
	r.ReserveTransientVertexBuffer(&tvb, 1, types.VertexP3C4)
	if tvb.Offset != 0 {
		t.Errorf("offset after frame = %d, want 0", tvb.Offset)
	}

	r.Shutdown()
}

// S4: a uniform write reaches the backend exactly once, bytes intact.
func TestUniformRoundTrip(t *testing.T) {
	r, device := newTestRenderer(t, true)
	r.Init()

	u, err := r.CreateUniform("u_tint", types.UniformFloat4, 1)
	if err != nil {
		t.Fatalf("CreateUniform: %v", err)
	}

	tint := Float32Bytes(0.1, 0.2, 0.3, 1)
	r.SetUniform(u, types.UniformFloat4, tint, 1)
	r.Frame()

	writes := device.writes()
	if len(writes) != 1 {
		t.Fatalf("uniform writes = %d, want 1", len(writes))
	}
	if writes[0].idx != u.Index() {
		t.Errorf("write idx = %d, want %d", writes[0].idx, u.Index())
	}
	if !bytes.Equal(writes[0].data, tint) {
		t.Errorf("write data = %v, want %v", writes[0].data, tint)
	}

	// Replay happens once per frame: an empty frame adds nothing.
	r.Frame()
	if got := len(device.writes()); got != 1 {
		t.Errorf("uniform writes after empty frame = %d, want 1", got)
	}

	r.Shutdown()
}

// S5: stock uniform names are rejected.
func TestStockUniformNameCollision(t *testing.T) {
	r, _ := newTestRenderer(t, true)
	r.Init()

	_, err := r.CreateUniform("u_model_view_projection", types.UniformFloat4x4, 1)
	if !errors.Is(err, ErrStockUniformName) {
		t.Errorf("err = %v, want ErrStockUniformName", err)
	}

	r.Shutdown()
}

// S6: using a destroyed handle is fatal.
func TestDestroyThenUsePanics(t *testing.T) {
	r, _ := newTestRenderer(t, true)
	r.Init()
	defer r.Shutdown()

	vb, _ := r.CreateVertexBuffer(Float32Bytes(0, 0, 0), types.VertexP3)
	r.DestroyVertexBuffer(vb)

	defer func() {
		if recover() == nil {
			t.Error("SetVertexBuffer of destroyed handle did not panic")
		}
	}()
	r.SetVertexBuffer(vb, types.VertexP3, 3)
}

// P5: a touched layer's setup precedes its draws.
func TestLayerSetupPrecedesDraws(t *testing.T) {
	r, device := newTestRenderer(t, true)
	r.Init()

	program := newTestProgram(t, r)
	vb, _ := r.CreateVertexBuffer(Float32Bytes(0, 0, 0, 1, 0, 0, 0, 1, 0), types.VertexP3)

	r.SetLayerClear(3, types.ClearColor|types.ClearDepth, linear.Black, 1)
	r.SetLayerViewport(3, 0, 0, 640, 480)

	r.SetProgram(program)
	r.SetVertexBuffer(vb, types.VertexP3, 3)
	r.Commit(3)
	r.Frame()

	setup := device.indexOf("set_layer")
	draw := device.indexOf("draw")
	if setup < 0 || draw < 0 || setup > draw {
		t.Errorf("layer setup at %d, draw at %d; want setup first", setup, draw)
	}

	r.Shutdown()
}

// P9: submissions after Frame returns do not affect the rendered frame.
func TestFrameIsolation(t *testing.T) {
	r, device := newTestRenderer(t, true)
	r.Init()

	u, _ := r.CreateUniform("u_a", types.UniformFloat1, 1)
	r.SetUniform(u, types.UniformFloat1, Float32Bytes(1), 1)
	r.Frame()

	before := len(device.writes())

	// Recorded after the boundary; must only show up next frame.
	r.SetUniform(u, types.UniformFloat1, Float32Bytes(2), 1)
	if got := len(device.writes()); got != before {
		t.Errorf("uniform write leaked into rendered frame: %d -> %d", before, got)
	}

	r.Frame()
	if got := len(device.writes()); got != before+1 {
		t.Errorf("writes after second frame = %d, want %d", got, before+1)
	}

	r.Shutdown()
}

// The threaded frame protocol produces the same trace shape as the
// single-threaded fallback.
func TestThreadedFrameProtocol(t *testing.T) {
	r, device := newTestRenderer(t, false)
	r.Init()

	program := newTestProgram(t, r)
	vb, _ := r.CreateVertexBuffer(Float32Bytes(0, 0, 0, 1, 0, 0, 0, 1, 0), types.VertexP3)

	for frame := 0; frame < 3; frame++ {
		r.SetProgram(program)
		r.SetVertexBuffer(vb, types.VertexP3, 3)
		r.Commit(0)
		r.Frame()
	}

	r.Shutdown()

	if got := len(device.entries("draw")); got != 3 {
		t.Errorf("draw count = %d, want 3", got)
	}
	if device.indexOf("shutdown") < 0 {
		t.Error("shutdown never reached the backend")
	}
	last := device.entries("")
	if !strings.HasPrefix(last[len(last)-1], "shutdown") {
		t.Errorf("last trace entry = %q, want shutdown", last[len(last)-1])
	}
}

// Pool exhaustion is an error, not a panic.
func TestCreateExhaustion(t *testing.T) {
	r, _ := newTestRenderer(t, true)
	r.Init()
	defer r.Shutdown()

	var err error
	for i := 0; i < 100; i++ {
		_, err = r.CreateTexture(1, 1, types.PixelR8G8B8A8, []byte{0, 0, 0, 0})
		if err != nil {
			break
		}
	}
	if !errors.Is(err, ErrPoolExhausted) {
		t.Errorf("err = %v, want ErrPoolExhausted after exhausting the pool", err)
	}
}
