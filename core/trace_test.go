package core

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/hal/noop"
	"github.com/gogpu/forge/types"
)

// traceDevice records the backend calls a frame produces. Everything it
// does not care about falls through to the noop device.
type traceDevice struct {
	*noop.Device

	mu    sync.Mutex
	trace []string

	uniformWrites []uniformWrite
}

type uniformWrite struct {
	idx  uint32
	data []byte
}

func newTraceDevice() *traceDevice {
	return &traceDevice{Device: noop.New()}
}

func (d *traceDevice) add(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.trace = append(d.trace, fmt.Sprintf(format, args...))
}

// indexOf returns the position of the first trace entry starting with
// prefix, or -1.
func (d *traceDevice) indexOf(prefix string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, s := range d.trace {
		if strings.HasPrefix(s, prefix) {
			return i
		}
	}
	return -1
}

// entries returns all trace entries starting with prefix, in order.
func (d *traceDevice) entries(prefix string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []string
	for _, s := range d.trace {
		if strings.HasPrefix(s, prefix) {
			out = append(out, s)
		}
	}
	return out
}

func (d *traceDevice) writes() []uniformWrite {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]uniformWrite(nil), d.uniformWrites...)
}

func (d *traceDevice) Init() error {
	d.add("init")
	return nil
}

func (d *traceDevice) Shutdown() {
	d.add("shutdown")
}

func (d *traceDevice) CreateVertexBuffer(idx uint32, data []byte, format types.VertexFormat) error {
	d.add("create_vb %d %dB %s", idx, len(data), format)
	return nil
}

func (d *traceDevice) CreateDynamicVertexBuffer(idx uint32, size uint32) error {
	d.add("create_dvb %d %d", idx, size)
	return nil
}

func (d *traceDevice) UpdateVertexBuffer(idx uint32, offset uint32, data []byte) {
	d.add("update_vb %d @%d %dB", idx, offset, len(data))
}

func (d *traceDevice) DestroyVertexBuffer(idx uint32) {
	d.add("destroy_vb %d", idx)
}

func (d *traceDevice) CreateIndexBuffer(idx uint32, data []byte) error {
	d.add("create_ib %d %dB", idx, len(data))
	return nil
}

func (d *traceDevice) UpdateIndexBuffer(idx uint32, offset uint32, data []byte) {
	d.add("update_ib %d @%d %dB", idx, offset, len(data))
}

func (d *traceDevice) CreateProgram(idx uint32, vertex, fragment uint32) error {
	d.add("create_prog %d", idx)
	return nil
}

func (d *traceDevice) CreateUniform(idx uint32, name string, typ types.UniformType, count uint8) {
	d.add("create_uniform %d %s", idx, name)
}

func (d *traceDevice) UpdateUniform(idx uint32, data []byte) {
	d.mu.Lock()
	d.uniformWrites = append(d.uniformWrites, uniformWrite{
		idx:  idx,
		data: append([]byte(nil), data...),
	})
	d.mu.Unlock()
	d.add("update_uniform %d %dB", idx, len(data))
}

func (d *traceDevice) SetLayer(target uint32, clear hal.Clear, viewport, scissor hal.Rect) {
	d.add("set_layer target=%d clear=%d", target, clear.Flags)
}

func (d *traceDevice) SetProgram(idx uint32) {
	d.add("bind_prog %d", idx)
}

func (d *traceDevice) SetVertexBuffer(idx uint32, format types.VertexFormat) {
	d.add("bind_vb %d %s", idx, format)
}

func (d *traceDevice) SetIndexBuffer(idx uint32) {
	d.add("bind_ib %d", idx)
}

func (d *traceDevice) SetTexture(unit int, idx uint32, flags types.SamplerFlags, isRenderTarget bool) {
	d.add("bind_tex unit=%d %d rt=%t", unit, idx, isRenderTarget)
}

func (d *traceDevice) ApplyState(flags types.StateFlags) {
	d.add("state %#x", uint64(flags))
}

func (d *traceDevice) Draw(firstVertex, vertexCount, firstIndex, indexCount uint32, indexed bool) {
	d.add("draw fv=%d vc=%d fi=%d ic=%d indexed=%t",
		firstVertex, vertexCount, firstIndex, indexCount, indexed)
}
