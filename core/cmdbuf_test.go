package core

import (
	"bytes"
	"testing"
)

func TestCommandBufferRoundTrip(t *testing.T) {
	b := newCommandBuffer(1024)

	b.writeTag(cmdCreateTexture)
	b.writeUint8(7)
	b.writeUint16(512)
	b.writeUint32(0xDEADBEEF)
	b.writeUint64(uint64(Zip(3, 9)))
	b.writeBytes([]byte{1, 2, 3, 4, 5})
	b.writeString("u_tint")
	b.commit()

	if got := b.readTag(); got != cmdCreateTexture {
		t.Errorf("readTag = %v, want CreateTexture", got)
	}
	if got := b.readUint8(); got != 7 {
		t.Errorf("readUint8 = %d, want 7", got)
	}
	if got := b.readUint16(); got != 512 {
		t.Errorf("readUint16 = %d, want 512", got)
	}
	if got := b.readUint32(); got != 0xDEADBEEF {
		t.Errorf("readUint32 = %#x, want 0xDEADBEEF", got)
	}
	if got := RawID(b.readUint64()); got != Zip(3, 9) {
		t.Errorf("readUint64 = %v, want Zip(3,9)", got)
	}
	if got := b.readBytes(); !bytes.Equal(got, []byte{1, 2, 3, 4, 5}) {
		t.Errorf("readBytes = %v", got)
	}
	if got := b.readString(); got != "u_tint" {
		t.Errorf("readString = %q, want u_tint", got)
	}
	if got := b.readTag(); got != cmdEnd {
		t.Errorf("stream not terminated: readTag = %v, want End", got)
	}
}

func TestCommandBufferFreshStreamIsTerminated(t *testing.T) {
	b := newCommandBuffer(64)
	if got := b.readTag(); got != cmdEnd {
		t.Errorf("fresh buffer readTag = %v, want End", got)
	}
}

func TestCommandBufferCommitRewinds(t *testing.T) {
	b := newCommandBuffer(64)
	b.writeTag(cmdInit)
	b.commit()
	if b.pos != 0 {
		t.Errorf("pos after commit = %d, want 0", b.pos)
	}
}

func TestCommandBufferOverflowPanics(t *testing.T) {
	b := newCommandBuffer(8)
	defer func() {
		if recover() == nil {
			t.Error("overflow did not panic")
		}
	}()
	b.writeBytes(make([]byte, 16))
}
