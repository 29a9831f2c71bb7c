package hal_test

import (
	"errors"
	"testing"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/hal/noop"
	"github.com/gogpu/forge/types"
)

func TestNewResolvesRegisteredBackend(t *testing.T) {
	device, err := hal.New(types.BackendNoop)
	if err != nil {
		t.Fatalf("New(BackendNoop) failed: %v", err)
	}
	if device.Variant() != types.BackendNoop {
		t.Errorf("Variant = %v, want Noop", device.Variant())
	}
	if _, ok := device.(*noop.Device); !ok {
		t.Errorf("device is %T, want *noop.Device", device)
	}
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := hal.New(types.BackendVariant(250))
	if !errors.Is(err, hal.ErrBackendNotFound) {
		t.Errorf("err = %v, want ErrBackendNotFound", err)
	}
}

func TestAvailableIncludesNoop(t *testing.T) {
	for _, v := range hal.Available() {
		if v == types.BackendNoop {
			return
		}
	}
	t.Error("Available() does not list the noop backend")
}
