//go:build !gpu

package accel

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/openfluke/layout/array"
	"github.com/openfluke/layout/dtype"
	"github.com/openfluke/layout/memory"
)

func TestStageToHostWithoutRuntime(t *testing.T) {
	restoreDefault(t)
	c, _ := configure(fakeReport)
	hostCtx := NewContext(c)

	onDevice, _ := array.Contiguous(dtype.F32, memory.Device, 2, 3)
	data, p, err := hostCtx.StageToHost(onDevice, &Buffer{})
	if !errors.Is(err, ErrNoAccelerator) {
		t.Fatalf("expected ErrNoAccelerator from the stub runtime, got %v", err)
	}
	if data != nil || !p.Stage || p.Kind != memory.DeviceToHost || p.Bytes != 256 {
		t.Errorf("unexpected read-back plan %+v", p)
	}

	if _, err := Upload(make([]byte, 4)); !errors.Is(err, ErrNoAccelerator) {
		t.Errorf("Upload should fail without a runtime, got %v", err)
	}
	if _, err := Download(&Buffer{}, 4); !errors.Is(err, ErrNoAccelerator) {
		t.Errorf("Download should fail without a runtime, got %v", err)
	}
}
