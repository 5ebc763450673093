package accel

import (
	"context"

	"github.com/pkg/errors"

	"github.com/openfluke/layout/array"
	"github.com/openfluke/layout/memory"
)

// ExecContext carries the execution space code is running in. A nil Cap
// behaves as the host-only capability.
type ExecContext struct {
	Ctx   context.Context
	Space memory.Space // Host or Device
	Cap   *Capability
}

// NewContext returns a host execution context. A nil c means host-only.
func NewContext(c *Capability) *ExecContext {
	if c == nil {
		c = &Capability{Policy: memory.HostOnly()}
	}
	return &ExecContext{
		Ctx:   context.Background(),
		Space: memory.Host,
		Cap:   c,
	}
}

// OnDevice returns a copy of ec executing in the accelerator context.
func (ec *ExecContext) OnDevice() (*ExecContext, error) {
	if !ec.capability().Accelerator() {
		return nil, ErrNoAccelerator
	}
	dev := *ec
	dev.Space = memory.Device
	return &dev, nil
}

func (ec *ExecContext) capability() *Capability {
	if ec.Cap == nil {
		return &Capability{Policy: memory.HostOnly()}
	}
	return ec.Cap
}

// CanAccess reports whether d's buffer is directly addressable from ec.
func (ec *ExecContext) CanAccess(d *array.Descriptor) bool {
	return ec.capability().Policy.Accessible(d.Space, ec.Space)
}

// Plan describes how to make a descriptor's bytes reachable from an
// execution context.
type Plan struct {
	Stage    bool                // a copy is required
	Kind     memory.TransferKind // direction of the copy, when staging
	Target   memory.Space        // space the data is read from afterwards
	Bytes    int64               // staging buffer size, rounded to the copy alignment
	Runs     int64               // contiguous segments to copy
	RunBytes int64               // bytes per segment
}

// Plan works out whether d must be staged before code in ec can read it,
// and how the copy decomposes into contiguous runs.
func (ec *ExecContext) Plan(d *array.Descriptor) Plan {
	p := Plan{Target: d.Space}
	p.Runs, p.RunBytes = runs(d)
	if ec.CanAccess(d) {
		return p
	}
	p.Stage = true
	p.Target = ec.Space
	p.Kind = memory.Transfer(ec.Space, d.Space)
	if d.NDim > 0 {
		p.Bytes = int64(memory.RoundUp(uint64(array.CapacityBytes(d)), ec.capability().CopyAlignment()))
	}
	return p
}

// runs squeezes d and splits it into the contiguous segments a copy loop
// would issue.
func runs(d *array.Descriptor) (int64, int64) {
	elem := int64(d.DType.NByte())
	if d.IsEmpty() {
		return 0, 0
	}
	var sq array.Descriptor
	array.SqueezeContiguousDims(d, &sq)
	if sq.NDim == 0 {
		return 1, elem
	}
	inner := sq.NDim - 1
	if sq.Strides[inner] != elem {
		return sq.NumElements(), elem
	}
	return sq.NumElements() / sq.Shape[inner], sq.Shape[inner] * elem
}

// StageToDevice uploads the host bytes backing d when ec is a device
// context that cannot read them in place. It returns a nil buffer when no
// copy is needed.
func (ec *ExecContext) StageToDevice(d *array.Descriptor, data []byte) (*Buffer, Plan, error) {
	p := ec.Plan(d)
	if !p.Stage {
		return nil, p, nil
	}
	if p.Kind != memory.HostToDevice {
		return nil, p, errors.Errorf("accel: cannot stage %s from %s context (%s)", d, ec.Space, p.Kind)
	}
	if want := array.CapacityBytes(d); int64(len(data)) < want {
		return nil, p, errors.Errorf("accel: %d bytes supplied, descriptor spans %d", len(data), want)
	}
	padded := make([]byte, p.Bytes)
	copy(padded, data)
	buf, err := Upload(padded)
	if err != nil {
		return nil, p, errors.WithMessagef(err, "accel: stage %s", d)
	}
	return buf, p, nil
}

// StageToHost reads the device buffer backing d into host memory when ec is
// a host context that cannot read it in place. It returns nil bytes when no
// copy is needed. The result is the descriptor's span rounded up to the copy
// alignment.
func (ec *ExecContext) StageToHost(d *array.Descriptor, buf *Buffer) ([]byte, Plan, error) {
	p := ec.Plan(d)
	if !p.Stage {
		return nil, p, nil
	}
	if p.Kind != memory.DeviceToHost {
		return nil, p, errors.Errorf("accel: cannot read back %s into %s context (%s)", d, ec.Space, p.Kind)
	}
	if buf == nil {
		return nil, p, errors.Errorf("accel: no device buffer for %s", d)
	}
	data, err := Download(buf, uint64(p.Bytes))
	if err != nil {
		return nil, p, errors.WithMessagef(err, "accel: read back %s", d)
	}
	return data, p, nil
}
