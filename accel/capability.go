// Package accel integrates the layout model with the accelerator runtime.
//
// Init detects the accelerator once per process and installs the matching
// memory.Policy as the process-wide default, so accessibility answers reflect
// whether accelerator support is actually present. ExecContext then plans
// the staging copies a descriptor needs before it can be touched from the
// current execution context.
package accel

import (
	"os"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/openfluke/layout/detector"
	"github.com/openfluke/layout/memory"
)

// DisableEnv forces the host-only policy when set to a true value.
const DisableEnv = "LAYOUT_DISABLE_ACCELERATOR"

// ErrNoAccelerator is the canonical error across CPU and GPU builds.
var ErrNoAccelerator = detector.ErrNoAccelerator

// Capability is the accelerator configuration chosen at startup.
type Capability struct {
	Report *detector.Report // nil without an accelerator
	Policy memory.Policy
}

// Accelerator reports whether accelerator memory spaces are usable.
func (c *Capability) Accelerator() bool { return c.Policy.Accelerator() }

// CopyAlignment is the granularity staging copies are rounded up to.
func (c *Capability) CopyAlignment() uint64 {
	if c.Report != nil && c.Report.Recommended.CopyAlignment > 0 {
		return c.Report.Recommended.CopyAlignment
	}
	return 4
}

var (
	once    sync.Once
	current *Capability
	initErr error
)

// Init detects the accelerator on first use and returns the cached result
// afterwards. A missing accelerator is not an error: the host-only policy is
// installed instead.
func Init() (*Capability, error) {
	once.Do(func() {
		current, initErr = configure(detector.Detect)
	})
	return current, initErr
}

func disabled() bool {
	v, err := strconv.ParseBool(os.Getenv(DisableEnv))
	return err == nil && v
}

func configure(detect func() (*detector.Report, error)) (*Capability, error) {
	hostOnly := &Capability{Policy: memory.HostOnly()}

	if disabled() {
		klog.Infof("accel: %s set, using host-only memory policy", DisableEnv)
		memory.SetDefault(hostOnly.Policy)
		return hostOnly, nil
	}

	rep, err := detect()
	switch {
	case errors.Is(err, detector.ErrNoAccelerator):
		klog.V(1).Infof("accel: %v", err)
		memory.SetDefault(hostOnly.Policy)
		return hostOnly, nil
	case err != nil:
		return nil, errors.Wrap(err, "accel: detect accelerator")
	case rep == nil || !rep.Accelerator:
		klog.V(1).Infof("accel: no accelerator found")
		memory.SetDefault(hostOnly.Policy)
		return hostOnly, nil
	}

	klog.Infof("accel: using %s adapter %q (%s)", rep.AdapterType, rep.Name, rep.Backend)
	c := &Capability{Report: rep, Policy: memory.WithAccelerator()}
	memory.SetDefault(c.Policy)
	return c, nil
}
