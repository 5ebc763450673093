package memory

import (
	"sync/atomic"

	"github.com/gomlx/exceptions"
)

// Policy answers accessibility questions for one accelerator configuration.
// The zero value is the host-only policy.
type Policy struct {
	accelerator bool
}

// HostOnly is the policy for processes without accelerator support.
func HostOnly() Policy { return Policy{} }

// WithAccelerator is the policy once an accelerator runtime is available.
func WithAccelerator() Policy { return Policy{accelerator: true} }

// Accelerator reports whether the policy includes accelerator spaces.
func (p Policy) Accelerator() bool { return p.accelerator }

// Accessible reports whether code executing in the from context can
// dereference a pointer tagged space without an explicit copy.
//
//	from \ space | host | device | pinned | unified
//	host         | yes  | no     | yes    | yes
//	device       | no   | yes    | no     | yes
//
// With accelerator support any other from context panics: it means the
// runtime handed us a context it never defines, not a data error. Without
// accelerator support only host-from-host is accessible.
func (p Policy) Accessible(space, from Space) bool {
	if !p.accelerator {
		return space == Host && from == Host
	}
	switch from {
	case Host:
		return space == Host || space == Pinned || space == Unified
	case Device:
		return space == Device || space == Unified
	default:
		exceptions.Panicf("memory: internal error: unrecognized execution context %s (%d)", from, int(from))
	}
	return false
}

// NeedsStaging is the negation of Accessible, phrased for copy planners.
func (p Policy) NeedsStaging(space, from Space) bool {
	return !p.Accessible(space, from)
}

var std atomic.Pointer[Policy]

func init() {
	p := HostOnly()
	std.Store(&p)
}

// Default returns the process-wide policy.
func Default() Policy { return *std.Load() }

// SetDefault replaces the process-wide policy. It is meant to be called once,
// by the accelerator runtime at startup.
func SetDefault(p Policy) { std.Store(&p) }

// Accessible consults the process-wide policy.
func Accessible(space, from Space) bool { return Default().Accessible(space, from) }
