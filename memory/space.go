// Package memory holds the memory-space model shared by descriptors and the
// accelerator runtime: which domain a buffer lives in, whether it can be
// dereferenced from a given execution context, how transfers between spaces
// are classified, and the round-up helpers allocators size buffers with.
package memory

import (
	"strings"

	"github.com/pkg/errors"
)

// Space identifies the physical memory domain of a buffer.
type Space int

const (
	SpaceInvalid Space = iota
	Host               // ordinary system memory
	Device             // accelerator device memory
	Pinned             // page-locked host memory registered with the accelerator
	Unified            // managed memory migrated on demand
)

// ErrUnknownSpace is returned by ParseSpace.
var ErrUnknownSpace = errors.New("unknown memory space")

var spaceNames = map[Space]string{
	Host:    "host",
	Device:  "device",
	Pinned:  "pinned",
	Unified: "unified",
}

func (s Space) String() string {
	if n, ok := spaceNames[s]; ok {
		return n
	}
	return "invalid"
}

// Valid reports whether s is one of the four defined spaces.
func (s Space) Valid() bool {
	_, ok := spaceNames[s]
	return ok
}

// ParseSpace accepts the names printed by String plus a few common aliases.
func ParseSpace(name string) (Space, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "host", "system":
		return Host, nil
	case "device", "cuda", "gpu":
		return Device, nil
	case "pinned", "cuda_host":
		return Pinned, nil
	case "unified", "managed", "cuda_managed":
		return Unified, nil
	}
	return SpaceInvalid, errors.Wrapf(ErrUnknownSpace, "%q", name)
}
