package memory

// TransferKind classifies a copy between two spaces the way accelerator
// copy APIs expect it.
type TransferKind int

const (
	HostToHost TransferKind = iota
	HostToDevice
	DeviceToHost
	DeviceToDevice
	// TransferDefault lets the runtime infer direction from the pointers,
	// which is what unified memory needs.
	TransferDefault
)

func (k TransferKind) String() string {
	switch k {
	case HostToHost:
		return "host-to-host"
	case HostToDevice:
		return "host-to-device"
	case DeviceToHost:
		return "device-to-host"
	case DeviceToDevice:
		return "device-to-device"
	default:
		return "default"
	}
}

// hostSide reports whether a copy engine treats s as host memory.
func hostSide(s Space) bool { return s == Host || s == Pinned }

// Transfer classifies a copy from src into dst. Unified memory on either side
// yields TransferDefault. Spaces outside the four defined ones are treated as
// host memory; callers validate descriptors before planning copies.
func Transfer(dst, src Space) TransferKind {
	if dst == Unified || src == Unified {
		return TransferDefault
	}
	switch {
	case hostSide(src) && dst == Device:
		return HostToDevice
	case src == Device && hostSide(dst):
		return DeviceToHost
	case src == Device && dst == Device:
		return DeviceToDevice
	default:
		return HostToHost
	}
}
