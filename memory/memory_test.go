package memory

import (
	"strings"
	"testing"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

var allSpaces = []Space{Host, Device, Pinned, Unified}

// TestAccessibleTable checks every cell of the accelerator table
func TestAccessibleTable(t *testing.T) {
	p := WithAccelerator()
	want := map[Space]map[Space]bool{
		Host:   {Host: true, Device: false, Pinned: true, Unified: true},
		Device: {Host: false, Device: true, Pinned: false, Unified: true},
	}
	for from, row := range want {
		for _, space := range allSpaces {
			if got := p.Accessible(space, from); got != row[space] {
				t.Errorf("Accessible(%s, from %s) = %v, want %v", space, from, got, row[space])
			}
			if got := p.NeedsStaging(space, from); got == row[space] {
				t.Errorf("NeedsStaging(%s, from %s) = %v", space, from, got)
			}
		}
	}

	// Not symmetric: unified is readable from host, host is not readable from device.
	if !p.Accessible(Unified, Host) || p.Accessible(Host, Device) {
		t.Error("accessibility table should be asymmetric")
	}
}

func TestAccessibleHostOnly(t *testing.T) {
	p := HostOnly()
	spaces := append([]Space{SpaceInvalid, Space(42)}, allSpaces...)
	for _, from := range spaces {
		for _, space := range spaces {
			want := space == Host && from == Host
			if got := p.Accessible(space, from); got != want {
				t.Errorf("host-only Accessible(%s, from %s) = %v, want %v", space, from, got, want)
			}
		}
	}
}

// TestAccessibleBadContext verifies an unknown execution context is fatal
func TestAccessibleBadContext(t *testing.T) {
	p := WithAccelerator()
	for _, from := range []Space{Pinned, Unified, SpaceInvalid, Space(42)} {
		err := exceptions.TryCatch[error](func() { p.Accessible(Host, from) })
		if err == nil {
			t.Fatalf("Accessible(host, from %d) should panic", int(from))
		}
		if !strings.Contains(err.Error(), "unrecognized execution context") {
			t.Errorf("unexpected panic message: %v", err)
		}
	}
}

func TestDefaultPolicy(t *testing.T) {
	saved := Default()
	defer SetDefault(saved)

	SetDefault(HostOnly())
	if Accessible(Pinned, Host) {
		t.Error("pinned memory must not be accessible without accelerator support")
	}
	SetDefault(WithAccelerator())
	if !Default().Accelerator() || !Accessible(Pinned, Host) {
		t.Error("default policy not updated")
	}
}

func TestParseSpace(t *testing.T) {
	for _, s := range allSpaces {
		got, err := ParseSpace(s.String())
		if err != nil || got != s {
			t.Errorf("ParseSpace(%q) = %s, %v", s.String(), got, err)
		}
	}
	if s, _ := ParseSpace("CUDA_Managed"); s != Unified {
		t.Errorf("alias cuda_managed parsed as %s", s)
	}
	if _, err := ParseSpace("tape"); !errors.Is(err, ErrUnknownSpace) {
		t.Errorf("expected ErrUnknownSpace, got %v", err)
	}
	if SpaceInvalid.Valid() || SpaceInvalid.String() != "invalid" {
		t.Error("zero Space must be invalid")
	}
}

// TestRoundUp checks the round-up properties on a grid of values
func TestRoundUp(t *testing.T) {
	for _, m := range []uint64{1, 2, 3, 7, 8, 64, 4096} {
		if RoundUp(0, m) != 0 {
			t.Errorf("RoundUp(0, %d) should be 0", m)
		}
		for v := uint64(1); v < 300; v++ {
			r := RoundUp(v, m)
			if r%m != 0 {
				t.Fatalf("RoundUp(%d, %d) = %d is not a multiple", v, m, r)
			}
			if r < v || r-v >= m {
				t.Fatalf("RoundUp(%d, %d) = %d out of range", v, m, r)
			}
			if RoundUp(r, m) != r {
				t.Fatalf("RoundUp not idempotent for (%d, %d)", v, m)
			}
		}
	}
}

func TestRoundUpPow2(t *testing.T) {
	cases := map[uint64]uint64{1: 1, 2: 2, 3: 4, 5: 8, 64: 64, 65: 128, 1000: 1024, 1 << 40: 1 << 40, 1<<40 + 1: 1 << 41}
	for v, want := range cases {
		if got := RoundUpPow2(v); got != want {
			t.Errorf("RoundUpPow2(%d) = %d, want %d", v, got, want)
		}
	}
	for v := uint64(1); v < 5000; v++ {
		p := RoundUpPow2(v)
		if !IsPow2(p) || p < v || p/2 >= v {
			t.Fatalf("RoundUpPow2(%d) = %d", v, p)
		}
	}
}

func TestTransfer(t *testing.T) {
	cases := []struct {
		dst, src Space
		want     TransferKind
	}{
		{Host, Host, HostToHost},
		{Pinned, Host, HostToHost},
		{Device, Host, HostToDevice},
		{Device, Pinned, HostToDevice},
		{Host, Device, DeviceToHost},
		{Pinned, Device, DeviceToHost},
		{Device, Device, DeviceToDevice},
		{Unified, Device, TransferDefault},
		{Host, Unified, TransferDefault},
	}
	for _, c := range cases {
		if got := Transfer(c.dst, c.src); got != c.want {
			t.Errorf("Transfer(%s <- %s) = %s, want %s", c.dst, c.src, got, c.want)
		}
	}
}
