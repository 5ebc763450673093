//go:build gpu

package detector

import (
	"fmt"
	"strings"
	"time"

	"github.com/openfluke/webgpu/wgpu"
	"github.com/pkg/errors"
)

// copyBufferAlignment is the WebGPU requirement on copy offsets and sizes.
const copyBufferAlignment = 4

// Detect queries the default adapter/device and synthesizes a report.
func Detect() (*Report, error) {
	inst := wgpu.CreateInstance(nil)
	if inst == nil {
		return nil, errors.Wrap(ErrNoAccelerator, "wgpu.CreateInstance returned nil")
	}
	defer inst.Release()

	adapter, err := inst.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, errors.Wrapf(ErrNoAccelerator, "request adapter: %v", err)
	}
	if adapter == nil {
		return nil, errors.Wrap(ErrNoAccelerator, "no adapter")
	}
	defer adapter.Release()

	info := adapter.GetInfo()
	limits := adapter.GetLimits()

	var feats []string
	for _, f := range adapter.EnumerateFeatures() {
		feats = append(feats, f.String())
	}

	// A device must be obtainable, not just an adapter, before we report
	// accelerator memory as usable.
	device, err := adapter.RequestDevice(nil)
	if err != nil {
		return nil, errors.Wrapf(ErrNoAccelerator, "request device: %v", err)
	}
	defer device.Release()

	align := uint64(limits.Limits.MinStorageBufferOffsetAlignment)
	if align < copyBufferAlignment {
		align = copyBufferAlignment
	}

	return &Report{
		WhenISO:     time.Now().UTC().Format(time.RFC3339),
		Accelerator: true,
		Backend:     info.BackendType.String(),
		AdapterType: info.AdapterType.String(),
		VendorID:    fmt.Sprintf("0x%04x", info.VendorId),
		DeviceID:    fmt.Sprintf("0x%04x", info.DeviceId),
		Name:        strings.TrimSpace(info.Name),
		Driver:      strings.TrimSpace(info.DriverDescription),
		Limits: Limits{
			MaxComputeWorkgroupSizeX:    limits.Limits.MaxComputeWorkgroupSizeX,
			MaxStorageBufferBindingSize: limits.Limits.MaxStorageBufferBindingSize,
			MaxBufferSize:               limits.Limits.MaxBufferSize,
			MinStorageBufferAlignment:   limits.Limits.MinStorageBufferOffsetAlignment,
		},
		Features: feats,
		Recommended: Recommendations{
			CopyAlignment: align,
			BudgetBytes:   budgetBytes(),
		},
		Env: pickEnv([]string{BudgetEnv}),
	}, nil
}
