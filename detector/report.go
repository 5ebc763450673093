// Package detector inspects the accelerator once and summarizes what it found.
//
// Builds without the gpu tag have no accelerator runtime compiled in and
// Detect always returns ErrNoAccelerator. With -tags=gpu detection goes
// through WebGPU.
package detector

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// ErrNoAccelerator means no usable accelerator was found or compiled in.
var ErrNoAccelerator = errors.New("accelerator unavailable (build with -tags=gpu to enable)")

// BudgetEnv overrides the recommended staging budget, in MiB.
const BudgetEnv = "LAYOUT_BUDGET_MB"

const defaultBudget = uint64(128 * 1024 * 1024)

/* ---------- public API ---------- */

// Report is a portable summary of the current adapter/device caps.
type Report struct {
	WhenISO     string            `json:"when_iso"`
	Accelerator bool              `json:"accelerator"`
	Backend     string            `json:"backend"`
	AdapterType string            `json:"adapter_type"`
	VendorID    string            `json:"vendor_id_hex"`
	DeviceID    string            `json:"device_id_hex"`
	Name        string            `json:"name"`
	Driver      string            `json:"driver"`
	Recommended Recommendations   `json:"recommended"`
	Limits      Limits            `json:"limits"`
	Features    []string          `json:"features"`
	Env         map[string]string `json:"env,omitempty"`
}

type Limits struct {
	MaxComputeWorkgroupSizeX    uint32 `json:"max_compute_workgroup_size_x"`
	MaxStorageBufferBindingSize uint64 `json:"max_storage_buffer_binding_size"`
	MaxBufferSize               uint64 `json:"max_buffer_size"`
	MinStorageBufferAlignment   uint32 `json:"min_storage_buffer_offset_alignment"`
}

type Recommendations struct {
	// Alignment for staging buffer offsets and sizes.
	CopyAlignment uint64 `json:"copy_alignment"`

	// Soft budget in bytes for staging copies.
	BudgetBytes uint64 `json:"budget_bytes"`
}

// DetectJSON runs detection and returns the JSON string.
func DetectJSON() (string, error) {
	rep, err := Detect()
	if err != nil {
		return "", err
	}
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encode report")
	}
	return string(b), nil
}

/* ---------- helpers ---------- */

func budgetBytes() uint64 {
	if mbStr := os.Getenv(BudgetEnv); mbStr != "" {
		if mb, err := strconv.Atoi(mbStr); err == nil && mb > 0 {
			return uint64(mb) * 1024 * 1024
		}
	}
	return defaultBudget
}

func pickEnv(keys []string) map[string]string {
	out := map[string]string{}
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
