//go:build !gpu

package accel

// Buffer stands in for device memory in builds without accelerator support.
type Buffer struct{}

// Upload always fails without accelerator support.
func Upload([]byte) (*Buffer, error) { return nil, ErrNoAccelerator }

// Download always fails without accelerator support.
func Download(*Buffer, uint64) ([]byte, error) { return nil, ErrNoAccelerator }
