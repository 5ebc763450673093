//go:build !gpu

package detector

// Detect reports ErrNoAccelerator: no accelerator runtime is compiled in.
func Detect() (*Report, error) {
	return nil, ErrNoAccelerator
}
