//go:build !gpu

package detector

import (
	"testing"

	"github.com/pkg/errors"
)

func TestDetectWithoutAccelerator(t *testing.T) {
	rep, err := Detect()
	if rep != nil || !errors.Is(err, ErrNoAccelerator) {
		t.Fatalf("Detect() = %v, %v; want ErrNoAccelerator", rep, err)
	}
	if _, err := DetectJSON(); !errors.Is(err, ErrNoAccelerator) {
		t.Errorf("DetectJSON should propagate ErrNoAccelerator, got %v", err)
	}
}
