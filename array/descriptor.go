// Package array describes strided N-dimensional views over raw buffers.
//
// A Descriptor does not own memory. It records the shape, the byte strides
// (outermost first), the element dtype and the memory space of a buffer owned
// elsewhere, and derives layout facts from them: contiguity, physical
// capacity, and the minimal set of dimensions that addresses the same bytes.
package array

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/openfluke/layout/dtype"
	"github.com/openfluke/layout/memory"
)

// MaxDims is the largest supported dimensionality.
const MaxDims = 8

var (
	ErrTooManyDims    = errors.Errorf("array: more than %d dimensions", MaxDims)
	ErrRankMismatch   = errors.New("array: shape and strides differ in length")
	ErrNegativeExtent = errors.New("array: negative extent")
	ErrBadAlignment   = errors.New("array: row alignment must be positive")
)

// Descriptor is a shape/stride/dtype/space tuple. Only the first NDim
// entries of Shape and Strides are meaningful.
type Descriptor struct {
	NDim    int
	Shape   [MaxDims]int64 // extents, outermost first
	Strides [MaxDims]int64 // byte strides, same order as Shape
	DType   dtype.DType
	Space   memory.Space
}

// New validates and builds a descriptor.
func New(dt dtype.DType, space memory.Space, shape, strides []int64) (*Descriptor, error) {
	if len(shape) != len(strides) {
		return nil, errors.Wrapf(ErrRankMismatch, "%d extents, %d strides", len(shape), len(strides))
	}
	if len(shape) > MaxDims {
		return nil, errors.Wrapf(ErrTooManyDims, "got %d", len(shape))
	}
	d := &Descriptor{NDim: len(shape), DType: dt, Space: space}
	for i := range shape {
		if shape[i] < 0 {
			return nil, errors.Wrapf(ErrNegativeExtent, "dim %d = %d", i, shape[i])
		}
		d.Shape[i] = shape[i]
		d.Strides[i] = strides[i]
	}
	return d, nil
}

// Contiguous builds a dense row-major descriptor. dt must be byte aligned.
func Contiguous(dt dtype.DType, space memory.Space, shape ...int64) (*Descriptor, error) {
	strides := make([]int64, len(shape))
	s := int64(dt.NByte())
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = s
		s *= shape[i]
	}
	return New(dt, space, shape, strides)
}

// Padded builds a row-major descriptor whose innermost rows start on rowAlign
// byte boundaries, the layout pitched allocators hand out.
func Padded(dt dtype.DType, space memory.Space, rowAlign uint64, shape ...int64) (*Descriptor, error) {
	if rowAlign == 0 {
		return nil, errors.Wrapf(ErrBadAlignment, "got %d", rowAlign)
	}
	strides := make([]int64, len(shape))
	s := int64(dt.NByte())
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = s
		s *= shape[i]
		if i == len(shape)-1 {
			s = int64(memory.RoundUp(uint64(s), rowAlign))
		}
	}
	return New(dt, space, shape, strides)
}

// Dims returns the meaningful part of Shape.
func (d *Descriptor) Dims() []int64 { return d.Shape[:d.NDim] }

// StrideBytes returns the meaningful part of Strides.
func (d *Descriptor) StrideBytes() []int64 { return d.Strides[:d.NDim] }

// NumElements is the product of all extents (1 for a 0-d descriptor).
func (d *Descriptor) NumElements() int64 {
	n := int64(1)
	for i := 0; i < d.NDim; i++ {
		n *= d.Shape[i]
	}
	return n
}

// IsEmpty reports whether any extent is zero.
func (d *Descriptor) IsEmpty() bool { return d.NumElements() == 0 }

// Accessible reports whether the backing buffer can be dereferenced from the
// given execution context under the process-wide policy.
func (d *Descriptor) Accessible(from memory.Space) bool {
	return memory.Accessible(d.Space, from)
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s@%s shape=%v strides=%v", d.DType, d.Space, d.Dims(), d.StrideBytes())
}
