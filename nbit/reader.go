// Package nbit reads fixed-width values packed below byte granularity.
//
// Values are packed low bits first into consecutive access words: element n
// lives in word n*nbit/wordBits at bit offset (n % (wordBits/nbit))*nbit.
// This is the layout external producers use for 1, 2 and 4 bit samples.
package nbit

import (
	"encoding/binary"
	"unsafe"
)

// Word is an integral access word.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Reader is a read-only indexed view over packed values. It does not own
// data and performs no bounds checks beyond those of the Go slice.
type Reader[W Word] struct {
	data []W
	nbit int
	mask W
}

// New returns a reader over data for values nbit wide. nbit must be in
// [1, bits of W].
func New[W Word](data []W, nbit int) Reader[W] {
	var w W
	bits := int(unsafe.Sizeof(w)) * 8
	mask := ^W(0)
	if nbit < bits {
		mask = W(1)<<nbit - 1
	}
	return Reader[W]{data: data, nbit: nbit, mask: mask}
}

// FromBytes decodes b into W words in little-endian order, the order
// producers pack samples in, independent of host byte order. Trailing bytes
// that do not fill a whole word are dropped.
func FromBytes[W Word](b []byte, nbit int) Reader[W] {
	var w W
	size := int(unsafe.Sizeof(w))
	words := make([]W, len(b)/size)
	for i := range words {
		chunk := b[i*size : (i+1)*size]
		switch size {
		case 1:
			words[i] = W(chunk[0])
		case 2:
			words[i] = W(binary.LittleEndian.Uint16(chunk))
		case 4:
			words[i] = W(binary.LittleEndian.Uint32(chunk))
		default:
			words[i] = W(binary.LittleEndian.Uint64(chunk))
		}
	}
	return New(words, nbit)
}

func (r Reader[W]) wordBits() int {
	var w W
	return int(unsafe.Sizeof(w)) * 8
}

// At returns element n.
func (r Reader[W]) At(n int) W {
	bits := r.wordBits()
	word := r.data[n*r.nbit/bits]
	k := n % (bits / r.nbit)
	return (word >> (k * r.nbit)) & r.mask
}

// Value returns element 0.
func (r Reader[W]) Value() W { return r.At(0) }

// Signed returns element n sign-extended from nbit bits, for two's
// complement samples such as the components of ci4.
func (r Reader[W]) Signed(n int) int64 {
	v := uint64(r.At(n))
	shift := 64 - r.nbit
	return int64(v<<shift) >> shift
}

// Float returns element n converted to float32, the default sample type
// for unsigned packed data.
func (r Reader[W]) Float(n int) float32 { return float32(r.At(n)) }

// SignedFloat returns the sign-extended element n as float32.
func (r Reader[W]) SignedFloat(n int) float32 { return float32(r.Signed(n)) }

// Width is the bit width of one value.
func (r Reader[W]) Width() int { return r.nbit }

// Words returns the underlying access words.
func (r Reader[W]) Words() []W { return r.data }
