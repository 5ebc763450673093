// Package dtype describes array element types as compact bit-field tags.
//
// A DType packs the width of one real component, the numeric kind and a
// complex flag into a single uint32. Widths below 8 bits are valid (packed
// sub-byte samples such as ci4); use NBit for bit-level sizing and NByte only
// when the type is byte aligned.
package dtype

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DType is an element type tag.
type DType uint32

// Kind is the numeric interpretation of a component.
type Kind uint32

const (
	widthBits   DType = 0x0000FF
	kindBits    DType = 0x000F00
	complexBit  DType = 0x010000
	kindShift         = 8
	maxWidthBit       = 255
)

const (
	KindInt    Kind = 0x0
	KindUint   Kind = 0x1
	KindFloat  Kind = 0x2
	KindString Kind = 0x3
)

// Named element types
const (
	I1  = DType(1) | DType(KindInt)<<kindShift
	I2  = DType(2) | DType(KindInt)<<kindShift
	I4  = DType(4) | DType(KindInt)<<kindShift
	I8  = DType(8) | DType(KindInt)<<kindShift
	I16 = DType(16) | DType(KindInt)<<kindShift
	I32 = DType(32) | DType(KindInt)<<kindShift
	I64 = DType(64) | DType(KindInt)<<kindShift

	U8  = DType(8) | DType(KindUint)<<kindShift
	U16 = DType(16) | DType(KindUint)<<kindShift
	U32 = DType(32) | DType(KindUint)<<kindShift
	U64 = DType(64) | DType(KindUint)<<kindShift

	F16  = DType(16) | DType(KindFloat)<<kindShift
	F32  = DType(32) | DType(KindFloat)<<kindShift
	F64  = DType(64) | DType(KindFloat)<<kindShift
	F128 = DType(128) | DType(KindFloat)<<kindShift

	CI1  = I1 | complexBit
	CI2  = I2 | complexBit
	CI4  = I4 | complexBit
	CI8  = I8 | complexBit
	CI16 = I16 | complexBit
	CI32 = I32 | complexBit
	CI64 = I64 | complexBit

	CF16  = F16 | complexBit
	CF32  = F32 | complexBit
	CF64  = F64 | complexBit
	CF128 = F128 | complexBit
)

// ErrUnknown is returned by Parse for names that do not describe a dtype.
var ErrUnknown = errors.New("unknown dtype")

// Make builds a DType from its parts. width is truncated to 8 bits.
func Make(kind Kind, width int, complex bool) DType {
	d := DType(width)&widthBits | DType(kind)<<kindShift&kindBits
	if complex {
		d |= complexBit
	}
	return d
}

// Width is the bit width of one real component.
func (d DType) Width() int { return int(d & widthBits) }

// Kind returns the numeric kind of the components.
func (d DType) Kind() Kind { return Kind((d & kindBits) >> kindShift) }

// IsComplex reports whether elements are real/imaginary pairs.
func (d DType) IsComplex() bool { return d&complexBit != 0 }

// NBit returns the total number of bits per element.
func (d DType) NBit() int {
	n := d.Width()
	if d.IsComplex() {
		n *= 2
	}
	return n
}

// NByte returns NBit()/8. Sub-byte types report 0 (or a truncated value for
// widths that are not a multiple of 8); callers doing pointer arithmetic must
// check IsByteAligned first.
func (d DType) NByte() int { return d.NBit() / 8 }

// IsByteAligned reports whether an element occupies a whole number of bytes.
func (d DType) IsByteAligned() bool { return d.NBit()%8 == 0 }

func (k Kind) prefix() string {
	switch k {
	case KindInt:
		return "i"
	case KindUint:
		return "u"
	case KindFloat:
		return "f"
	case KindString:
		return "s"
	default:
		return "k" + strconv.Itoa(int(k))
	}
}

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// String formats d the way Parse reads it, e.g. "f32", "ci4".
func (d DType) String() string {
	var sb strings.Builder
	if d.IsComplex() {
		sb.WriteByte('c')
	}
	sb.WriteString(d.Kind().prefix())
	sb.WriteString(strconv.Itoa(d.Width()))
	return sb.String()
}

// Parse reads names such as "i8", "u16", "f32", "cf64" or "ci4".
func Parse(name string) (DType, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	complex := false
	// "c" alone is not a kind, so a leading c always marks a complex type.
	if len(s) > 1 && s[0] == 'c' {
		complex = true
		s = s[1:]
	}
	if len(s) < 2 {
		return 0, errors.Wrapf(ErrUnknown, "%q", name)
	}

	var kind Kind
	switch s[0] {
	case 'i':
		kind = KindInt
	case 'u':
		kind = KindUint
	case 'f':
		kind = KindFloat
	case 's':
		kind = KindString
	default:
		return 0, errors.Wrapf(ErrUnknown, "%q", name)
	}

	width, err := strconv.Atoi(s[1:])
	if err != nil || width <= 0 || width > maxWidthBit {
		return 0, errors.Wrapf(ErrUnknown, "%q: bad width", name)
	}
	return Make(kind, width, complex), nil
}
