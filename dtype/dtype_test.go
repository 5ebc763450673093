package dtype

import (
	"testing"

	"github.com/pkg/errors"
)

// TestNBitNByte checks bit and byte sizes for every named dtype
func TestNBitNByte(t *testing.T) {
	cases := []struct {
		d     DType
		nbit  int
		nbyte int
	}{
		{I1, 1, 0},
		{I4, 4, 0},
		{CI4, 8, 1},
		{I8, 8, 1},
		{CI8, 16, 2},
		{U16, 16, 2},
		{F32, 32, 4},
		{CF32, 64, 8},
		{F64, 64, 8},
		{CF64, 128, 16},
		{F128, 128, 16},
		{CF128, 256, 32},
	}
	for _, c := range cases {
		if got := c.d.NBit(); got != c.nbit {
			t.Errorf("%s: NBit expected %d, got %d", c.d, c.nbit, got)
		}
		if got := c.d.NByte(); got != c.nbyte {
			t.Errorf("%s: NByte expected %d, got %d", c.d, c.nbyte, got)
		}
	}
}

// TestByteSizeMatchesWidth checks nbyte*8 == width*(complex?2:1) for byte aligned types
func TestByteSizeMatchesWidth(t *testing.T) {
	for _, kind := range []Kind{KindInt, KindUint, KindFloat} {
		for _, width := range []int{8, 16, 24, 32, 64, 128} {
			for _, complex := range []bool{false, true} {
				d := Make(kind, width, complex)
				want := width
				if complex {
					want *= 2
				}
				if d.NByte()*8 != want {
					t.Errorf("%s: nbyte*8 = %d, want %d", d, d.NByte()*8, want)
				}
				if !d.IsByteAligned() {
					t.Errorf("%s should be byte aligned", d)
				}
			}
		}
	}
	if I4.IsByteAligned() {
		t.Error("i4 must not be byte aligned")
	}
}

func TestMakeFields(t *testing.T) {
	d := Make(KindFloat, 16, true)
	if d != CF16 {
		t.Fatalf("Make(float, 16, complex) = %#x, want %#x", uint32(d), uint32(CF16))
	}
	if d.Width() != 16 || d.Kind() != KindFloat || !d.IsComplex() {
		t.Errorf("unexpected fields: width=%d kind=%s complex=%v", d.Width(), d.Kind(), d.IsComplex())
	}
}

// TestParseRoundTrip verifies String and Parse agree
func TestParseRoundTrip(t *testing.T) {
	named := []DType{I1, I2, I4, I8, I16, I32, I64, U8, U16, U32, U64,
		F16, F32, F64, F128, CI1, CI2, CI4, CI8, CI16, CI32, CI64, CF16, CF32, CF64, CF128}
	for _, d := range named {
		got, err := Parse(d.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", d.String(), err)
		}
		if got != d {
			t.Errorf("Parse(%q) = %s", d.String(), got)
		}
	}

	if d, err := Parse(" CF32 "); err != nil || d != CF32 {
		t.Errorf("Parse is expected to ignore case and spaces, got %s, %v", d, err)
	}
}

func TestParseRejects(t *testing.T) {
	for _, name := range []string{"", "c", "f", "x32", "f0", "i256", "cfx", "u-8"} {
		if _, err := Parse(name); !errors.Is(err, ErrUnknown) {
			t.Errorf("Parse(%q): expected ErrUnknown, got %v", name, err)
		}
	}
}
