package memory

// CacheLineSize is the default row alignment used for padded host buffers.
const CacheLineSize = 64

// RoundUp returns the smallest multiple of mult that is >= val, and 0 for
// val == 0. mult must be positive. Results that do not fit in a uint64 wrap.
func RoundUp(val, mult uint64) uint64 {
	if val == 0 {
		return 0
	}
	return ((val-1)/mult + 1) * mult
}

// RoundUpPow2 returns the smallest power of two >= a by smearing the high bit
// of a-1 into every lower position. a must be >= 1: RoundUpPow2(0) wraps to 0.
func RoundUpPow2(a uint64) uint64 {
	r := a - 1
	for i := 1; i <= 32; i <<= 1 {
		r |= r >> i
	}
	return r + 1
}

// IsPow2 reports whether a is a non-zero power of two.
func IsPow2(a uint64) bool { return a != 0 && a&(a-1) == 0 }
