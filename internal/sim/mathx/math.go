// Package mathx holds the scalar helpers shared by the generator stages.
//
// The float32 helpers reproduce single-precision arithmetic exactly: every
// intermediate that must be rounded to 32 bits goes through an explicit
// float32 conversion, which also keeps the compiler from fusing a multiply
// and an add into one FMA instruction.
package mathx

import "math"

// Clamp32 limits v to [lo, hi].
func Clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Max32 propagates a NaN from either side, as the reference's max does.
func Max32(a, b float32) float32 {
	if a != a {
		return a
	}
	if a >= b {
		return a
	}
	return b
}

// Abs32 clears the sign bit.
func Abs32(v float32) float32 {
	return math.Float32frombits(math.Float32bits(v) &^ (1 << 31))
}

// Sqrt32 is a correctly rounded single-precision square root. Rounding the
// float64 root to float32 gives the same bits as a native sqrtf.
func Sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// Mod32 is the truncated remainder (C fmodf). The float64 remainder of two
// float32 values is exact, so the conversion back loses nothing.
func Mod32(a, b float32) float32 {
	return float32(math.Mod(float64(a), float64(b)))
}

// Floor rounds toward negative infinity, truncating the way an int cast
// does before correcting negative fractions.
func Floor(v float64) int32 {
	i := int32(v)
	if v < float64(i) {
		return i - 1
	}
	return i
}

// FloorMod64 is the remainder with the sign of b. b must be positive.
func FloorMod64(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
