package mathx

import (
	"math"
	"testing"
)

func TestFloor(t *testing.T) {
	cases := []struct {
		in   float64
		want int32
	}{
		{0, 0},
		{0.5, 0},
		{-0.5, -1},
		{-1, -1},
		{-1.0000001, -2},
		{2.9999, 2},
		{-1e-12, -1},
	}
	for _, c := range cases {
		if got := Floor(c.in); got != c.want {
			t.Errorf("Floor(%v)=%d want %d", c.in, got, c.want)
		}
	}
}

func TestFloorMod64(t *testing.T) {
	if got := FloorMod64(-1, 1024); got != 1023 {
		t.Fatalf("FloorMod64(-1,1024)=%d", got)
	}
	if got := FloorMod64(2049, 1024); got != 1 {
		t.Fatalf("FloorMod64(2049,1024)=%d", got)
	}
	if got := FloorMod64(math.MinInt64>>24, 1024); got < 0 || got >= 1024 {
		t.Fatalf("FloorMod64 out of range: %d", got)
	}
}

func TestFloat32Helpers(t *testing.T) {
	if got := Clamp32(120, -100, 80); got != 80 {
		t.Fatalf("Clamp32 hi: %v", got)
	}
	if got := Clamp32(-250, -100, 80); got != -100 {
		t.Fatalf("Clamp32 lo: %v", got)
	}
	if got := Max32(-3, 2); got != 2 {
		t.Fatalf("Max32: %v", got)
	}
	nan := float32(math.NaN())
	if got := Max32(nan, 1); !math.IsNaN(float64(got)) {
		t.Fatalf("Max32(NaN,1)=%v want NaN", got)
	}
	if got := Max32(1, nan); !math.IsNaN(float64(got)) {
		t.Fatalf("Max32(1,NaN)=%v want NaN", got)
	}
	if got := Abs32(float32(math.Copysign(0, -1))); math.Signbit(float64(got)) {
		t.Fatalf("Abs32(-0) kept the sign bit")
	}
	if got := Sqrt32(2); got != float32(math.Sqrt2) {
		t.Fatalf("Sqrt32(2)=%v", got)
	}
	// 3439*5 + 147*7 = 18224; 18224 mod 13 = 11
	if got := Mod32(18224, 13); got != 11 {
		t.Fatalf("Mod32=%v", got)
	}
	if got := Mod32(-7.5, 2); got != -1.5 {
		t.Fatalf("Mod32 keeps dividend sign: %v", got)
	}
}
