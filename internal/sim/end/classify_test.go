package end

import (
	"math"
	"testing"
)

func TestHeight_Golden(t *testing.T) {
	n := New(goldenSeed).Noise()
	cases := []struct {
		x, z int32
		want float32
	}{
		{1251, 1251, -28.693435668945312},
		{201, -301, -55.56349182128906},
		{131, 1, -13.251937866210938},
		{-401, -401, -17.720016479492188},
		{1001, 1001, -57.07958984375},
		{1001, 1017, -8.894447326660156},
		{1001, 1019, 5.374420166015625},
		{1011, 1021, 41.69048309326172},
	}
	for _, c := range cases {
		if got := Height(n, c.x, c.z); got != c.want {
			t.Errorf("Height(%d,%d)=%v want %v", c.x, c.z, got, c.want)
		}
	}
}

func TestClassify_Golden(t *testing.T) {
	n := New(goldenSeed).Noise()
	cases := []struct {
		cx, cz int32
		want   Biome
	}{
		{625, 625, SmallEndIslands},
		{100, -150, SmallEndIslands},
		{65, 0, EndBarrens},
		{-200, -200, SmallEndIslands},
		{500, 508, EndBarrens},
		{500, 509, EndMidlands},
		{505, 510, EndHighlands},
		{64, 0, TheEnd},
		{0, -64, TheEnd},
	}
	for _, c := range cases {
		if got := Classify(n, c.cx, c.cz); got != c.want {
			t.Errorf("Classify(%d,%d)=%s want %s", c.cx, c.cz, got, c.want)
		}
	}
}

func TestClassify_CentralIslandForAnySeed(t *testing.T) {
	for _, seed := range []uint64{0, 1, 42, goldenSeed, 1<<64 - 1} {
		n := New(seed).Noise()
		for cx := int32(-64); cx <= 64; cx += 4 {
			for cz := int32(-64); cz <= 64; cz += 4 {
				if int64(cx)*int64(cx)+int64(cz)*int64(cz) > 4096 {
					continue
				}
				if got := Classify(n, cx, cz); got != TheEnd {
					t.Fatalf("seed=%d chunk (%d,%d)=%s want TheEnd", seed, cx, cz, got)
				}
			}
		}
	}
}

func TestClassify_NeverDefault(t *testing.T) {
	n := New(goldenSeed).Noise()
	for cx := int32(60); cx < 200; cx += 9 {
		for cz := int32(-200); cz < 200; cz += 13 {
			if got := Classify(n, cx, cz); got == Default {
				t.Fatalf("chunk (%d,%d) classified as Default", cx, cz)
			}
		}
	}
}

func TestHeight_ClampedRange(t *testing.T) {
	n := New(goldenSeed).Noise()
	for x := int32(-3001); x < 3001; x += 271 {
		h := Height(n, x, 2*x+1)
		if h < -100 || h > 80 {
			t.Fatalf("Height(%d)=%v outside [-100,80]", x, h)
		}
	}
	if got := Height(n, 1, 1); got != 80 {
		t.Fatalf("origin height=%v want 80", got)
	}
}

func TestBiomeForHeight_Boundaries(t *testing.T) {
	negZero := float32(math.Copysign(0, -1))
	cases := []struct {
		h    float32
		want Biome
	}{
		{40, EndMidlands},
		{math.Nextafter32(40, float32(math.Inf(1))), EndHighlands},
		{0, EndMidlands},
		{negZero, EndMidlands},
		{math.Nextafter32(0, float32(math.Inf(-1))), EndBarrens},
		{-19.99, EndBarrens},
		{-20, EndBarrens},
		{math.Nextafter32(-20, float32(math.Inf(-1))), SmallEndIslands},
	}
	for _, tc := range cases {
		if got := biomeForHeight(tc.h); got != tc.want {
			t.Fatalf("biomeForHeight(%v)=%v want %v", tc.h, got, tc.want)
		}
	}
}
