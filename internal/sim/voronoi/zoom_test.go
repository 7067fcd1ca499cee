package voronoi

import "testing"

// Hashed seed of world seed 1551515151585454.
const goldenSeed int64 = 4053242177535254290

func TestFuzz_Golden(t *testing.T) {
	z := New(goldenSeed)
	cases := []struct {
		in   [3]int32
		want [3]int32
	}{
		{[3]int32{10000, 251, 10000}, [3]int32{2500, 62, 2500}},
		{[3]int32{10000, 0, 10000}, [3]int32{2499, -1, 2500}},
		{[3]int32{0, 0, 0}, [3]int32{-1, -1, -1}},
		{[3]int32{-5, 7, -9}, [3]int32{-1, 1, -3}},
	}
	for _, c := range cases {
		x, y, zz := z.Fuzz(c.in[0], c.in[1], c.in[2])
		if got := [3]int32{x, y, zz}; got != c.want {
			t.Errorf("Fuzz(%v)=%v want %v", c.in, got, c.want)
		}
	}
}

func TestFuzz_StaysInNeighbourhood(t *testing.T) {
	z := New(goldenSeed)
	for x := int32(-64); x < 64; x += 3 {
		for y := int32(0); y < 16; y += 5 {
			for w := int32(-64); w < 64; w += 7 {
				qx, qy, qz := z.Fuzz(x, y, w)
				if d := qx - (x-2)>>2; d < 0 || d > 1 {
					t.Fatalf("x=%d: cell %d not adjacent", x, qx)
				}
				if d := qy - (y-2)>>2; d < 0 || d > 1 {
					t.Fatalf("y=%d: cell %d not adjacent", y, qy)
				}
				if d := qz - (w-2)>>2; d < 0 || d > 1 {
					t.Fatalf("z=%d: cell %d not adjacent", w, qz)
				}
			}
		}
	}
}

func TestFuzz_Deterministic(t *testing.T) {
	a, b := New(goldenSeed), New(goldenSeed)
	for i := int32(-1000); i < 1000; i += 37 {
		ax, ay, az := a.Fuzz(i, i/3, -i)
		bx, by, bz := b.Fuzz(i, i/3, -i)
		if ax != bx || ay != by || az != bz {
			t.Fatalf("Fuzz(%d) differs between instances", i)
		}
	}
}

func TestFiddleRange(t *testing.T) {
	for _, s := range []int64{0, -1, 1 << 40, -(1 << 50), 0x7fffffffffffffff} {
		f := fiddle(s)
		if f < -0.45 || f >= 0.45 {
			t.Fatalf("fiddle(%d)=%v outside [-0.45,0.45)", s, f)
		}
	}
}
