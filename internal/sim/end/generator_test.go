package end

import "testing"

func columnSum(g *Generator, x, z int32) int32 {
	var sum int32
	for y := int32(0); y < 256; y++ {
		sum += int32(g.BiomeAt(x, y, z).Code())
	}
	return sum
}

func gridSum(g *Generator, ox, oz, n int32) int32 {
	var sum int32
	for i := int32(0); i < n; i++ {
		for j := int32(0); j < n; j++ {
			sum += int32(g.BiomeAt2D(ox+i, oz+j).Code())
		}
	}
	return sum
}

func TestBiomeAt_Golden(t *testing.T) {
	g := New(goldenSeed)
	if got := g.BiomeAt(10000, 251, 10000); got != SmallEndIslands {
		t.Fatalf("BiomeAt(10000,251,10000)=%s want SmallEndIslands", got)
	}
	if got := g.BiomeAt(10000, 251, 10000).String(); got != "SmallEndIslands" {
		t.Fatalf("display name=%q", got)
	}
}

func TestBiomeAt_ColumnChecksum(t *testing.T) {
	if got := columnSum(New(goldenSeed), 10000, 10000); got != 10689 {
		t.Fatalf("column sum=%d want 10689", got)
	}
	if got := columnSum(New(42), 10000, 10000); got != 10567 {
		t.Fatalf("seed 42 column sum=%d want 10567", got)
	}
}

func TestBiomeAt2D_WindowChecksum(t *testing.T) {
	if got := gridSum(New(goldenSeed), 10000, 10000, 100); got != 405328 {
		t.Fatalf("100x100 sum=%d want 405328", got)
	}
}

func TestBiomeAt2D_MillionChecksum(t *testing.T) {
	if testing.Short() {
		t.Skip("1,000,000 point scan")
	}
	if got := gridSum(New(goldenSeed), 10000, 10000, 1000); got != 41033489 {
		t.Fatalf("1000x1000 sum=%d want 41033489", got)
	}
}

func TestBiomeAt_DeterministicAcrossInstances(t *testing.T) {
	a := New(goldenSeed)
	b := New(goldenSeed)
	for x := int32(-3000); x < 3000; x += 97 {
		for z := int32(-3000); z < 3000; z += 113 {
			y := (x ^ z) & 255
			if ba, bb := a.BiomeAt(x, y, z), b.BiomeAt(x, y, z); ba != bb {
				t.Fatalf("(%d,%d,%d): %s vs %s", x, y, z, ba, bb)
			}
		}
	}
}

func TestBiomeAtChunk_CacheTransparency(t *testing.T) {
	g := New(goldenSeed)
	first := map[[3]int32]Biome{}
	for x := int32(9000); x < 9400; x += 17 {
		for y := int32(0); y < 64; y += 21 {
			b := g.BiomeAt(x, y, x/2)
			if b == Default {
				t.Fatalf("(%d,%d) returned Default", x, y)
			}
			first[[3]int32{x, y, x / 2}] = b
		}
	}
	misses := g.Stats().Misses
	for k, want := range first {
		if got := g.BiomeAt(k[0], k[1], k[2]); got != want {
			t.Fatalf("%v: cached %s, first %s", k, got, want)
		}
	}
	if g.Stats().Misses != misses {
		t.Fatalf("repeat queries classified again: misses %d -> %d", misses, g.Stats().Misses)
	}
	if g.CacheLen() == 0 || uint64(g.CacheLen()) != misses {
		t.Fatalf("cache len=%d misses=%d", g.CacheLen(), misses)
	}
}

func TestReseed_InvalidatesCache(t *testing.T) {
	g := New(goldenSeed)
	_ = columnSum(g, 10000, 10000)
	_ = gridSum(g, 2000, -2000, 40)
	if g.CacheLen() == 0 {
		t.Fatalf("expected cached chunks")
	}

	g.Reseed(42)
	if g.CacheLen() != 0 {
		t.Fatalf("cache survived reseed: %d entries", g.CacheLen())
	}
	if g.Seed() != 42 || g.Seeds() != DeriveSeeds(42) {
		t.Fatalf("seeds not rederived: %+v", g.Seeds())
	}
	if got := columnSum(g, 10000, 10000); got != 10567 {
		t.Fatalf("column sum after reseed=%d want 10567", got)
	}

	fresh := New(42)
	for x := int32(2000); x < 2040; x++ {
		for z := int32(-2000); z < -1960; z++ {
			if a, b := g.BiomeAt2D(x, z), fresh.BiomeAt2D(x, z); a != b {
				t.Fatalf("(%d,%d): reseeded %s, fresh %s", x, z, a, b)
			}
		}
	}
}

func TestChunkKeyPacking(t *testing.T) {
	cases := [][2]int32{{0, 0}, {1, -1}, {-1, 1}, {2147483647, -2147483648}, {625, 2500}}
	for _, c := range cases {
		k := MakeChunkKey(c[0], c[1])
		if k.X() != c[0] || k.Z() != c[1] {
			t.Fatalf("key %#x unpacked to (%d,%d) want %v", uint64(k), k.X(), k.Z(), c)
		}
	}
	if MakeChunkKey(1, -1) != 0x00000001FFFFFFFF {
		t.Fatalf("packed layout: %#x", uint64(MakeChunkKey(1, -1)))
	}
}

func TestBiomeAt_ExtremeCoordinatesAreTotal(t *testing.T) {
	g := New(goldenSeed)
	for _, c := range [][3]int32{
		{2147483647, 2147483647, 2147483647},
		{-2147483648, -2147483648, -2147483648},
		{-2147483648, 0, 2147483647},
	} {
		if b := g.BiomeAt(c[0], c[1], c[2]); b == Default {
			t.Fatalf("%v returned Default", c)
		}
	}
}

func BenchmarkGenEnd(b *testing.B) {
	for i := 0; i < b.N; i++ {
		g := New(500)
		_ = g.BiomeAt(500, 0, 500)
	}
}

func BenchmarkGenGrid(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = gridSum(New(500), 500, 500, 200)
	}
}
