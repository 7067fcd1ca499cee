package end

import "testing"

const goldenSeed uint64 = 1551515151585454

func TestDeriveSeeds_Golden(t *testing.T) {
	s := DeriveSeeds(goldenSeed)
	if s.Displacement != 0x38400249149E9F12 {
		t.Fatalf("displacement seed=%#x want 0x38400249149e9f12", s.Displacement)
	}
	if s.Noise != 77510153241759 {
		t.Fatalf("noise seed=%d want 77510153241759", s.Noise)
	}
	if got := DisplacementSeed(42); got != 0xC6F218BC089104ED {
		t.Fatalf("DisplacementSeed(42)=%#x", got)
	}
}

func TestDeriveSeeds_NoiseSeedIs48Bit(t *testing.T) {
	for _, seed := range []uint64{0, 1, goldenSeed, 1<<64 - 1, 1 << 63} {
		if n := NoiseSeed(seed); n>>48 != 0 {
			t.Fatalf("NoiseSeed(%d)=%#x exceeds 48 bits", seed, n)
		}
	}
}

func TestParseSeed(t *testing.T) {
	cases := []struct {
		in   string
		want uint64
		ok   bool
	}{
		{"1551515151585454", goldenSeed, true},
		{" 42 ", 42, true},
		{"-1", 1<<64 - 1, true},
		{"18446744073709551615", 1<<64 - 1, true},
		{"-9223372036854775808", 1 << 63, true},
		{"", 0, false},
		{"0x10", 0, false},
		{"-9223372036854775809", 0, false},
	}
	for _, c := range cases {
		got, err := ParseSeed(c.in)
		if (err == nil) != c.ok {
			t.Fatalf("ParseSeed(%q) err=%v", c.in, err)
		}
		if c.ok && got != c.want {
			t.Fatalf("ParseSeed(%q)=%d want %d", c.in, got, c.want)
		}
	}
}
