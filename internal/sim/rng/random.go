package rng

// Random is a java.util.Random stream. The zero value is not useful; use
// New or NewRaw. Not safe for concurrent use.
type Random struct {
	state int64
	lcg   LCG
}

// New seeds the stream the way new Random(seed) does.
func New(seed int64) *Random {
	return &Random{state: Scramble(seed), lcg: Java}
}

// NewRaw uses state verbatim as the 48-bit internal seed.
func NewRaw(state int64) *Random {
	return &Random{state: state & mask48, lcg: Java}
}

func (r *Random) State() int64 { return r.state }

// Advance applies one step of l to the internal state without producing
// output. Passing Java.Combine(n) skips n draws.
func (r *Random) Advance(l LCG) {
	r.state = l.Next(r.state)
}

func (r *Random) Next(bits uint) int32 {
	r.state = r.lcg.Next(r.state)
	return int32(r.state >> (48 - bits))
}

// NextInt returns a value in [0, bound). It panics if bound <= 0, as the
// reference does.
func (r *Random) NextInt(bound int32) int32 {
	if bound <= 0 {
		panic("rng: bound must be positive")
	}
	if bound&-bound == bound {
		return int32((int64(bound) * int64(r.Next(31))) >> 31)
	}
	for {
		bits := r.Next(31)
		val := bits % bound
		if bits-val+(bound-1) >= 0 {
			return val
		}
	}
}

func (r *Random) NextDouble() float64 {
	hi := int64(r.Next(26))
	lo := int64(r.Next(27))
	return float64(hi<<27+lo) * (1.0 / (1 << 53))
}
