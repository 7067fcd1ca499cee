// Package rng reproduces the pseudorandom streams of the reference world
// generator: the 48-bit java.util.Random LCG, its multi-step compositions,
// and the 64-bit mixing step used by the biome zoom.
package rng

const mask48 = 1<<48 - 1

// LCG is one affine step x' = x*Multiplier + Addend (mod 2^48).
type LCG struct {
	Multiplier int64
	Addend     int64
}

// Java is the java.util.Random step.
var Java = LCG{Multiplier: 0x5DEECE66D, Addend: 0xB}

// EndSkip is Java composed 17292 times: the End biome source advances a
// freshly seeded Random by that many draws before building its noise.
var EndSkip = LCG{Multiplier: 0xEA2F6E0A2E31, Addend: 0xA7B121097F4C}

func (l LCG) Next(state int64) int64 {
	return (state*l.Multiplier + l.Addend) & mask48
}

// Then returns the step equivalent to applying l followed by o.
func (l LCG) Then(o LCG) LCG {
	return LCG{
		Multiplier: (l.Multiplier * o.Multiplier) & mask48,
		Addend:     (l.Addend*o.Multiplier + o.Addend) & mask48,
	}
}

// Combine returns l applied n times, by square-and-multiply.
func (l LCG) Combine(n int) LCG {
	out := LCG{Multiplier: 1}
	pow := l
	for n > 0 {
		if n&1 == 1 {
			out = out.Then(pow)
		}
		pow = pow.Then(pow)
		n >>= 1
	}
	return out
}

// Scramble is the seed transform applied by the Random(long) constructor.
func Scramble(seed int64) int64 {
	return (seed ^ Java.Multiplier) & mask48
}

// MixNext is the 64-bit LCG mix the biome zoom chains over cell
// coordinates. Arithmetic wraps.
func MixNext(left, right int64) int64 {
	return left*(left*6364136223846793005+1442695040888963407) + right
}
