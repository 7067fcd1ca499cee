// Package noise implements the 2D simplex noise of the reference generator.
package noise

import (
	"math"

	"endgen.ai/internal/sim/mathx"
	"endgen.ai/internal/sim/rng"
)

// Gradient table, including the four duplicates that pad it to 16 rows.
// Only the first 12 are reachable from Value2D.
var grads = [16][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
	{1, 1, 0}, {0, -1, 1}, {-1, 1, 0}, {0, -1, -1},
}

var (
	sqrt3 = math.Sqrt(3.0)
	f2    = 0.5 * (sqrt3 - 1.0)
	g2    = (3.0 - sqrt3) / 6.0
)

// Products that feed an addition are wrapped in float64(...) so they are
// rounded on their own and never fused into an FMA.

// Simplex is immutable after construction and safe for concurrent reads.
type Simplex struct {
	perm [256]int32

	// Origin offsets drawn before the permutation. The 2D evaluation does
	// not use them, but drawing them keeps the stream aligned.
	XO, YO, ZO float64
}

// NewSimplex consumes r to build the table; r should not be shared.
func NewSimplex(r *rng.Random) *Simplex {
	s := &Simplex{
		XO: r.NextDouble() * 256.0,
		YO: r.NextDouble() * 256.0,
		ZO: r.NextDouble() * 256.0,
	}
	for i := range s.perm {
		s.perm[i] = int32(i)
	}
	for l := int32(0); l < 256; l++ {
		j := r.NextInt(256 - l)
		s.perm[l], s.perm[l+j] = s.perm[l+j], s.perm[l]
	}
	return s
}

func (s *Simplex) p(i int32) int32 {
	return s.perm[i&255]
}

// Perm exposes the shuffled table, mostly for tests and diagnostics.
func (s *Simplex) Perm() [256]int32 {
	return s.perm
}

func contrib(g int32, x, y float64) float64 {
	t := 0.5 - float64(x*x) - float64(y*y)
	if t < 0 {
		return 0
	}
	t = t * t
	gr := grads[g]
	dot := float64(gr[0]*x) + float64(gr[1]*y)
	return float64(float64(t*t) * dot)
}

// Value2D evaluates the noise at (x, y). The result lies roughly in [-1, 1];
// every integer point with x+y == 0 is a lattice vertex and yields 0.
func (s *Simplex) Value2D(x, y float64) float64 {
	skew := float64((x + y) * f2)
	i := mathx.Floor(x + skew)
	j := mathx.Floor(y + skew)
	unskew := float64(float64(i+j) * g2)
	x0 := x - (float64(i) - unskew)
	y0 := y - (float64(j) - unskew)

	var i1, j1 int32
	if x0 > y0 {
		i1, j1 = 1, 0
	} else {
		i1, j1 = 0, 1
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1.0 + float64(2.0*g2)
	y2 := y0 - 1.0 + float64(2.0*g2)

	ii := i & 255
	jj := j & 255
	gi0 := s.p(ii+s.p(jj)) % 12
	gi1 := s.p(ii+i1+s.p(jj+j1)) % 12
	gi2 := s.p(ii+1+s.p(jj+1)) % 12

	n0 := contrib(gi0, x0, y0)
	n1 := contrib(gi1, x1, y1)
	n2 := contrib(gi2, x2, y2)
	return 70.0 * (n0 + n1 + n2)
}
