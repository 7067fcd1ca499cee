package end

import (
	"endgen.ai/internal/sim/mathx"
	"endgen.ai/internal/sim/noise"
)

// islandThreshold is -0.9 rounded to float32 and widened back; the noise
// probe compares against the widened value, not against -0.9.
var islandThreshold = float64(float32(-0.9))

const (
	// Squared radius, in half-chunk cells, of the main island. No outer
	// island is seeded inside it.
	centerRadiusSq = 4096
	scanRadius     = 12
)

// Height is the island height at a doubled chunk coordinate (2*cx+1).
// Every float32 product is converted before it is added so no step can be
// fused; the result must match single-precision evaluation exactly.
func Height(n *noise.Simplex, x, z int32) float32 {
	sx, sz := x/2, z/2
	ox, oz := x%2, z%2

	h := mathx.Clamp32(100-float32(mathx.Sqrt32(float32(x*x+z*z))*8), -100, 80)

	for rx := int32(-scanRadius); rx <= scanRadius; rx++ {
		for rz := int32(-scanRadius); rz <= scanRadius; rz++ {
			cx := int64(sx + rx)
			cz := int64(sz + rz)
			// Radius first: it is cheap and prunes the noise probe.
			if cx*cx+cz*cz <= centerRadiusSq {
				continue
			}
			if !(n.Value2D(float64(cx), float64(cz)) < islandThreshold) {
				continue
			}
			h = mathx.Max32(h, islandHeight(cx, cz, ox-rx*2, oz-rz*2))
		}
	}
	return h
}

func islandHeight(cx, cz int64, dx, dz int32) float32 {
	ax := float32(mathx.Abs32(float32(cx)) * 3439)
	az := float32(mathx.Abs32(float32(cz)) * 147)
	elevation := mathx.Mod32(ax+az, 13) + 9

	fx := float32(dx)
	fz := float32(dz)
	dist := mathx.Sqrt32(float32(fx*fx) + float32(fz*fz))
	return mathx.Clamp32(100-float32(dist*elevation), -100, 80)
}
