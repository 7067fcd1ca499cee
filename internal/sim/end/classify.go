package end

import "endgen.ai/internal/sim/noise"

// Classify picks the biome of a chunk. It never returns Default.
func Classify(n *noise.Simplex, chunkX, chunkZ int32) Biome {
	cx, cz := int64(chunkX), int64(chunkZ)
	if cx*cx+cz*cz <= centerRadiusSq {
		return TheEnd
	}
	return biomeForHeight(Height(n, chunkX*2+1, chunkZ*2+1))
}

// biomeForHeight maps an outer-island height to its biome. Exact ties go to
// the band above: 40 is Midlands, 0 is Midlands, -20 is Barrens.
func biomeForHeight(h float32) Biome {
	switch {
	case h > 40:
		return EndHighlands
	case h >= 0:
		return EndMidlands
	case h < -20:
		return SmallEndIslands
	default:
		return EndBarrens
	}
}
