// Package end answers "which End biome is at this block" for a world seed,
// matching the reference generator bit for bit.
package end

import (
	"endgen.ai/internal/sim/noise"
	"endgen.ai/internal/sim/rng"
	"endgen.ai/internal/sim/voronoi"
)

// ChunkKey packs a chunk coordinate pair: x in the high 32 bits, z in the
// low 32 bits.
type ChunkKey uint64

// MakeChunkKey packs cx and cz into one key.
func MakeChunkKey(cx, cz int32) ChunkKey {
	return ChunkKey(uint64(uint32(cx))<<32 | uint64(uint32(cz)))
}

func (k ChunkKey) X() int32 { return int32(uint32(k >> 32)) }
func (k ChunkKey) Z() int32 { return int32(uint32(k)) }

type CacheStats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

const initialCacheCap = 1024

// Generator memoizes classifications per chunk. It is not safe for
// concurrent use; give each goroutine its own instance.
type Generator struct {
	seed  uint64
	seeds Seeds
	noise *noise.Simplex
	zoom  voronoi.Zoom

	// Presence in the map is the hit signal; stored values are never Default.
	chunks map[ChunkKey]Biome
	stats  CacheStats
}

func New(seed uint64) *Generator {
	g := &Generator{}
	g.Reseed(seed)
	return g
}

// Reseed rederives both seeds, rebuilds the noise table and drops every
// cached chunk.
func (g *Generator) Reseed(seed uint64) {
	g.seed = seed
	g.seeds = DeriveSeeds(seed)
	g.noise = noise.NewSimplex(rng.NewRaw(int64(g.seeds.Noise)))
	g.zoom = voronoi.New(int64(g.seeds.Displacement))
	g.chunks = make(map[ChunkKey]Biome, initialCacheCap)
	g.stats = CacheStats{}
}

func (g *Generator) Seed() uint64          { return g.seed }
func (g *Generator) Seeds() Seeds          { return g.seeds }
func (g *Generator) CacheLen() int         { return len(g.chunks) }
func (g *Generator) Stats() CacheStats     { return g.stats }
func (g *Generator) Noise() *noise.Simplex { return g.noise }

// BiomeAt returns the biome at a block coordinate. y takes part in the
// zoom jitter, so one column can span several biomes.
func (g *Generator) BiomeAt(x, y, z int32) Biome {
	qx, _, qz := g.zoom.Fuzz(x, y, z)
	return g.BiomeAtChunk(qx>>2, qz>>2)
}

func (g *Generator) BiomeAt2D(x, z int32) Biome {
	return g.BiomeAt(x, 0, z)
}

// BiomeAtChunk classifies a chunk through the cache.
func (g *Generator) BiomeAtChunk(cx, cz int32) Biome {
	key := MakeChunkKey(cx, cz)
	if b, ok := g.chunks[key]; ok {
		g.stats.Hits++
		return b
	}
	g.stats.Misses++
	b := Classify(g.noise, cx, cz)
	g.chunks[key] = b
	return b
}
