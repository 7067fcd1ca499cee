// Package voronoi implements the fuzzed biome zoom: a block coordinate is
// snapped to the quarter-resolution cell whose jittered center is nearest.
package voronoi

import (
	"endgen.ai/internal/sim/mathx"
	"endgen.ai/internal/sim/rng"
)

// Zoom carries the hashed world seed that drives the per-cell jitter.
type Zoom struct {
	Seed int64
}

func New(seed int64) Zoom {
	return Zoom{Seed: seed}
}

// Fuzz returns the quarter-resolution cell (x>>2 scale) that owns the block
// coordinate. The eight cells around the shifted point compete; the first
// strictly closest one in corner order wins.
func (v Zoom) Fuzz(x, y, z int32) (int32, int32, int32) {
	bx, by, bz := x-2, y-2, z-2
	qx, qy, qz := bx>>2, by>>2, bz>>2
	fx := float64(bx&3) / 4.0
	fy := float64(by&3) / 4.0
	fz := float64(bz&3) / 4.0

	best := 0
	bestDist := 0.0
	for k := 0; k < 8; k++ {
		cx, cy, cz := qx, qy, qz
		dx, dy, dz := fx, fy, fz
		if k&4 != 0 {
			cx, dx = qx+1, fx-1.0
		}
		if k&2 != 0 {
			cy, dy = qy+1, fy-1.0
		}
		if k&1 != 0 {
			cz, dz = qz+1, fz-1.0
		}
		d := v.fiddledDistance(cx, cy, cz, dx, dy, dz)
		if k == 0 || bestDist > d {
			best, bestDist = k, d
		}
	}

	if best&4 != 0 {
		qx++
	}
	if best&2 != 0 {
		qy++
	}
	if best&1 != 0 {
		qz++
	}
	return qx, qy, qz
}

func (v Zoom) fiddledDistance(x, y, z int32, dx, dy, dz float64) float64 {
	s := rng.MixNext(v.Seed, int64(x))
	s = rng.MixNext(s, int64(y))
	s = rng.MixNext(s, int64(z))
	s = rng.MixNext(s, int64(x))
	s = rng.MixNext(s, int64(y))
	s = rng.MixNext(s, int64(z))
	ox := fiddle(s)
	s = rng.MixNext(s, v.Seed)
	oy := fiddle(s)
	s = rng.MixNext(s, v.Seed)
	oz := fiddle(s)
	return sqr(dz+oz) + sqr(dy+oy) + sqr(dx+ox)
}

// fiddle maps a mixed seed to a jitter in [-0.45, 0.45). It and sqr round
// their products explicitly so callers cannot fuse them into an FMA.
func fiddle(s int64) float64 {
	f := float64(mathx.FloorMod64(s>>24, 1024)) / 1024.0
	return float64((f - 0.5) * 0.9)
}

func sqr(v float64) float64 {
	return float64(v * v)
}
