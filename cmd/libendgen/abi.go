package main

import "endgen.ai/internal/bridge"

// The exported C functions are thin casts over these. Errors collapse to 0,
// which is never a live handle or a biome code.

func createEnd(seed uint64) uint64 {
	h, err := handles.Create(seed)
	if err != nil {
		return 0
	}
	return uint64(h)
}

func deleteEnd(h uint64) {
	_ = handles.Destroy(bridge.Handle(h))
}

func biomeCode(h uint64, x, y, z int32) uint32 {
	b, err := handles.BiomeAt(bridge.Handle(h), x, y, z)
	if err != nil {
		return 0
	}
	return b.Code()
}

func biomeCode2D(h uint64, x, z int32) uint32 {
	b, err := handles.BiomeAt2D(bridge.Handle(h), x, z)
	if err != nil {
		return 0
	}
	return b.Code()
}
