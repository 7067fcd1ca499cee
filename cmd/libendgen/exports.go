//go:build cgo

package main

/*
#include <stdint.h>
*/
import "C"

//export create_new_end
func create_new_end(seed C.uint64_t) C.uint64_t {
	return C.uint64_t(createEnd(uint64(seed)))
}

//export delete
func delete(h C.uint64_t) {
	deleteEnd(uint64(h))
}

//export get_biome
func get_biome(h C.uint64_t, x, y, z C.int32_t) C.uint32_t {
	return C.uint32_t(biomeCode(uint64(h), int32(x), int32(y), int32(z)))
}

//export get_biome_2d
func get_biome_2d(h C.uint64_t, x, z C.int32_t) C.uint32_t {
	return C.uint32_t(biomeCode2D(uint64(h), int32(x), int32(z)))
}
