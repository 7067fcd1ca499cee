// Command libendgen builds the generator as a C shared library:
//
//	go build -buildmode=c-shared -o libendgen.so ./cmd/libendgen
//
// Handles returned by create_new_end are opaque. Passing a destroyed or
// unknown handle yields biome 0 instead of undefined behavior.
package main

import "endgen.ai/internal/bridge"

var handles = bridge.NewRegistry(bridge.Config{MaxHandles: 1 << 20})

func main() {}
