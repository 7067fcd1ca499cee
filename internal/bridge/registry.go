// Package bridge hands out opaque handles to End generators. A handle owns
// exactly one generator from Create until Destroy; every other call borrows
// it. Calls on one handle are serialized, calls on different handles run in
// parallel.
package bridge

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"endgen.ai/internal/sim/end"
)

// DefaultMaxHandles caps live handles when Config.MaxHandles is zero.
const DefaultMaxHandles = 4096

var (
	ErrUnknownHandle  = errors.New("unknown or destroyed handle")
	ErrTooManyHandles = errors.New("too many live handles")
	ErrClosed         = errors.New("registry closed")
)

// Handle is never reused within one Registry. Zero is never issued.
type Handle uint64

type Config struct {
	MaxHandles int
}

type entry struct {
	mu   sync.Mutex
	gen  *end.Generator
	dead bool
}

type Registry struct {
	max int

	mu      sync.RWMutex
	entries map[Handle]*entry
	next    Handle
	closed  bool
}

func NewRegistry(cfg Config) *Registry {
	if cfg.MaxHandles <= 0 {
		cfg.MaxHandles = DefaultMaxHandles
	}
	return &Registry{
		max:     cfg.MaxHandles,
		entries: map[Handle]*entry{},
	}
}

func (r *Registry) MaxHandles() int { return r.max }

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Create builds a generator for seed. The generator is constructed outside
// the registry lock.
func (r *Registry) Create(seed uint64) (Handle, error) {
	e := &entry{gen: end.New(seed)}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, ErrClosed
	}
	if len(r.entries) >= r.max {
		return 0, fmt.Errorf("%w (max %d)", ErrTooManyHandles, r.max)
	}
	r.next++
	h := r.next
	r.entries[h] = e
	return h, nil
}

func (r *Registry) Destroy(h Handle) error {
	r.mu.Lock()
	e := r.entries[h]
	delete(r.entries, h)
	r.mu.Unlock()
	if e == nil {
		return fmt.Errorf("handle %d: %w", h, ErrUnknownHandle)
	}
	// Wait out an in-flight borrower before releasing the generator.
	e.mu.Lock()
	e.dead = true
	e.gen = nil
	e.mu.Unlock()
	return nil
}

func (r *Registry) BiomeAt(h Handle, x, y, z int32) (end.Biome, error) {
	var b end.Biome
	err := r.with(h, func(g *end.Generator) { b = g.BiomeAt(x, y, z) })
	return b, err
}

func (r *Registry) BiomeAt2D(h Handle, x, z int32) (end.Biome, error) {
	var b end.Biome
	err := r.with(h, func(g *end.Generator) { b = g.BiomeAt2D(x, z) })
	return b, err
}

func (r *Registry) Reseed(h Handle, seed uint64) error {
	return r.with(h, func(g *end.Generator) { g.Reseed(seed) })
}

func (r *Registry) Seed(h Handle) (uint64, error) {
	var s uint64
	err := r.with(h, func(g *end.Generator) { s = g.Seed() })
	return s, err
}

func (r *Registry) Stats(h Handle) (end.CacheStats, error) {
	var st end.CacheStats
	err := r.with(h, func(g *end.Generator) { st = g.Stats() })
	return st, err
}

// Handles lists live handles in issue order.
func (r *Registry) Handles() []Handle {
	r.mu.RLock()
	out := make([]Handle, 0, len(r.entries))
	for h := range r.entries {
		out = append(out, h)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Close destroys every live handle and rejects further Create calls.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	live := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		live = append(live, e)
	}
	r.entries = map[Handle]*entry{}
	r.mu.Unlock()

	for _, e := range live {
		e.mu.Lock()
		e.dead = true
		e.gen = nil
		e.mu.Unlock()
	}
	return nil
}

func (r *Registry) with(h Handle, fn func(*end.Generator)) error {
	r.mu.RLock()
	e := r.entries[h]
	r.mu.RUnlock()
	if e == nil {
		return fmt.Errorf("handle %d: %w", h, ErrUnknownHandle)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dead {
		return fmt.Errorf("handle %d: %w", h, ErrUnknownHandle)
	}
	fn(e.gen)
	return nil
}
