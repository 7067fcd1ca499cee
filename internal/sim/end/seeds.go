package end

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"endgen.ai/internal/sim/rng"
)

// Seeds are the two values derived from a world seed. Noise drives the
// simplex table; Displacement drives the biome zoom jitter.
type Seeds struct {
	Noise        uint64
	Displacement uint64
}

// DeriveSeeds computes both seeds for a world seed.
func DeriveSeeds(seed uint64) Seeds {
	return Seeds{
		Noise:        NoiseSeed(seed),
		Displacement: DisplacementSeed(seed),
	}
}

// NoiseSeed is the raw Random state after seeding with seed and skipping
// the End source's 17292 draws.
func NoiseSeed(seed uint64) uint64 {
	r := rng.New(int64(seed))
	r.Advance(rng.EndSkip)
	return uint64(r.State())
}

// DisplacementSeed hashes the little-endian seed bytes with SHA-256 and
// reads the first eight digest bytes back as a little-endian integer.
func DisplacementSeed(seed uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seed)
	sum := sha256.Sum256(buf[:])
	return binary.LittleEndian.Uint64(sum[:8])
}

// ParseSeed accepts a decimal seed in either signed (Java long) or unsigned
// form; negative values keep their two's-complement bits.
func ParseSeed(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("seed %q: %w", s, err)
		}
		return uint64(v), nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("seed %q: %w", s, err)
	}
	return v, nil
}
