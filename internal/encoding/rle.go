// Package encoding packs runs of biome codes for dumps.
package encoding

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// maxDecoded bounds DecodeRuns output so a corrupt run length cannot
// allocate without limit.
const maxDecoded = 1 << 24

// EncodeRuns writes codes as base64 of uvarint (code, run) pairs.
func EncodeRuns(codes []uint32) string {
	var buf bytes.Buffer
	var tmp [binary.MaxVarintLen64]byte

	for i := 0; i < len(codes); {
		c := codes[i]
		run := 1
		for i+run < len(codes) && codes[i+run] == c {
			run++
		}
		n := binary.PutUvarint(tmp[:], uint64(c))
		buf.Write(tmp[:n])
		n = binary.PutUvarint(tmp[:], uint64(run))
		buf.Write(tmp[:n])
		i += run
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func DecodeRuns(b64 string) ([]uint32, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	var out []uint32
	for i := 0; i < len(raw); {
		c, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		run, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		if c > 0xFFFFFFFF {
			return nil, fmt.Errorf("code too large: %d", c)
		}
		if run == 0 || uint64(len(out))+run > maxDecoded {
			return nil, fmt.Errorf("bad run length %d at %d", run, i)
		}
		for k := uint64(0); k < run; k++ {
			out = append(out, uint32(c))
		}
	}
	return out, nil
}
