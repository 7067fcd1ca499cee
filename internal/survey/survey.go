// Package survey scans a coordinate window and folds biome codes into a
// checksum and a histogram. It is the reporting driver around the
// generator: each worker owns a private end.Generator, so workers share
// nothing but the result channel.
package survey

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"endgen.ai/internal/sim/end"
)

// Row is one scan line. Codes run along z (grid mode) or y (column mode)
// starting at (X, Y, Z).
type Row struct {
	X     int32    `json:"x"`
	Y     int32    `json:"y"`
	Z     int32    `json:"z"`
	Axis  string   `json:"axis"`
	Codes []uint32 `json:"codes"`
}

type RowSink interface {
	WriteRow(Row) error
}

type Options struct {
	// Sink receives every row from a single goroutine. Row order follows
	// line order only when Workers == 1.
	Sink RowSink
	// Progress, if set, is called from the collecting goroutine.
	Progress func(done, total int)
}

type Report struct {
	RunID     string               `json:"run_id"`
	Seed      uint64               `json:"seed"`
	Mode      Mode                 `json:"mode"`
	Origin    Point                `json:"origin"`
	Width     int                  `json:"width"`
	Depth     int                  `json:"depth"`
	Height    int                  `json:"height,omitempty"`
	Workers   int                  `json:"workers"`
	Points    uint64               `json:"points"`
	Checksum  int32                `json:"checksum"`
	Histogram map[end.Biome]uint64 `json:"histogram"`
	// Chunks classified (cache misses) summed over workers.
	Classified uint64        `json:"classified"`
	StartedAt  time.Time     `json:"started_at"`
	Elapsed    time.Duration `json:"elapsed_ns"`
}

func Run(ctx context.Context, cfg Config, opts Options) (Report, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	rep := Report{
		RunID:     uuid.NewString(),
		Seed:      uint64(cfg.Seed),
		Mode:      cfg.Mode,
		Origin:    cfg.Origin,
		Width:     cfg.Width,
		Depth:     cfg.Depth,
		Workers:   cfg.Workers,
		Histogram: map[end.Biome]uint64{},
		StartedAt: time.Now().UTC(),
	}
	if cfg.Mode == ModeColumn {
		rep.Height = cfg.Height
	}

	total := cfg.Lines()
	workers := cfg.Workers
	if workers > total {
		workers = total
	}

	var next atomic.Int64
	var classified atomic.Uint64
	rows := make(chan Row, 4*workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			gen := end.New(uint64(cfg.Seed))
			defer func() { classified.Add(gen.Stats().Misses) }()
			for {
				i := int(next.Add(1) - 1)
				if i >= total {
					return nil
				}
				if err := gctx.Err(); err != nil {
					return err
				}
				select {
				case rows <- scanLine(gen, cfg, i):
				case <-gctx.Done():
					return gctx.Err()
				}
			}
		})
	}

	var collectErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		n := 0
		for r := range rows {
			for _, c := range r.Codes {
				rep.Checksum += int32(c)
				rep.Histogram[end.Biome(c)]++
				rep.Points++
			}
			n++
			if collectErr == nil && opts.Sink != nil {
				collectErr = opts.Sink.WriteRow(r)
			}
			if opts.Progress != nil {
				opts.Progress(n, total)
			}
		}
	}()

	err := g.Wait()
	close(rows)
	<-done
	rep.Classified = classified.Load()
	rep.Elapsed = time.Since(rep.StartedAt)
	if err != nil {
		return rep, err
	}
	return rep, collectErr
}

func scanLine(gen *end.Generator, cfg Config, i int) Row {
	if cfg.Mode == ModeColumn {
		x := cfg.Origin.X + int32(i/cfg.Depth)
		z := cfg.Origin.Z + int32(i%cfg.Depth)
		r := Row{X: x, Y: cfg.Origin.Y, Z: z, Axis: "y", Codes: make([]uint32, cfg.Height)}
		for j := range r.Codes {
			r.Codes[j] = gen.BiomeAt(x, cfg.Origin.Y+int32(j), z).Code()
		}
		return r
	}
	x := cfg.Origin.X + int32(i)
	r := Row{X: x, Y: 0, Z: cfg.Origin.Z, Axis: "z", Codes: make([]uint32, cfg.Depth)}
	for j := range r.Codes {
		r.Codes[j] = gen.BiomeAt2D(x, cfg.Origin.Z+int32(j)).Code()
	}
	return r
}
