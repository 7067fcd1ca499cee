package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"endgen.ai/internal/persistence/indexdb"
	persistlog "endgen.ai/internal/persistence/log"
	"endgen.ai/internal/sim/end"
	"endgen.ai/internal/survey"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run recomputes every row of a grid dump with a fresh generator and fails
// on the first code that differs.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		dumpPath = fs.String("dump", "", "path to .jsonl.zst grid dump")
		seedStr  = fs.String("seed", "", "seed the dump was generated with")
		dbPath   = fs.String("db", "", "sqlite index to look the seed up in (with -run)")
		runID    = fs.String("run", "", "run id in the index")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *dumpPath == "" {
		fmt.Fprintln(stderr, "missing -dump")
		return 2
	}

	var seed uint64
	switch {
	case *seedStr != "":
		v, err := end.ParseSeed(*seedStr)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		seed = v
	case *dbPath != "" && *runID != "":
		idx, err := indexdb.OpenSQLite(*dbPath)
		if err != nil {
			fmt.Fprintln(stderr, "open index:", err)
			return 1
		}
		rec, err := idx.Run(context.Background(), *runID)
		_ = idx.Close()
		if err != nil {
			fmt.Fprintln(stderr, "lookup run:", err)
			return 1
		}
		seed = rec.Seed
	default:
		fmt.Fprintln(stderr, "need -seed or -db with -run")
		return 2
	}

	gen := end.New(seed)
	var (
		rows   int
		points uint64
		sum    int32
	)
	err := persistlog.ReadGrid(*dumpPath, func(r survey.Row) error {
		for j, got := range r.Codes {
			want, at := expected(gen, r, int32(j))
			if got != want.Code() {
				return fmt.Errorf("row %d %s: got %d want %d (%s)", rows, at, got, want.Code(), want)
			}
			sum += int32(got)
		}
		points += uint64(len(r.Codes))
		rows++
		return nil
	})
	if err != nil {
		fmt.Fprintln(stderr, "replay:", err)
		return 1
	}
	fmt.Fprintf(stdout, "replay ok: seed=%d rows=%d points=%d checksum=%d\n", seed, rows, points, sum)
	return 0
}

func expected(gen *end.Generator, r survey.Row, j int32) (end.Biome, string) {
	switch r.Axis {
	case "y":
		return gen.BiomeAt(r.X, r.Y+j, r.Z), fmt.Sprintf("(%d,%d,%d)", r.X, r.Y+j, r.Z)
	default:
		return gen.BiomeAt2D(r.X, r.Z+j), fmt.Sprintf("(%d,%d)", r.X, r.Z+j)
	}
}
