package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	_ "modernc.org/sqlite"

	"endgen.ai/internal/persistence/indexdb"
	"endgen.ai/internal/sim/end"
)

func runsCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dbPath := fs.String("db", "", "sqlite index path (required)")
	seedStr := fs.String("seed", "", "only runs of this seed (optional)")
	limit := fs.Int("limit", 20, "result limit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if strings.TrimSpace(*dbPath) == "" {
		fmt.Fprintln(stderr, "missing -db")
		return 2
	}

	db, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		fmt.Fprintln(stderr, "open:", err)
		return 1
	}
	defer db.Close()

	q := `SELECT id,seed,mode,origin_x,origin_z,width,depth,points,checksum,elapsed_ns,started_at FROM runs`
	var qargs []any
	if s := strings.TrimSpace(*seedStr); s != "" {
		seed, err := end.ParseSeed(s)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		q += ` WHERE seed=?`
		qargs = append(qargs, int64(seed))
	}
	q += ` ORDER BY started_at DESC LIMIT ?`
	qargs = append(qargs, *limit)

	rows, err := db.Query(q, qargs...)
	if err != nil {
		fmt.Fprintln(stderr, "query:", err)
		return 1
	}
	defer rows.Close()
	n := 0
	for rows.Next() {
		var (
			id, mode, started      string
			seed, points, elapsed  int64
			ox, oz, w, d, checksum int64
		)
		if err := rows.Scan(&id, &seed, &mode, &ox, &oz, &w, &d, &points, &checksum, &elapsed, &started); err != nil {
			fmt.Fprintln(stderr, "scan:", err)
			return 1
		}
		fmt.Fprintf(stdout, "%s  seed=%d %s (%d,%d) %dx%d points=%s checksum=%d elapsed=%s started=%s\n",
			id, uint64(seed), mode, ox, oz, w, d, humanize.Comma(points), checksum,
			time.Duration(elapsed).Round(time.Millisecond), started)
		n++
	}
	if err := rows.Err(); err != nil {
		fmt.Fprintln(stderr, "rows:", err)
		return 1
	}
	if n == 0 {
		fmt.Fprintln(stdout, "no runs")
	}
	return 0
}

func runCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dbPath := fs.String("db", "", "sqlite index path (required)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if strings.TrimSpace(*dbPath) == "" || fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: admin run -db index.db <run-id>")
		return 2
	}

	idx, err := indexdb.OpenSQLite(*dbPath)
	if err != nil {
		fmt.Fprintln(stderr, "open:", err)
		return 1
	}
	defer idx.Close()
	rec, err := idx.Run(context.Background(), fs.Arg(0))
	if errors.Is(err, indexdb.ErrNotFound) {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err != nil {
		fmt.Fprintln(stderr, "lookup:", err)
		return 1
	}

	fmt.Fprintf(stdout, "run       %s\n", rec.ID)
	fmt.Fprintf(stdout, "seed      %d\n", rec.Seed)
	fmt.Fprintf(stdout, "window    %s origin=(%d,%d,%d) %dx%d", rec.Mode, rec.Origin.X, rec.Origin.Y, rec.Origin.Z, rec.Width, rec.Depth)
	if rec.Height > 0 {
		fmt.Fprintf(stdout, "x%d", rec.Height)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "checksum  %d\n", rec.Checksum)
	fmt.Fprintf(stdout, "points    %s\n", humanize.Comma(int64(rec.Points)))
	fmt.Fprintf(stdout, "recorded  %s\n", humanize.Time(rec.RecordedAt))

	biomes := make([]end.Biome, 0, len(rec.Histogram))
	for b := range rec.Histogram {
		biomes = append(biomes, b)
	}
	sort.Slice(biomes, func(i, j int) bool { return biomes[i] < biomes[j] })
	for _, b := range biomes {
		fmt.Fprintf(stdout, "  %-16s %s\n", b, humanize.Comma(int64(rec.Histogram[b])))
	}
	return 0
}
