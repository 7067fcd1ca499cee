package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"endgen.ai/internal/persistence/indexdb"
	persistlog "endgen.ai/internal/persistence/log"
	"endgen.ai/internal/sim/end"
	"endgen.ai/internal/survey"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type cliFlags struct {
	config  string
	seed    string
	mode    string
	x, y, z int
	width   int
	depth   int
	height  int
	workers int
	dump    string
	db      string
	asJSON  bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("survey", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var f cliFlags
	fs.StringVar(&f.config, "config", "", "path to survey.yaml (optional)")
	fs.StringVar(&f.seed, "seed", "", "world seed, signed or unsigned decimal")
	fs.StringVar(&f.mode, "mode", "", "grid | column")
	fs.IntVar(&f.x, "x", 0, "origin x")
	fs.IntVar(&f.y, "y", 0, "origin y (column mode)")
	fs.IntVar(&f.z, "z", 0, "origin z")
	fs.IntVar(&f.width, "width", 0, "window size along x")
	fs.IntVar(&f.depth, "depth", 0, "window size along z")
	fs.IntVar(&f.height, "height", 0, "column height (column mode)")
	fs.IntVar(&f.workers, "workers", 0, "worker goroutines (default GOMAXPROCS)")
	fs.StringVar(&f.dump, "dump", "", "write rows to this .jsonl.zst file")
	fs.StringVar(&f.db, "db", "", "record the run in this sqlite index")
	fs.BoolVar(&f.asJSON, "json", false, "print the report as JSON")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger := log.New(stderr, "[survey] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := survey.Load(f.config)
	if err != nil {
		logger.Printf("load config: %v", err)
		return 2
	}
	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	if err := applyFlags(&cfg, f, set); err != nil {
		logger.Printf("%v", err)
		return 2
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		logger.Printf("config: %v", err)
		return 2
	}

	var opts survey.Options
	if cfg.DumpPath != "" {
		gw, err := persistlog.NewGridWriter(cfg.DumpPath)
		if err != nil {
			logger.Printf("open dump: %v", err)
			return 1
		}
		defer func() {
			if err := gw.Close(); err != nil {
				logger.Printf("close dump: %v", err)
			}
		}()
		opts.Sink = gw
	}
	if isTerminal(stderr) {
		opts.Progress = progressPrinter(stderr, cfg.Lines())
	}

	logger.Printf("seed=%d mode=%s origin=(%d,%d,%d) points=%s workers=%d",
		uint64(cfg.Seed), cfg.Mode, cfg.Origin.X, cfg.Origin.Y, cfg.Origin.Z,
		humanize.Comma(int64(cfg.Points())), cfg.Workers)

	rep, err := survey.Run(ctx, cfg, opts)
	if err != nil {
		logger.Printf("survey: %v", err)
		return 1
	}

	if cfg.IndexPath != "" {
		idx, err := indexdb.OpenSQLite(cfg.IndexPath)
		if err != nil {
			logger.Printf("open index: %v", err)
			return 1
		}
		idx.RecordRun(rep)
		if err := idx.Close(); err != nil {
			logger.Printf("close index: %v", err)
			return 1
		}
		if st := idx.Stats(); st.WrittenTotal != 1 {
			logger.Printf("index: run %s not recorded (errors=%d dropped=%d)", rep.RunID, st.ErrorTotal, st.DroppedTotal)
			return 1
		}
	}

	if f.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			logger.Printf("encode: %v", err)
			return 1
		}
		return 0
	}
	printReport(stdout, rep)
	return 0
}

func applyFlags(cfg *survey.Config, f cliFlags, set map[string]bool) error {
	if set["seed"] {
		v, err := end.ParseSeed(f.seed)
		if err != nil {
			return err
		}
		cfg.Seed = survey.Seed(v)
	}
	if set["mode"] {
		cfg.Mode = survey.Mode(f.mode)
	}
	coords := []struct {
		name string
		v    int
		dst  *int32
	}{
		{"x", f.x, &cfg.Origin.X},
		{"y", f.y, &cfg.Origin.Y},
		{"z", f.z, &cfg.Origin.Z},
	}
	for _, c := range coords {
		if !set[c.name] {
			continue
		}
		if int64(c.v) != int64(int32(c.v)) {
			return fmt.Errorf("-%s %d out of int32 range", c.name, c.v)
		}
		*c.dst = int32(c.v)
	}
	if set["width"] {
		cfg.Width = f.width
	}
	if set["depth"] {
		cfg.Depth = f.depth
	}
	if set["height"] {
		cfg.Height = f.height
	}
	if set["workers"] {
		cfg.Workers = f.workers
	}
	if set["dump"] {
		cfg.DumpPath = f.dump
	}
	if set["db"] {
		cfg.IndexPath = f.db
	}
	return nil
}

func printReport(w io.Writer, rep survey.Report) {
	fmt.Fprintf(w, "run       %s\n", rep.RunID)
	fmt.Fprintf(w, "checksum  %d\n", rep.Checksum)
	fmt.Fprintf(w, "points    %s\n", humanize.Comma(int64(rep.Points)))
	fmt.Fprintf(w, "chunks    %s classified\n", humanize.Comma(int64(rep.Classified)))
	fmt.Fprintf(w, "elapsed   %s", rep.Elapsed.Round(time.Millisecond))
	if secs := rep.Elapsed.Seconds(); secs > 0 {
		fmt.Fprintf(w, " (%s points/s)", humanize.Comma(int64(float64(rep.Points)/secs)))
	}
	fmt.Fprintln(w)

	biomes := make([]end.Biome, 0, len(rep.Histogram))
	for b := range rep.Histogram {
		biomes = append(biomes, b)
	}
	sort.Slice(biomes, func(i, j int) bool { return biomes[i] < biomes[j] })
	for _, b := range biomes {
		n := rep.Histogram[b]
		pct := 0.0
		if rep.Points > 0 {
			pct = 100 * float64(n) / float64(rep.Points)
		}
		fmt.Fprintf(w, "  %-16s %3d  %12s  %s%%\n", b, b.Code(), humanize.Comma(int64(n)), humanize.FtoaWithDigits(pct, 2))
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func progressPrinter(w io.Writer, total int) func(done, total int) {
	step := total / 100
	if step == 0 {
		step = 1
	}
	return func(done, total int) {
		if done%step != 0 && done != total {
			return
		}
		fmt.Fprintf(w, "\r%s / %s lines", humanize.Comma(int64(done)), humanize.Comma(int64(total)))
		if done == total {
			fmt.Fprintln(w, strings.Repeat(" ", 4))
		}
	}
}
