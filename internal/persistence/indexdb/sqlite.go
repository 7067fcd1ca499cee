package indexdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"endgen.ai/internal/sim/end"
	"endgen.ai/internal/survey"
)

var ErrNotFound = errors.New("run not found")

// SQLiteIndex is a queryable record of survey runs. Writes go through a
// single writer goroutine; reads use the same connection pool.
type SQLiteIndex struct {
	db *sql.DB

	ch   chan survey.Report
	wg   sync.WaitGroup
	once sync.Once

	closed    atomic.Bool
	dropped   atomic.Uint64
	written   atomic.Uint64
	writeErrs atomic.Uint64
}

type Stats struct {
	QueueDepth    int
	QueueCapacity int
	WrittenTotal  uint64
	DroppedTotal  uint64
	ErrorTotal    uint64
}

// RunRecord is a stored survey report.
type RunRecord struct {
	ID         string
	Seed       uint64
	Mode       survey.Mode
	Origin     survey.Point
	Width      int
	Depth      int
	Height     int
	Workers    int
	Points     uint64
	Checksum   int32
	Classified uint64
	Histogram  map[end.Biome]uint64
	Elapsed    time.Duration
	StartedAt  time.Time
	RecordedAt time.Time
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		ch: make(chan survey.Report, 64),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			mode TEXT NOT NULL,
			origin_x INTEGER NOT NULL,
			origin_y INTEGER NOT NULL,
			origin_z INTEGER NOT NULL,
			width INTEGER NOT NULL,
			depth INTEGER NOT NULL,
			height INTEGER NOT NULL,
			workers INTEGER NOT NULL,
			points INTEGER NOT NULL,
			checksum INTEGER NOT NULL,
			classified INTEGER NOT NULL,
			histogram_json TEXT NOT NULL,
			elapsed_ns INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed, started_at);`,
		`CREATE TABLE IF NOT EXISTS run_biomes (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			biome INTEGER NOT NULL,
			name TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (run_id, biome)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

// RecordRun queues a report for insertion. It never blocks; a full queue
// drops the report and counts it in Stats.
func (s *SQLiteIndex) RecordRun(rep survey.Report) {
	if s == nil || s.closed.Load() {
		return
	}
	select {
	case s.ch <- rep:
	default:
		s.dropped.Add(1)
	}
}

func (s *SQLiteIndex) Stats() Stats {
	if s == nil {
		return Stats{}
	}
	return Stats{
		QueueDepth:    len(s.ch),
		QueueCapacity: cap(s.ch),
		WrittenTotal:  s.written.Load(),
		DroppedTotal:  s.dropped.Load(),
		ErrorTotal:    s.writeErrs.Load(),
	}
}

func (s *SQLiteIndex) loop() {
	ctx := context.Background()
	for rep := range s.ch {
		if err := s.insertRun(ctx, rep); err != nil {
			s.writeErrs.Add(1)
			continue
		}
		s.written.Add(1)
	}
}

func (s *SQLiteIndex) insertRun(ctx context.Context, rep survey.Report) error {
	hist, err := json.Marshal(rep.Histogram)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs(id,seed,mode,origin_x,origin_y,origin_z,width,depth,height,workers,points,checksum,classified,histogram_json,elapsed_ns,started_at,recorded_at)
		 VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rep.RunID,
		int64(rep.Seed),
		string(rep.Mode),
		rep.Origin.X, rep.Origin.Y, rep.Origin.Z,
		rep.Width, rep.Depth, rep.Height,
		rep.Workers,
		int64(rep.Points),
		rep.Checksum,
		int64(rep.Classified),
		string(hist),
		int64(rep.Elapsed),
		rep.StartedAt.UTC().Format(time.RFC3339Nano),
		time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM run_biomes WHERE run_id=?`, rep.RunID); err != nil {
		return err
	}
	biomes := make([]end.Biome, 0, len(rep.Histogram))
	for b := range rep.Histogram {
		biomes = append(biomes, b)
	}
	sort.Slice(biomes, func(i, j int) bool { return biomes[i] < biomes[j] })
	for _, b := range biomes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_biomes(run_id,biome,name,count) VALUES(?,?,?,?)`,
			rep.RunID, int64(b.Code()), b.String(), int64(rep.Histogram[b]),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

const runColumns = `id,seed,mode,origin_x,origin_y,origin_z,width,depth,height,workers,points,checksum,classified,histogram_json,elapsed_ns,started_at,recorded_at`

func (s *SQLiteIndex) Run(ctx context.Context, id string) (RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id=?`, id)
	rec, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return rec, err
}

// RunsForSeed lists runs of one seed, oldest first.
func (s *SQLiteIndex) RunsForSeed(ctx context.Context, seed uint64) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs WHERE seed=? ORDER BY started_at, id`, int64(seed))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(r rowScanner) (RunRecord, error) {
	var (
		rec                   RunRecord
		seed, points, classif int64
		elapsed               int64
		mode, hist            string
		started, recorded     string
	)
	if err := r.Scan(
		&rec.ID, &seed, &mode,
		&rec.Origin.X, &rec.Origin.Y, &rec.Origin.Z,
		&rec.Width, &rec.Depth, &rec.Height, &rec.Workers,
		&points, &rec.Checksum, &classif,
		&hist, &elapsed, &started, &recorded,
	); err != nil {
		return RunRecord{}, err
	}
	rec.Seed = uint64(seed)
	rec.Mode = survey.Mode(mode)
	rec.Points = uint64(points)
	rec.Classified = uint64(classif)
	rec.Elapsed = time.Duration(elapsed)
	if err := json.Unmarshal([]byte(hist), &rec.Histogram); err != nil {
		return RunRecord{}, fmt.Errorf("run %s histogram: %w", rec.ID, err)
	}
	var err error
	if rec.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return RunRecord{}, err
	}
	if rec.RecordedAt, err = time.Parse(time.RFC3339Nano, recorded); err != nil {
		return RunRecord{}, err
	}
	return rec, nil
}
