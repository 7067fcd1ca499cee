package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"endgen.ai/internal/bridge"
	"endgen.ai/internal/persistence/indexdb"
	"endgen.ai/internal/survey"
	"endgen.ai/internal/transport/observer"
)

func seedIndex(t *testing.T) (string, survey.Report) {
	t.Helper()
	cfg := survey.Defaults()
	cfg.Width, cfg.Depth = 5, 5
	rep, err := survey.Run(context.Background(), cfg, survey.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	path := filepath.Join(t.TempDir(), "index.db")
	idx, err := indexdb.OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	idx.RecordRun(rep)
	if err := idx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path, rep
}

func TestAdmin_Runs(t *testing.T) {
	db, rep := seedIndex(t)
	var out, errOut bytes.Buffer
	if code := run([]string{"runs", "-db", db}, &out, &errOut); code != 0 {
		t.Fatalf("exit=%d stderr=%s", code, errOut.String())
	}
	if !strings.Contains(out.String(), rep.RunID) || !strings.Contains(out.String(), "points=25") {
		t.Fatalf("stdout=%s", out.String())
	}

	out.Reset()
	if code := run([]string{"runs", "-db", db, "-seed", "42"}, &out, &errOut); code != 0 {
		t.Fatalf("exit=%d", code)
	}
	if strings.TrimSpace(out.String()) != "no runs" {
		t.Fatalf("stdout=%s", out.String())
	}
}

func TestAdmin_Run(t *testing.T) {
	db, rep := seedIndex(t)
	var out, errOut bytes.Buffer
	if code := run([]string{"run", "-db", db, rep.RunID}, &out, &errOut); code != 0 {
		t.Fatalf("exit=%d stderr=%s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "seed      1551515151585454\n") {
		t.Fatalf("stdout=%s", out.String())
	}
	if code := run([]string{"run", "-db", db, "nope"}, &out, &errOut); code != 1 {
		t.Fatalf("missing run exit=%d", code)
	}
}

func TestAdmin_Status(t *testing.T) {
	reg := bridge.NewRegistry(bridge.Config{MaxHandles: 3})
	hs := httptest.NewServer(observer.NewServer(reg, nil, nil).StatusHandler())
	defer hs.Close()

	var out, errOut bytes.Buffer
	// The bare handler answers on every path, including /admin/v1/status.
	if code := run([]string{"status", "-url", hs.URL}, &out, &errOut); code != 0 {
		t.Fatalf("exit=%d stderr=%s", code, errOut.String())
	}
	if !strings.Contains(out.String(), `"max_handles":3`) {
		t.Fatalf("stdout=%s", out.String())
	}
}

func TestAdmin_Usage(t *testing.T) {
	var out, errOut bytes.Buffer
	for _, args := range [][]string{nil, {"bogus"}, {"runs"}, {"run", "-db", "x.db"}} {
		if code := run(args, &out, &errOut); code != 2 {
			t.Fatalf("%v: exit=%d", args, code)
		}
	}
}
