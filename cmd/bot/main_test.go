package main

import (
	"bytes"
	"log"
	"net/http/httptest"
	"strings"
	"testing"

	"endgen.ai/internal/bridge"
	"endgen.ai/internal/transport/ws"
)

func startServer(t *testing.T, reg *bridge.Registry) string {
	t.Helper()
	hs := httptest.NewServer(ws.NewServer(reg, ws.Config{}, nil).Handler())
	t.Cleanup(hs.Close)
	return "ws" + strings.TrimPrefix(hs.URL, "http")
}

func TestProbe_VerifiesAgainstLocalGenerator(t *testing.T) {
	reg := bridge.NewRegistry(bridge.Config{})
	url := startServer(t, reg)

	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	cfg := probeConfig{URL: url, Seed: 1551515151585454, Samples: 50, Radius: 5000, Verify: true, RandSrc: 7}
	if err := probe(cfg, logger); err != nil {
		t.Fatalf("probe: %v", err)
	}
	if !strings.Contains(buf.String(), "done samples=50") {
		t.Fatalf("log=%s", buf.String())
	}
	if reg.Len() != 0 {
		t.Fatalf("handle leaked: %d", reg.Len())
	}
}

func TestProbe_ServerLimit(t *testing.T) {
	reg := bridge.NewRegistry(bridge.Config{MaxHandles: 1})
	if _, err := reg.Create(1); err != nil {
		t.Fatalf("Create: %v", err)
	}
	url := startServer(t, reg)
	err := probe(probeConfig{URL: url, Seed: 1, Samples: 1, Radius: 10, RandSrc: 1}, log.New(&bytes.Buffer{}, "", 0))
	if err == nil || !strings.Contains(err.Error(), "E_LIMIT") {
		t.Fatalf("err=%v", err)
	}
}

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"-samples", "0"}, &out); code != 2 {
		t.Fatalf("exit=%d", code)
	}
	if code := run([]string{"-seed", "x"}, &out); code != 2 {
		t.Fatalf("exit=%d", code)
	}
}
