package tuning

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	tu, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tu != Defaults() {
		t.Fatalf("got %+v", tu)
	}
	if tu.ShutdownTimeout() != 5*time.Second {
		t.Fatalf("timeout=%s", tu.ShutdownTimeout())
	}
}

func TestLoad_File(t *testing.T) {
	p := filepath.Join(t.TempDir(), "server.yaml")
	body := "addr: \"127.0.0.1:9000\"\nmax_handles: 10\nmax_handles_per_conn: 2\nstatus_enabled: false\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tu, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tu.Addr != "127.0.0.1:9000" || tu.MaxHandles != 10 || tu.MaxHandlesPerConn != 2 || tu.StatusEnabled {
		t.Fatalf("got %+v", tu)
	}
	if tu.ReadLimitBytes != 4096 {
		t.Fatalf("default read limit lost: %d", tu.ReadLimitBytes)
	}
}

func TestLoad_Invalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(p, []byte("max_handles: 4\nmax_handles_per_conn: 5\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(p)
	if err == nil || !strings.Contains(err.Error(), "max_handles_per_conn") {
		t.Fatalf("err=%v", err)
	}
}
