// Package tuning holds the query server's YAML knobs.
package tuning

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	Addr string `yaml:"addr"`

	MaxHandles        int   `yaml:"max_handles"`
	MaxHandlesPerConn int   `yaml:"max_handles_per_conn"`
	ReadLimitBytes    int64 `yaml:"read_limit_bytes"`

	StatusEnabled     bool `yaml:"status_enabled"`
	ShutdownTimeoutMs int  `yaml:"shutdown_timeout_ms"`
}

func Defaults() Tuning {
	return Tuning{
		Addr:              ":8080",
		MaxHandles:        4096,
		MaxHandlesPerConn: 64,
		ReadLimitBytes:    4096,
		StatusEnabled:     true,
		ShutdownTimeoutMs: 5000,
	}
}

func Load(path string) (Tuning, error) {
	t := Defaults()
	if strings.TrimSpace(path) == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("server.yaml: %w", err)
	}
	t.Normalize()
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("server.yaml: %w", err)
	}
	return t, nil
}

func (t *Tuning) Normalize() {
	t.Addr = strings.TrimSpace(t.Addr)
	if t.Addr == "" {
		t.Addr = ":8080"
	}
	if t.ShutdownTimeoutMs <= 0 {
		t.ShutdownTimeoutMs = 5000
	}
}

func (t Tuning) Validate() error {
	if t.MaxHandles <= 0 {
		return fmt.Errorf("max_handles must be > 0")
	}
	if t.MaxHandlesPerConn <= 0 || t.MaxHandlesPerConn > t.MaxHandles {
		return fmt.Errorf("max_handles_per_conn must be in 1..max_handles (%d)", t.MaxHandles)
	}
	if t.ReadLimitBytes < 256 {
		return fmt.Errorf("read_limit_bytes must be >= 256")
	}
	return nil
}

func (t Tuning) ShutdownTimeout() time.Duration {
	return time.Duration(t.ShutdownTimeoutMs) * time.Millisecond
}
