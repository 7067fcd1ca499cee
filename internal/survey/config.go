package survey

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"endgen.ai/internal/sim/end"
)

// Seed decodes from YAML in signed or unsigned form.
type Seed uint64

func (s *Seed) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: seed must be a scalar", n.Line)
	}
	v, err := end.ParseSeed(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*s = Seed(v)
	return nil
}

type Mode string

const (
	// ModeGrid scans a Width x Depth window of BiomeAt2D.
	ModeGrid Mode = "grid"
	// ModeColumn scans Height blocks of y at every (x, z) of the window.
	ModeColumn Mode = "column"
)

type Point struct {
	X int32 `yaml:"x" json:"x"`
	Y int32 `yaml:"y" json:"y"`
	Z int32 `yaml:"z" json:"z"`
}

type Config struct {
	Seed    Seed  `yaml:"seed"`
	Mode    Mode  `yaml:"mode"`
	Origin  Point `yaml:"origin"`
	Width   int   `yaml:"width"`
	Depth   int   `yaml:"depth"`
	Height  int   `yaml:"height"`
	Workers int   `yaml:"workers"`

	DumpPath  string `yaml:"dump_path,omitempty"`
	IndexPath string `yaml:"index_path,omitempty"`
}

// Defaults reproduce the reference driver: a 100x100 window at
// (10000, 10000) for seed 1551515151585454.
func Defaults() Config {
	return Config{
		Seed:    1551515151585454,
		Mode:    ModeGrid,
		Origin:  Point{X: 10000, Y: 0, Z: 10000},
		Width:   100,
		Depth:   100,
		Height:  256,
		Workers: 1,
	}
}

func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("survey.yaml: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("survey.yaml: %w", err)
	}
	return cfg, nil
}

func (c *Config) Normalize() {
	if c == nil {
		return
	}
	c.Mode = Mode(strings.ToLower(strings.TrimSpace(string(c.Mode))))
	if c.Mode == "" {
		c.Mode = ModeGrid
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Mode == ModeColumn {
		if c.Width <= 0 {
			c.Width = 1
		}
		if c.Depth <= 0 {
			c.Depth = 1
		}
	}
	c.DumpPath = strings.TrimSpace(c.DumpPath)
	c.IndexPath = strings.TrimSpace(c.IndexPath)
}

func (c Config) Validate() error {
	switch c.Mode {
	case ModeGrid, ModeColumn:
	default:
		return fmt.Errorf("mode must be %q or %q, got %q", ModeGrid, ModeColumn, c.Mode)
	}
	if c.Width <= 0 || c.Depth <= 0 {
		return fmt.Errorf("width and depth must be > 0")
	}
	if c.Mode == ModeColumn && c.Height <= 0 {
		return fmt.Errorf("height must be > 0 in column mode")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0")
	}
	if int64(c.Origin.X)+int64(c.Width) > 1<<31 || int64(c.Origin.Z)+int64(c.Depth) > 1<<31 {
		return fmt.Errorf("window exceeds the int32 coordinate range")
	}
	if c.Mode == ModeColumn && int64(c.Origin.Y)+int64(c.Height) > 1<<31 {
		return fmt.Errorf("column exceeds the int32 coordinate range")
	}
	return nil
}

// Lines is the number of independent scan lines: one per x in grid mode,
// one per (x, z) in column mode.
func (c Config) Lines() int {
	if c.Mode == ModeColumn {
		return c.Width * c.Depth
	}
	return c.Width
}

func (c Config) Points() uint64 {
	if c.Mode == ModeColumn {
		return uint64(c.Width) * uint64(c.Depth) * uint64(c.Height)
	}
	return uint64(c.Width) * uint64(c.Depth)
}
