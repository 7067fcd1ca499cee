package log

import (
	"fmt"

	"endgen.ai/internal/encoding"
	"endgen.ai/internal/survey"
)

// gridLine is the on-disk form of a survey row: codes are run-length packed.
type gridLine struct {
	X    int32  `json:"x"`
	Y    int32  `json:"y"`
	Z    int32  `json:"z"`
	Axis string `json:"axis"`
	N    int    `json:"n"`
	Runs string `json:"runs"`
}

// GridWriter dumps survey rows as compressed JSONL. It satisfies
// survey.RowSink.
type GridWriter struct{ w *JSONLZstdWriter }

func NewGridWriter(path string) (*GridWriter, error) {
	w, err := NewJSONLZstdWriter(path)
	if err != nil {
		return nil, err
	}
	return &GridWriter{w: w}, nil
}

func (g *GridWriter) WriteRow(r survey.Row) error {
	return g.w.Write(gridLine{
		X:    r.X,
		Y:    r.Y,
		Z:    r.Z,
		Axis: r.Axis,
		N:    len(r.Codes),
		Runs: encoding.EncodeRuns(r.Codes),
	})
}

func (g *GridWriter) Rows() int    { return g.w.Lines() }
func (g *GridWriter) Path() string { return g.w.Path() }
func (g *GridWriter) Close() error { return g.w.Close() }

// ReadGrid streams the rows of a dump written by GridWriter.
func ReadGrid(path string, fn func(survey.Row) error) error {
	line := 0
	return ReadJSONLZstd(path, func(l gridLine) error {
		line++
		codes, err := encoding.DecodeRuns(l.Runs)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if len(codes) != l.N {
			return fmt.Errorf("line %d: %d codes, header says %d", line, len(codes), l.N)
		}
		return fn(survey.Row{X: l.X, Y: l.Y, Z: l.Z, Axis: l.Axis, Codes: codes})
	})
}
