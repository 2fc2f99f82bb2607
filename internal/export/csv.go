// Package export writes computed bowl layouts as CSV.
package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/davemarvit/SGFPlayer-sub000/internal/replay"
)

// Row is one token of one frame. X and Y are absolute (bowl center added);
// NX and NY are relative to the center and divided by the bowl radius.
type Row struct {
	Move  int     `csv:"move"`
	Kind  string  `csv:"kind"`
	Index int     `csv:"index"`
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
	NX    float64 `csv:"nx"`
	NY    float64 `csv:"ny"`
}

// Rows flattens a frame into CSV rows, black bowl first.
func Rows(f replay.Frame) []Row {
	var rows []Row
	for _, b := range f.Bowls {
		r := b.Container.Radius
		for _, tok := range b.Tokens {
			rows = append(rows, Row{
				Move:  f.Move,
				Kind:  tok.Kind.String(),
				Index: tok.ID,
				X:     b.Container.Center.X + tok.Pos.X,
				Y:     b.Container.Center.Y + tok.Pos.Y,
				NX:    tok.Pos.X / r,
				NY:    tok.Pos.Y / r,
			})
		}
	}
	return rows
}

// Writer streams rows to w, writing the header once.
type Writer struct {
	out           io.Writer
	headerWritten bool
}

// NewWriter returns a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: w}
}

// WriteFrame writes every token of f.
func (w *Writer) WriteFrame(f replay.Frame) error {
	return w.WriteRows(Rows(f))
}

// WriteRows writes rows. Empty input writes nothing.
func (w *Writer) WriteRows(rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	if !w.headerWritten {
		if err := gocsv.Marshal(rows, w.out); err != nil {
			return fmt.Errorf("export: writing rows: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(rows, w.out); err != nil {
		return fmt.Errorf("export: writing rows: %w", err)
	}
	return nil
}

// ReadRows parses rows previously written by a Writer.
func ReadRows(r io.Reader) ([]Row, error) {
	var rows []Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("export: reading rows: %w", err)
	}
	return rows, nil
}
