package main

import (
	"io"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/davemarvit/SGFPlayer-sub000/internal/config"
	"github.com/davemarvit/SGFPlayer-sub000/internal/placement"
	"github.com/davemarvit/SGFPlayer-sub000/internal/track"
)

func TestWalkOrder(t *testing.T) {
	tests := []struct {
		n     int
		scrub bool
		want  []int
	}{
		{0, false, []int{}},
		{3, false, []int{0, 1, 2}},
		{3, true, []int{0, 1, 2, 1, 0}},
		{1, true, []int{0}},
	}
	for _, tt := range tests {
		if got := walkOrder(tt.n, tt.scrub); !slices.Equal(got, tt.want) {
			t.Errorf("walkOrder(%d, %v) = %v, expected %v", tt.n, tt.scrub, got, tt.want)
		}
	}
}

func TestBenchVariantRows(t *testing.T) {
	logger = newLogger(io.Discard, log.InfoLevel)
	flagBenchRadius = 50

	tr := track.FromCounts("bench", []int{0, 2, 2, 5}, []int{0, 0, 1, 1})
	sel := config.DefaultSelection().WithVariant(placement.Grid)

	runs, err := benchVariant(tr, sel, "run-1")
	if err != nil {
		t.Fatalf("benchVariant: %v", err)
	}
	if len(runs) != 2*tr.MoveCount() {
		t.Fatalf("expected one row per bowl per move, got %d", len(runs))
	}
	for _, r := range runs {
		if r.RunID != "run-1" || r.Variant != "grid" || r.Track != tr.Fingerprint {
			t.Errorf("unexpected row identity %+v", r)
		}
		if r.Selection != sel.Fingerprint() {
			t.Errorf("row selection %q, expected %q", r.Selection, sel.Fingerprint())
		}
	}
	last := runs[len(runs)-2]
	if last.Move != 3 || last.Kind != "black" || last.Tokens != 5 {
		t.Errorf("last black row = %+v", last)
	}
}

func TestTrackLabel(t *testing.T) {
	named := track.FromCounts("named", []int{0}, []int{0})
	if trackLabel(named) != "named" {
		t.Error("label should prefer the name")
	}
	named.Name = ""
	if trackLabel(named) != named.Fingerprint {
		t.Error("unnamed tracks fall back to the fingerprint")
	}
}
