package replay

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/davemarvit/SGFPlayer-sub000/internal/config"
	"github.com/davemarvit/SGFPlayer-sub000/internal/core"
	"github.com/davemarvit/SGFPlayer-sub000/internal/placement"
	"github.com/davemarvit/SGFPlayer-sub000/internal/track"
)

func newTestOrchestrator(t *testing.T, v placement.Variant) *Orchestrator {
	t.Helper()
	o, err := New("game-1", config.DefaultSelection().WithVariant(v))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	o.SetContainer(core.Black, 100, r2.Vec{X: 150, Y: 50})
	o.SetContainer(core.White, 100, r2.Vec{X: 400, Y: 50})
	return o
}

func equalTokens(a, b []core.Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSeekSequenceRestoresFromCache(t *testing.T) {
	for _, v := range placement.Variants {
		t.Run(v.String(), func(t *testing.T) {
			o := newTestOrchestrator(t, v)
			seek := func(move, count int) []core.Token {
				return o.Seek(move, Targets{Black: count}).Bowl(core.Black).Tokens
			}

			if got := seek(0, 0); len(got) != 0 {
				t.Fatalf("move 0: expected empty bowl, got %d tokens", len(got))
			}
			if o.Stats().RNGCalls != 0 {
				t.Fatalf("empty bowls should not draw, got %d", o.Stats().RNGCalls)
			}

			atMove1 := seek(1, 1)
			if len(atMove1) != 1 {
				t.Fatalf("move 1: expected 1 token, got %d", len(atMove1))
			}
			afterFirst := o.Stats().RNGCalls

			if got := seek(2, 1); len(got) != 1 {
				t.Fatalf("move 2: expected 1 token, got %d", len(got))
			}

			// Move 1 is cached: its count is ignored and nothing is drawn.
			before := o.Stats()
			restored := seek(1, 2)
			if !equalTokens(restored, atMove1) {
				t.Errorf("move 1 not restored exactly: %v vs %v", restored, atMove1)
			}
			after := o.Stats()
			if after.RNGCalls != before.RNGCalls {
				t.Errorf("cache hit drew %d random numbers", after.RNGCalls-before.RNGCalls)
			}
			if after.CacheHits <= before.CacheHits {
				t.Error("seek back to move 1 should be a cache hit")
			}

			before = o.Stats()
			if got := seek(2, 1); len(got) != 1 {
				t.Fatalf("move 2 again: expected 1 token, got %d", len(got))
			}
			if o.Stats().RNGCalls != before.RNGCalls {
				t.Error("replaying move 2 should not draw")
			}

			if got := seek(3, 3); len(got) != 3 {
				t.Fatalf("move 3: expected 3 tokens, got %d", len(got))
			}
			if v != placement.Spiral && o.Stats().RNGCalls <= afterFirst {
				t.Error("growing to 3 tokens should draw fresh randomness")
			}
		})
	}
}

func TestSeekDeterministicAcrossOrchestrators(t *testing.T) {
	tr := track.Demo(3)
	a := newTestOrchestrator(t, placement.GroupDrop)
	b := newTestOrchestrator(t, placement.GroupDrop)

	for move := 0; move < 60; move += 3 {
		fa := a.Seek(move, TargetsAt(tr, move))
		fb := b.Seek(move, TargetsAt(tr, move))
		for _, k := range core.Kinds {
			if !equalTokens(fa.Bowl(k).Tokens, fb.Bowl(k).Tokens) {
				t.Fatalf("move %d %s: orchestrators diverged", move, k)
			}
		}
	}
}

func TestFingerprintChangesLayout(t *testing.T) {
	a := newTestOrchestrator(t, placement.GroupDrop)
	b := newTestOrchestrator(t, placement.GroupDrop)
	b.LoadGame("game-2")

	ta := a.Seek(4, Targets{Black: 6}).Bowl(core.Black).Tokens
	tb := b.Seek(4, Targets{Black: 6}).Bowl(core.Black).Tokens
	if equalTokens(ta, tb) {
		t.Error("different games should not share layouts")
	}
}

func TestBoundaryWhileReplaying(t *testing.T) {
	tr := track.Demo(11)
	for _, v := range placement.Variants {
		o := newTestOrchestrator(t, v)
		for move := 0; move < tr.MoveCount(); move += 7 {
			f := o.Seek(move, TargetsAt(tr, move))
			for _, k := range core.Kinds {
				bowl := f.Bowl(k)
				if len(bowl.Tokens) != tr.CapturedCount(move, k) && !bowl.Cached {
					t.Fatalf("%s move %d %s: %d tokens, expected %d", v, move, k, len(bowl.Tokens), tr.CapturedCount(move, k))
				}
				for _, tok := range bowl.Tokens {
					if r2.Norm(tok.Pos) > bowl.Container.Radius+1e-9 {
						t.Fatalf("%s move %d: token outside bowl at %.4f", v, move, r2.Norm(tok.Pos))
					}
				}
			}
		}
	}
}

func TestResizeRescalesWithoutRecompute(t *testing.T) {
	o := newTestOrchestrator(t, placement.Energy)
	small := o.Seek(5, Targets{Black: 8, White: 3}).Bowl(core.Black).Tokens
	computes := o.Stats().Computes

	o.SetContainer(core.Black, 250, r2.Vec{})
	large := o.Layout(core.Black)
	if o.Stats().Computes != computes {
		t.Error("resize should not recompute")
	}
	for i := range small {
		want := r2.Scale(2.5, small[i].Pos)
		if r2.Norm(r2.Sub(large[i].Pos, want)) > 1e-9 {
			t.Errorf("token %d at %v after resize, expected %v", i, large[i].Pos, want)
		}
	}

	// Cached moves come back at the new size too.
	o.Seek(6, Targets{Black: 9})
	back := o.Seek(5, Targets{Black: 8}).Bowl(core.Black)
	if !back.Cached {
		t.Fatal("move 5 should be cached")
	}
	for i := range large {
		if r2.Norm(r2.Sub(back.Tokens[i].Pos, large[i].Pos)) > 1e-9 {
			t.Errorf("cached token %d not rescaled: %v vs %v", i, back.Tokens[i].Pos, large[i].Pos)
		}
	}

	o.SetContainer(core.Black, -1, r2.Vec{})
	if o.Container(core.Black).Radius != 250 {
		t.Error("invalid radius should be ignored")
	}
}

func TestSetSelectionInvalidates(t *testing.T) {
	o := newTestOrchestrator(t, placement.Spiral)
	o.Seek(1, Targets{Black: 2, White: 1})
	spiral := o.Seek(2, Targets{Black: 4, White: 1}).Bowl(core.Black).Tokens

	same, err := o.SetSelection(o.Selection())
	if err != nil {
		t.Fatal(err)
	}
	if o.Stats().Invalidations != 0 || !equalTokens(same.Bowl(core.Black).Tokens, spiral) {
		t.Error("an identical selection should change nothing")
	}

	frame, err := o.SetSelection(o.Selection().WithVariant(placement.Grid))
	if err != nil {
		t.Fatal(err)
	}
	s := o.Stats()
	if s.Invalidations != 1 || s.Cache.Version == 0 {
		t.Errorf("selection change should invalidate, stats %+v", s)
	}
	if frame.Move != 2 || len(frame.Bowl(core.Black).Tokens) != 4 {
		t.Errorf("current move should be recomputed eagerly, got move %d with %d tokens", frame.Move, len(frame.Bowl(core.Black).Tokens))
	}
	if equalTokens(frame.Bowl(core.Black).Tokens, spiral) {
		t.Error("grid layout should differ from the spiral one")
	}

	computes := o.Stats().Computes
	if o.Seek(1, Targets{Black: 2, White: 1}).Bowl(core.Black).Cached {
		t.Error("snapshots from the old selection must not survive")
	}
	if o.Stats().Computes == computes {
		t.Error("seeking an old move after invalidation should recompute")
	}

	if _, err := o.SetSelection(o.Selection().WithVariant(placement.Variant(99))); !errors.Is(err, placement.ErrUnknownVariant) {
		t.Errorf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestLoadGameClears(t *testing.T) {
	o := newTestOrchestrator(t, placement.GroupDrop)
	o.Seek(3, Targets{Black: 5, White: 5})

	o.LoadGame("other")
	if len(o.Layout(core.Black)) != 0 || len(o.Layout(core.White)) != 0 {
		t.Error("live layouts should be dropped")
	}
	if s := o.Stats(); s.Seeks != 0 || s.Cache.Entries != 0 {
		t.Errorf("stats should reset, got %+v", s)
	}
	if _, shown := o.Move(); shown {
		t.Error("no move should be shown after loading a game")
	}
	if o.Container(core.White).Radius != 100 {
		t.Error("bowl geometry should survive a game change")
	}
}

func TestNewRejectsUnknownVariant(t *testing.T) {
	sel := config.DefaultSelection().WithVariant(placement.Variant(-1))
	if _, err := New("x", sel); !errors.Is(err, config.ErrUnknownVariant) {
		t.Errorf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestUnknownKindIgnored(t *testing.T) {
	o := newTestOrchestrator(t, placement.Grid)
	frame := o.Seek(0, Targets{Black: 3, White: 2})

	for _, k := range []core.Kind{core.Kind(-1), core.Kind(2), core.Kind(99)} {
		o.SetContainer(k, 40, r2.Vec{X: 1})
		if got := o.Layout(k); got == nil || len(got) != 0 {
			t.Errorf("Layout(%d) = %v, expected an empty slice", k, got)
		}
		if got := o.Container(k); got != (core.Container{}) {
			t.Errorf("Container(%d) = %+v, expected the zero container", k, got)
		}
		if got := frame.Bowl(k); len(got.Tokens) != 0 {
			t.Errorf("Frame.Bowl(%d) has %d tokens", k, len(got.Tokens))
		}
	}

	for _, k := range core.Kinds {
		if c := o.Container(k); c.Radius != 100 {
			t.Errorf("%s bowl radius changed to %v", k, c.Radius)
		}
		if !equalTokens(o.Layout(k), frame.Bowl(k).Tokens) {
			t.Errorf("%s layout changed after ignored calls", k)
		}
	}
}
