package physics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/davemarvit/SGFPlayer-sub000/internal/core"
)

func TestRelaxSeparatesCoincidentTokens(t *testing.T) {
	pos := []r2.Vec{{}, {}}
	res := Relax(pos, 100, 10, 200, DefaultParams(), Bias{})

	d := r2.Norm(r2.Sub(res.Positions[0], res.Positions[1]))
	if d < 18 {
		t.Errorf("coincident tokens should be pushed roughly one spacing apart, got %.2f", d)
	}
	if !res.Converged {
		t.Errorf("two tokens should converge within budget, ran %d iterations", res.Iterations)
	}
}

func TestRelaxDoesNotMutateInput(t *testing.T) {
	pos := []r2.Vec{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}}
	orig := append([]r2.Vec(nil), pos...)

	Relax(pos, 50, 5, 50, DefaultParams(), Bias{})

	for i := range pos {
		if pos[i] != orig[i] {
			t.Fatalf("input position %d changed from %v to %v", i, orig[i], pos[i])
		}
	}
}

func TestRelaxDeterminism(t *testing.T) {
	rng := core.NewRNG(11)
	pos := make([]r2.Vec, 25)
	for i := range pos {
		pos[i] = core.Polar(rng.Range(0, 20), rng.Angle())
	}

	a := Relax(pos, 100, 8, 80, DefaultParams(), Bias{Lens: true, LensGain: 1})
	b := Relax(pos, 100, 8, 80, DefaultParams(), Bias{Lens: true, LensGain: 1})

	if a.Iterations != b.Iterations {
		t.Fatalf("iteration counts differ: %d vs %d", a.Iterations, b.Iterations)
	}
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Fatalf("position %d differs: %v vs %v", i, a.Positions[i], b.Positions[i])
		}
	}
}

func TestRelaxKeepsTokensInsideBowl(t *testing.T) {
	// Far more tokens than fit: the result must still respect the boundary.
	rng := core.NewRNG(3)
	pos := make([]r2.Vec, 150)
	for i := range pos {
		pos[i] = core.Polar(rng.Range(0, 200), rng.Angle())
	}

	res := Relax(pos, 100, 15, 60, DefaultParams(), Bias{OutwardPull: 0.05})
	safe := core.SafeRadius(100, 15)
	for i, p := range res.Positions {
		if r2.Norm(p) > safe+1e-9 {
			t.Fatalf("token %d at radius %.4f exceeds safe radius %.4f", i, r2.Norm(p), safe)
		}
	}
}

func TestRelaxSpreadsSmallCluster(t *testing.T) {
	rng := core.NewRNG(21)
	pos := make([]r2.Vec, 8)
	for i := range pos {
		pos[i] = core.Polar(rng.Range(0, 5), rng.Angle())
	}

	res := Relax(pos, 100, 10, 300, DefaultParams(), Bias{})
	m := Measure(res.Positions, 100, 10)
	if m.MinSeparation < 1.6 {
		t.Errorf("small cluster should relax to near-touching tokens, min separation %.2f radii", m.MinSeparation)
	}
}

func TestRelaxDegenerateInputs(t *testing.T) {
	pos := []r2.Vec{{X: 1, Y: 1}}

	tests := []struct {
		name      string
		container float64
		token     float64
	}{
		{"NaN bowl", math.NaN(), 1},
		{"zero bowl", 0, 1},
		{"zero token", 10, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Relax(pos, tc.container, tc.token, 10, DefaultParams(), Bias{})
			if res.Iterations != 0 {
				t.Errorf("degenerate input should not iterate, ran %d", res.Iterations)
			}
			if len(res.Positions) != 1 {
				t.Errorf("expected 1 position back, got %d", len(res.Positions))
			}
		})
	}

	if res := Relax(nil, 10, 1, 10, DefaultParams(), Bias{}); len(res.Positions) != 0 {
		t.Error("empty input should produce empty output")
	}
}

func TestStepIsSymmetric(t *testing.T) {
	pos := []r2.Vec{{X: -1, Y: 0}, {X: 1, Y: 0}}
	p := DefaultParams()
	p.CenterPull = 0

	next, moved := Step(pos, 100, 10, p, Bias{})
	if moved <= 0 {
		t.Fatal("overlapping pair should move")
	}
	if math.Abs(next[0].X+next[1].X) > 1e-12 || next[0].Y != 0 || next[1].Y != 0 {
		t.Errorf("symmetric pair should move symmetrically, got %v", next)
	}
	if next[0].X >= -1 || next[1].X <= 1 {
		t.Errorf("pair should move apart, got %v", next)
	}
}

func TestLensOverlap(t *testing.T) {
	if got := LensOverlap(0, 5); got != 1 {
		t.Errorf("full overlap = %v, expected 1", got)
	}
	if got := LensOverlap(10, 5); got != 0 {
		t.Errorf("touching circles = %v, expected 0", got)
	}
	prev := 1.0
	for d := 0.5; d < 10; d += 0.5 {
		got := LensOverlap(d, 5)
		if got > prev || got < 0 {
			t.Fatalf("LensOverlap should shrink with distance: d=%v got %v prev %v", d, got, prev)
		}
		prev = got
	}
}
