// Package physics implements the iterative relaxation solver that spreads
// tokens inside a circular bowl, plus the bounded energy function and layout
// quality metrics the placement algorithms build on.
//
// Every step is a pure function from one position slice to a new one, so a
// relaxation run is reproducible and each intermediate state can be tested.
package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/davemarvit/SGFPlayer-sub000/internal/core"
)

// goldenAngle separates coincident tokens in a deterministic direction.
const goldenAngle = 2.399963229728653

// Params tunes the relaxation solver. Distances are in token radii so a
// parameter set means the same thing at every bowl size.
type Params struct {
	RepulsionStrength    float64 // Fraction of overlap depth resolved per step
	TargetSpacing        float64 // Desired center distance between neighbours, in token radii
	CenterPull           float64 // Centripetal displacement per step, as a fraction of the distance to center
	Iterations           int     // Iteration budget
	Damping              float64 // Fraction of the computed displacement actually applied
	WallSoftness         float64 // Soft wall starts at safeRadius*(1-WallSoftness)
	WallStiffness        float64 // Fraction of the wall excess pulled back per step
	ConvergenceThreshold float64 // Mean per-token displacement (token radii) that counts as settled
	MaxStep              float64 // Per-step displacement cap, in token radii
}

// DefaultParams returns parameters that settle a typical capture count
// without visible overlap.
func DefaultParams() Params {
	return Params{
		RepulsionStrength:    0.6,
		TargetSpacing:        2.2,
		CenterPull:           0.005,
		Iterations:           120,
		Damping:              0.85,
		WallSoftness:         0.08,
		WallStiffness:        0.5,
		ConvergenceThreshold: 0.002,
		MaxStep:              0.75,
	}
}

// Bias carries per-variant adjustments to the shared force model.
type Bias struct {
	OutwardPull float64 // Constant outward displacement per step, in token radii
	Lens        bool    // Scale repulsion by the biconvex lens overlap area
	LensGain    float64 // Extra repulsion at full overlap when Lens is set
}

// Relaxation is the outcome of a Relax call.
type Relaxation struct {
	Positions    []r2.Vec
	Iterations   int     // Iterations actually run
	Converged    bool    // Whether the displacement threshold was reached
	Displacement float64 // Total displacement of the last iteration
}

// Relax runs up to iterations relaxation steps and returns the settled
// positions. The input slice is never modified. The result always satisfies
// the bowl boundary: every position lies within core.SafeRadius.
func Relax(positions []r2.Vec, containerRadius, tokenRadius float64, iterations int, p Params, bias Bias) Relaxation {
	safe := core.SafeRadius(containerRadius, tokenRadius)
	out := Relaxation{Positions: clampAll(positions, safe)}
	if len(positions) == 0 || !core.ValidRadius(containerRadius) || !core.ValidRadius(tokenRadius) {
		return out
	}

	cur := out.Positions
	threshold := p.ConvergenceThreshold * tokenRadius * float64(len(cur))
	for it := 0; it < iterations; it++ {
		next, moved := Step(cur, safe, tokenRadius, p, bias)
		cur = next
		out.Iterations = it + 1
		out.Displacement = moved
		if moved < threshold {
			out.Converged = true
			break
		}
	}

	out.Positions = clampAll(cur, safe)
	return out
}

// Step applies one relaxation iteration and returns the new positions along
// with the total displacement.
func Step(pos []r2.Vec, safe, tokenRadius float64, p Params, bias Bias) ([]r2.Vec, float64) {
	n := len(pos)
	disp := make([]r2.Vec, n)
	minDist := p.TargetSpacing * tokenRadius

	// Pairwise repulsion, symmetric so momentum is conserved.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := r2.Sub(pos[j], pos[i])
			dist := r2.Norm(d)
			if dist >= minDist {
				continue
			}

			var dir r2.Vec
			if dist < 1e-9*tokenRadius {
				dir = core.Polar(1, float64(i*31+j*17)*goldenAngle)
			} else {
				dir = r2.Scale(1/dist, d)
			}

			push := 0.5 * p.RepulsionStrength * (minDist - dist)
			if bias.Lens {
				push *= 1 + bias.LensGain*LensOverlap(dist, tokenRadius)
			}
			disp[i] = r2.Sub(disp[i], r2.Scale(push, dir))
			disp[j] = r2.Add(disp[j], r2.Scale(push, dir))
		}
	}

	inner := safe * (1 - p.WallSoftness)
	maxStep := p.MaxStep * tokenRadius
	next := make([]r2.Vec, n)
	var moved float64

	for i := 0; i < n; i++ {
		d := disp[i]
		d = r2.Sub(d, r2.Scale(p.CenterPull, pos[i]))

		r := r2.Norm(pos[i])
		if bias.OutwardPull != 0 && r > 1e-9*tokenRadius {
			d = r2.Add(d, r2.Scale(bias.OutwardPull*tokenRadius/r, pos[i]))
		}

		// Soft wall: proportional pull-back instead of a hard clamp.
		if r > inner {
			d = r2.Sub(d, r2.Scale((r-inner)*p.WallStiffness/r, pos[i]))
		}

		d = r2.Scale(p.Damping, d)
		if m := r2.Norm(d); maxStep > 0 && m > maxStep {
			d = r2.Scale(maxStep/m, d)
		}

		next[i] = r2.Add(pos[i], d)
		moved += r2.Norm(d)
	}

	return next, moved
}

// LensOverlap returns the area shared by two circles of radius r whose
// centers are dist apart, as a fraction of one circle's area.
func LensOverlap(dist, r float64) float64 {
	if r <= 0 || dist >= 2*r {
		return 0
	}
	if dist <= 0 {
		return 1
	}
	area := 2*r*r*math.Acos(dist/(2*r)) - 0.5*dist*math.Sqrt(4*r*r-dist*dist)
	return core.ClampF(area/(math.Pi*r*r), 0, 1)
}

func clampAll(pos []r2.Vec, safe float64) []r2.Vec {
	out := make([]r2.Vec, len(pos))
	for i, p := range pos {
		out[i] = core.ClampToDisk(p, safe)
	}
	return out
}
