package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// EnergyWeights scales the three energy terms.
type EnergyWeights struct {
	Boundary float64
	Overlap  float64
	Cohesion float64
}

// DefaultEnergyWeights favours resolving overlap over everything else.
func DefaultEnergyWeights() EnergyWeights {
	return EnergyWeights{Boundary: 4, Overlap: 1, Cohesion: 0.05}
}

// EnergyField evaluates the scalar energy of a layout. Each term is a
// polynomial of a clamped quantity, so the energy stays finite even when
// tokens sit exactly on top of each other.
type EnergyField struct {
	Safe        float64 // Safe radius of the bowl
	TokenRadius float64
	Spacing     float64 // Target spacing in token radii
	Weights     EnergyWeights
	Anchor      r2.Vec // Drop point recently added tokens are drawn to
	Fresh       int    // Tokens with index >= Fresh count as recently added
}

// boundary penalizes distance beyond the safe radius, capped at two radii.
func (f EnergyField) boundary(q r2.Vec) float64 {
	excess := r2.Norm(q) - f.Safe
	if excess <= 0 {
		return 0
	}
	e := math.Min(excess/f.TokenRadius, 2)
	return f.Weights.Boundary * e * e
}

// pair penalizes overlap depth normalized to [0,1].
func (f EnergyField) pair(a, b r2.Vec) float64 {
	minDist := f.Spacing * f.TokenRadius
	dist := r2.Norm(r2.Sub(a, b))
	if dist >= minDist || minDist <= 0 {
		return 0
	}
	o := (minDist - dist) / minDist
	return f.Weights.Overlap * o * o
}

func (f EnergyField) cohesion(i int, q r2.Vec) float64 {
	if i < f.Fresh || f.Safe <= 0 {
		return 0
	}
	c := math.Min(r2.Norm(r2.Sub(q, f.Anchor))/f.Safe, 1)
	return f.Weights.Cohesion * c * c
}

// Local returns the energy contribution of token i if it sat at q.
func (f EnergyField) Local(pos []r2.Vec, i int, q r2.Vec) float64 {
	e := f.boundary(q) + f.cohesion(i, q)
	for j, p := range pos {
		if j == i {
			continue
		}
		e += f.pair(q, p)
	}
	return e
}

// Total returns the energy of the whole layout.
func (f EnergyField) Total(pos []r2.Vec) float64 {
	var e float64
	for i, p := range pos {
		e += f.boundary(p) + f.cohesion(i, p)
		for j := i + 1; j < len(pos); j++ {
			e += f.pair(p, pos[j])
		}
	}
	return e
}
