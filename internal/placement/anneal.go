package placement

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/davemarvit/SGFPlayer-sub000/internal/core"
	"github.com/davemarvit/SGFPlayer-sub000/internal/physics"
)

// candidateMoves is the number of trial directions per token per step.
const candidateMoves = 8

// annealer seeds new tokens like groupDrop, then minimizes a bounded energy
// with simulated annealing. Every token, old and new, is free to move.
type annealer struct {
	settings Settings
}

func (annealer) Variant() Variant { return Energy }

// annealState is one point of the annealing schedule.
type annealState struct {
	Pos         []r2.Vec
	Temperature float64
	Accepted    int
}

func (a annealer) Compute(req Request) Result {
	j, res, done := prepare(Energy, req, a.settings)
	if done {
		return res
	}

	rng := core.NewRNG(j.streamSeed(Energy, true))
	fresh, drop := dropCluster(rng, j.target-len(j.existing), j.safe, j.token, a.settings.Drop)

	field := physics.EnergyField{
		Safe:        j.safe,
		TokenRadius: j.token,
		Spacing:     a.settings.Physics.TargetSpacing,
		Weights:     a.settings.Anneal.Weights,
		Anchor:      drop,
		Fresh:       len(j.existing),
	}

	p := a.settings.Anneal
	state := annealState{Pos: append(j.existing, fresh...), Temperature: p.InitialTemperature}
	d := Diagnostic{}
	for d.Iterations < p.Steps && state.Temperature > p.MinTemperature {
		state = annealStep(state, field, p, rng)
		d.Iterations++
		if state.Accepted == 0 {
			d.Converged = true
			break
		}
	}

	d.RNGCalls = rng.Calls()
	d.Energy = field.Total(state.Pos)
	return j.finish(Energy, state.Pos, d)
}

// annealStep sweeps every token once and returns the next state. The input
// state is not modified; rng is the only side channel.
func annealStep(s annealState, f physics.EnergyField, p AnnealParams, rng *core.RNG) annealState {
	pos := append([]r2.Vec(nil), s.Pos...)
	next := annealState{Pos: pos, Temperature: s.Temperature * p.Cooling}

	scale := 1.0
	if p.InitialTemperature > 0 {
		scale = math.Max(s.Temperature/p.InitialTemperature, 0.1)
	}
	step := p.StepSize * f.TokenRadius * scale
	uphill := !p.Greedy && s.Temperature > p.AcceptanceThreshold

	for i := range pos {
		current := f.Local(pos, i, pos[i])
		offset := rng.Angle()

		best, bestE := pos[i], current
		for k := 0; k < candidateMoves; k++ {
			theta := offset + float64(k)*2*math.Pi/candidateMoves
			q := r2.Add(pos[i], core.Polar(step, theta))
			if e := f.Local(pos, i, q); e < bestE {
				best, bestE = q, e
			}
		}

		switch {
		case bestE < current:
			pos[i] = best
			next.Accepted++
		case uphill:
			// Metropolis: occasionally take the first candidate even if it
			// costs energy.
			q := r2.Add(pos[i], core.Polar(step, offset))
			delta := f.Local(pos, i, q) - current
			if delta > 0 && math.Exp(-delta/s.Temperature) > rng.Float64() {
				pos[i] = q
				next.Accepted++
			}
		}
	}
	return next
}
