package placement

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/davemarvit/SGFPlayer-sub000/internal/core"
)

// spiral lays tokens along an Archimedean spiral r = b*theta whose arm pitch
// equals the target spacing. Position i depends only on i, so regenerating
// for a larger count leaves earlier tokens where they were.
type spiral struct {
	settings Settings
}

func (spiral) Variant() Variant { return Spiral }

func (s spiral) Compute(req Request) Result {
	j, res, done := prepare(Spiral, req, s.settings)
	if done {
		return res
	}

	// One draw per computation: the rotation of the whole spiral. White is
	// offset by half a turn.
	rng := core.NewRNG(j.streamSeed(Spiral, false))
	rotation := rng.Angle()
	if req.Kind == core.White {
		rotation += math.Pi
	}

	step := s.settings.Physics.TargetSpacing * j.token
	pos := make([]r2.Vec, j.target)
	for i := range pos {
		pos[i] = spiralPoint(i, step, j.safe, rotation)
	}

	return j.finish(Spiral, pos, Diagnostic{Converged: true, RNGCalls: rng.Calls()})
}

// spiralPoint returns the i-th point of a spiral with center distance step
// between neighbours. With b = step/2π and equal arc length per token,
// theta_i = sqrt(4π(i+1)) and r_i = b*theta_i.
func spiralPoint(i int, step, safe, rotation float64) r2.Vec {
	theta := math.Sqrt(4 * math.Pi * float64(i+1))
	r := math.Min(step/(2*math.Pi)*theta, safe)
	return core.Polar(r, theta+rotation)
}
