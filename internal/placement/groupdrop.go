package placement

import (
	"github.com/davemarvit/SGFPlayer-sub000/internal/core"
	"github.com/davemarvit/SGFPlayer-sub000/internal/physics"
)

// groupDrop drops the newly captured stones as one cluster at a random
// point and lets the whole bowl settle around them.
type groupDrop struct {
	settings Settings
}

func (groupDrop) Variant() Variant { return GroupDrop }

func (g groupDrop) Compute(req Request) Result {
	j, res, done := prepare(GroupDrop, req, g.settings)
	if done {
		return res
	}

	rng := core.NewRNG(j.streamSeed(GroupDrop, true))
	fresh, _ := dropCluster(rng, j.target-len(j.existing), j.safe, j.token, g.settings.Drop)
	pos := append(j.existing, fresh...)

	bias := physics.Bias{
		OutwardPull: g.settings.Drop.OutwardPull,
		Lens:        true,
		LensGain:    g.settings.Drop.LensGain,
	}
	p := g.settings.Physics
	relaxed := physics.Relax(pos, req.ContainerRadius, j.token, p.Iterations, p, bias)

	return j.finish(GroupDrop, relaxed.Positions, Diagnostic{
		Iterations: relaxed.Iterations,
		Converged:  relaxed.Converged,
		RNGCalls:   rng.Calls(),
	})
}
