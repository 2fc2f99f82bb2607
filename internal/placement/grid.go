package placement

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/davemarvit/SGFPlayer-sub000/internal/core"
)

// retryStride walks the shuffled cell order on retries. It is prime so the
// walk visits many different cells before repeating.
const retryStride = 7919

// gridSalt keys the cell shuffle, which must not depend on the counts.
const gridSalt uint64 = 0x63656C6C6F726465

// Lattice size bounds. Tiny tokens in a large bowl would otherwise ask for
// billions of cells; the pitch is widened until the lattice fits.
const (
	minCells      = 256
	maxCells      = 1 << 16
	cellsPerToken = 4
)

// grid places tokens on jittered cells of a square lattice. Settled tokens
// never move; each new token tries a few cells and keeps the one farthest
// from its neighbours.
type grid struct {
	settings Settings
}

func (grid) Variant() Variant { return Grid }

func (g grid) Compute(req Request) Result {
	j, res, done := prepare(Grid, req, g.settings)
	if done {
		return res
	}
	p := g.settings.Grid

	cells := latticeCells(p.CellSpacing*2*j.token, j.safe, cellBudget(j.target))
	order := core.NewRNG(core.Mix(req.Seed^core.KindSalt(req.Kind), gridSalt))
	order.Shuffle(len(cells), func(a, b int) { cells[a], cells[b] = cells[b], cells[a] })

	rng := core.NewRNG(j.streamSeed(Grid, true))
	pos := append([]r2.Vec(nil), j.existing...)
	minSep := p.MinSeparation * j.token
	attempts := 0
	tries := max(p.MaxRetries, 1)

	for k := len(pos); k < j.target; k++ {
		var best r2.Vec
		bestScore := -1.0
		for r := 0; r < tries; r++ {
			attempts++
			cell := cells[(k+r*retryStride)%len(cells)]
			jitter := core.Polar(p.Jitter*j.token*math.Sqrt(rng.Float64()), rng.Angle())
			cand := core.ClampToDisk(r2.Add(cell, jitter), j.safe)

			score := nearest(pos, cand)
			if score > bestScore {
				best, bestScore = cand, score
			}
			if score >= minSep {
				break
			}
		}
		pos = append(pos, best)
	}

	return j.finish(Grid, pos, Diagnostic{
		Iterations: attempts,
		Converged:  true,
		RNGCalls:   order.Calls() + rng.Calls(),
	})
}

// cellBudget is the most lattice cells a computation for target tokens may
// allocate.
func cellBudget(target int) int {
	if target >= maxCells/cellsPerToken {
		return maxCells
	}
	return max(target*cellsPerToken, minCells)
}

// latticeCells returns the centers of a square lattice with the given pitch
// that lie inside radius, in row-major order. The origin is always included.
// When more than budget cells would fit, the pitch is widened so the square
// bounding the lattice holds at most budget cells.
func latticeCells(pitch, radius float64, budget int) []r2.Vec {
	if pitch <= 0 || math.IsNaN(pitch) || !core.ValidRadius(radius) {
		return []r2.Vec{{}}
	}
	side := max(int(math.Sqrt(float64(max(budget, 1)))), 1)
	half := (side - 1) / 2
	if half == 0 {
		return []r2.Vec{{}}
	}
	if radius/pitch > float64(half) {
		pitch = radius / float64(half)
	}
	n := min(int(radius/pitch), half)
	cells := make([]r2.Vec, 0, (2*n+1)*(2*n+1))
	for y := -n; y <= n; y++ {
		for x := -n; x <= n; x++ {
			c := r2.Vec{X: float64(x) * pitch, Y: float64(y) * pitch}
			if r2.Norm(c) <= radius {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// nearest returns the distance from q to the closest of pos, or +Inf.
func nearest(pos []r2.Vec, q r2.Vec) float64 {
	d := math.Inf(1)
	for _, p := range pos {
		d = math.Min(d, r2.Norm(r2.Sub(p, q)))
	}
	return d
}
