package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"
)

// overlapTolerance is how much two tokens may touch before the pair counts
// as a visible overlap.
const overlapTolerance = 0.9

// Metrics summarizes the visual quality of a layout.
type Metrics struct {
	Count         int
	MinSeparation float64 // Smallest center distance, in token radii
	MeanNearest   float64 // Mean nearest-neighbour distance, in token radii
	NearestStdDev float64
	Overlaps      int     // Pairs closer than overlapTolerance diameters
	MaxRadius     float64 // Largest distance from center, in bowl radii
}

// Measure computes layout metrics. Positions are in the same units as the
// two radii.
func Measure(pos []r2.Vec, containerRadius, tokenRadius float64) Metrics {
	m := Metrics{Count: len(pos)}
	if len(pos) == 0 || tokenRadius <= 0 || containerRadius <= 0 {
		return m
	}

	nearest := make([]float64, len(pos))
	for i := range nearest {
		nearest[i] = math.Inf(1)
	}
	minSep := math.Inf(1)

	for i, p := range pos {
		m.MaxRadius = math.Max(m.MaxRadius, r2.Norm(p)/containerRadius)
		for j := i + 1; j < len(pos); j++ {
			d := r2.Norm(r2.Sub(p, pos[j])) / tokenRadius
			nearest[i] = math.Min(nearest[i], d)
			nearest[j] = math.Min(nearest[j], d)
			minSep = math.Min(minSep, d)
			if d < 2*overlapTolerance {
				m.Overlaps++
			}
		}
	}

	if len(pos) < 2 {
		return m
	}
	m.MinSeparation = minSep
	m.MeanNearest, m.NearestStdDev = stat.MeanStdDev(nearest, nil)
	return m
}
