package cache

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/davemarvit/SGFPlayer-sub000/internal/core"
)

// Normalize divides every position by radius. A degenerate radius yields an
// empty slice.
func Normalize(abs []r2.Vec, radius float64) []r2.Vec {
	if !core.ValidRadius(radius) {
		return []r2.Vec{}
	}
	out := make([]r2.Vec, len(abs))
	for i, p := range abs {
		out[i] = r2.Scale(1/radius, p)
	}
	return out
}

// Denormalize maps normalized positions back to absolute coordinates for a
// bowl of the given radius centered at center. A degenerate radius yields an
// empty slice.
func Denormalize(norm []r2.Vec, radius float64, center r2.Vec) []r2.Vec {
	if !core.ValidRadius(radius) {
		return []r2.Vec{}
	}
	out := make([]r2.Vec, len(norm))
	for i, p := range norm {
		out[i] = r2.Add(center, r2.Scale(radius, p))
	}
	return out
}

// Rescale converts positions laid out for one radius to another, keeping the
// bowl center at the origin.
func Rescale(pos []r2.Vec, from, to float64) []r2.Vec {
	return Denormalize(Normalize(pos, from), to, r2.Vec{})
}
