// Package core provides the fundamental types shared by the bowl layout
// engine: tokens, containers, the deterministic RNG and small geometry helpers.
// It has no dependency on the viewer so layout logic stays pure and testable.
package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Rect represents an axis-aligned region of the character screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ValidRadius reports whether r can describe a circle: finite and positive.
func ValidRadius(r float64) bool {
	return r > 0 && !math.IsNaN(r) && !math.IsInf(r, 0)
}

// SafeRadius is the largest distance from the container center at which a
// token center may sit. Degenerate inputs collapse to zero.
func SafeRadius(containerRadius, tokenRadius float64) float64 {
	if !ValidRadius(containerRadius) {
		return 0
	}
	if !ValidRadius(tokenRadius) {
		return containerRadius
	}
	return math.Max(0, containerRadius-tokenRadius)
}

// ClampToDisk pulls p back onto the disk of the given radius around the origin.
func ClampToDisk(p r2.Vec, radius float64) r2.Vec {
	if radius <= 0 {
		return r2.Vec{}
	}
	d := r2.Norm(p)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return r2.Vec{}
	}
	if d <= radius {
		return p
	}
	// Rounding may leave the scaled point a hair outside; step the scale down
	// until it is inside so clamping twice changes nothing.
	s := radius / d
	q := r2.Scale(s, p)
	for r2.Norm(q) > radius {
		s = math.Nextafter(s, 0)
		q = r2.Scale(s, p)
	}
	return q
}

// Polar returns the point at distance r and angle theta from the origin.
func Polar(r, theta float64) r2.Vec {
	return r2.Vec{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}
