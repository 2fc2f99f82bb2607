package tui

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/davemarvit/SGFPlayer-sub000/internal/core"
)

// settleEpsilon is how close (in layout units) a token must be to its
// target, and how slow, to count as settled.
const settleEpsilon = 1e-3

// settleBowl holds the displayed positions of one bowl.
type settleBowl struct {
	pos    []r2.Vec
	vel    []r2.Vec
	target []r2.Vec
}

// Settler eases displayed token positions towards the computed layout with
// critically damped springs, one per axis per token. Layouts themselves
// never move; only what is drawn does.
type Settler struct {
	spring  harmonica.Spring
	enabled bool
	bowls   [len(core.Kinds)]settleBowl
}

// NewSettler creates a settler stepping at fps that brings a token to rest
// in roughly duration. A zero duration disables easing: tokens snap.
func NewSettler(fps int, duration time.Duration) *Settler {
	if fps <= 0 {
		fps = 30
	}
	s := &Settler{enabled: duration > 0}
	if s.enabled {
		// A critically damped spring is within 1% of its target after
		// about 6.6/omega seconds.
		omega := 6.6 / duration.Seconds()
		s.spring = harmonica.NewSpring(harmonica.FPS(fps), omega, 1.0)
	}
	return s
}

// Enabled reports whether tokens are eased.
func (s *Settler) Enabled() bool { return s.enabled }

// SetTargets replaces the layout of kind. Surviving tokens keep their
// displayed position and velocity; new tokens drop in from spawn.
func (s *Settler) SetTargets(kind core.Kind, targets []r2.Vec, spawn r2.Vec) {
	b := &s.bowls[kind]
	b.target = append(b.target[:0], targets...)

	if !s.enabled {
		b.pos = append(b.pos[:0], targets...)
		b.vel = make([]r2.Vec, len(targets))
		return
	}

	keep := min(len(b.pos), len(targets))
	pos := make([]r2.Vec, len(targets))
	vel := make([]r2.Vec, len(targets))
	copy(pos, b.pos[:keep])
	copy(vel, b.vel[:keep])
	for i := keep; i < len(targets); i++ {
		pos[i] = spawn
	}
	b.pos, b.vel = pos, vel
}

// Snap moves every token straight to its target.
func (s *Settler) Snap() {
	for i := range s.bowls {
		b := &s.bowls[i]
		b.pos = append(b.pos[:0], b.target...)
		b.vel = make([]r2.Vec, len(b.target))
	}
}

// Step advances every spring by one frame and reports whether anything is
// still moving.
func (s *Settler) Step() bool {
	if !s.enabled {
		return false
	}
	moving := false
	for k := range s.bowls {
		b := &s.bowls[k]
		for i := range b.pos {
			p, v, t := b.pos[i], b.vel[i], b.target[i]
			p.X, v.X = s.spring.Update(p.X, v.X, t.X)
			p.Y, v.Y = s.spring.Update(p.Y, v.Y, t.Y)
			if r2.Norm(r2.Sub(p, t)) < settleEpsilon && r2.Norm(v) < settleEpsilon {
				p, v = t, r2.Vec{}
			} else {
				moving = true
			}
			b.pos[i], b.vel[i] = p, v
		}
	}
	return moving
}

// Positions returns the displayed positions of kind.
func (s *Settler) Positions(kind core.Kind) []r2.Vec {
	return s.bowls[kind].pos
}

// Settled reports whether every token rests on its target.
func (s *Settler) Settled() bool {
	for _, b := range s.bowls {
		for i := range b.pos {
			if b.pos[i] != b.target[i] {
				return false
			}
		}
	}
	return true
}

// rimSpawn is where new tokens of a bowl of the given radius appear: the
// top of the rim.
func rimSpawn(radius float64) r2.Vec {
	if math.IsNaN(radius) || radius <= 0 {
		return r2.Vec{}
	}
	return r2.Vec{Y: -radius}
}
