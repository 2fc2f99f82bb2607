// Package replay drives bowl layouts while a game is scrubbed move by move.
//
// The Orchestrator decides, for each seek, whether a layout comes from the
// snapshot cache or from the active placement algorithm. Replaying a move
// that was already shown restores the exact same positions without touching
// the algorithm or its random stream.
package replay

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/davemarvit/SGFPlayer-sub000/internal/cache"
	"github.com/davemarvit/SGFPlayer-sub000/internal/config"
	"github.com/davemarvit/SGFPlayer-sub000/internal/core"
	"github.com/davemarvit/SGFPlayer-sub000/internal/placement"
)

// CaptureSource supplies captured-stone counts, typically from a rules
// engine replaying a game record.
type CaptureSource interface {
	CapturedCount(move int, kind core.Kind) int
	MoveCount() int
}

// Targets holds the desired token count per kind.
type Targets struct {
	Black int
	White int
}

// For returns the target of kind k.
func (t Targets) For(k core.Kind) int {
	if k == core.White {
		return t.White
	}
	return t.Black
}

// TargetsAt reads the counts of move from src.
func TargetsAt(src CaptureSource, move int) Targets {
	return Targets{
		Black: src.CapturedCount(move, core.Black),
		White: src.CapturedCount(move, core.White),
	}
}

// Bowl is the layout of one container for a frame. Token positions are
// relative to the container center.
type Bowl struct {
	Container  core.Container
	Tokens     []core.Token
	Cached     bool
	Diagnostic placement.Diagnostic // Zero when Cached
}

// Frame is the result of a seek: both bowls at one move.
type Frame struct {
	Move  int
	Bowls [len(core.Kinds)]Bowl
}

// Bowl returns the bowl holding tokens of kind k. An unknown kind yields an
// empty bowl.
func (f Frame) Bowl(k core.Kind) Bowl {
	if !k.Valid() {
		return Bowl{Tokens: []core.Token{}}
	}
	return f.Bowls[k]
}

// Stats counts orchestrator work since the game was loaded.
type Stats struct {
	Seeks         int
	Computes      int
	CacheHits     int
	RNGCalls      uint64
	Invalidations int
	Cache         cache.Stats
}

// bowlState is the live layout of one container. An empty state has no
// layout yet; a populated one holds normalized positions.
type bowlState struct {
	radius     float64
	center     r2.Vec
	populated  bool
	normalized []r2.Vec
}

// Orchestrator owns the snapshot cache and the live layouts of one game.
// It is not safe for concurrent use.
type Orchestrator struct {
	fingerprint string
	sel         config.Selection
	alg         placement.Algorithm
	cache       *cache.Positions
	bowls       [len(core.Kinds)]bowlState

	move    int
	targets Targets
	hasMove bool

	stats  Stats
	logger *log.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates an orchestrator for the game identified by fingerprint.
// Bowls start with radius 1 at the origin until SetContainer is called.
func New(fingerprint string, sel config.Selection, opts ...Option) (*Orchestrator, error) {
	alg, err := placement.New(sel.Variant, sel.Settings)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	o := &Orchestrator{
		fingerprint: fingerprint,
		sel:         sel,
		alg:         alg,
		cache:       cache.NewPositions(),
		logger:      log.New(io.Discard),
	}
	for i := range o.bowls {
		o.bowls[i].radius = 1
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Selection returns the active selection.
func (o *Orchestrator) Selection() config.Selection {
	return o.sel
}

// Fingerprint returns the current game identifier.
func (o *Orchestrator) Fingerprint() string {
	return o.fingerprint
}

// Move returns the last move seeked and whether there was one.
func (o *Orchestrator) Move() (int, bool) {
	return o.move, o.hasMove
}

// SetContainer updates the geometry of the bowl for kind. Live layouts are
// kept normalized, so a new radius rescales them without recomputation.
// Invalid radii and unknown kinds are ignored.
func (o *Orchestrator) SetContainer(kind core.Kind, radius float64, center r2.Vec) {
	if !kind.Valid() {
		o.logger.Warn("ignoring unknown bowl kind", "kind", int(kind))
		return
	}
	b := &o.bowls[kind]
	b.center = center
	if !core.ValidRadius(radius) {
		o.logger.Warn("ignoring invalid bowl radius", "kind", kind, "radius", radius)
		return
	}
	if radius != b.radius {
		o.logger.Debug("bowl resized", "kind", kind, "from", b.radius, "to", radius)
		b.radius = radius
	}
}

// Container returns the geometry of the bowl for kind. An unknown kind
// yields the zero Container.
func (o *Orchestrator) Container(kind core.Kind) core.Container {
	if !kind.Valid() {
		return core.Container{}
	}
	b := o.bowls[kind]
	return core.Container{
		ID:     core.ContainerFor(kind),
		Radius: b.radius,
		Center: b.center,
		Target: len(b.normalized),
	}
}

// Seek moves both bowls to move. A move seen before under the current
// selection is restored from the cache; otherwise the active algorithm grows
// or shrinks the live layout to the target and the result is cached.
func (o *Orchestrator) Seek(move int, targets Targets) Frame {
	o.move, o.targets, o.hasMove = move, targets, true
	o.stats.Seeks++

	f := Frame{Move: move}
	for _, k := range core.Kinds {
		f.Bowls[k] = o.seekBowl(move, k, targets.For(k))
	}
	return f
}

func (o *Orchestrator) seekBowl(move int, kind core.Kind, target int) Bowl {
	id := core.ContainerFor(kind)
	b := &o.bowls[kind]

	if norm, ok := o.cache.Fetch(move, id); ok {
		o.stats.CacheHits++
		b.normalized, b.populated = norm, true
		return Bowl{Container: o.Container(kind), Tokens: o.Layout(kind), Cached: true}
	}

	res := o.alg.Compute(placement.Request{
		Existing:        o.Layout(kind),
		Target:          target,
		ContainerRadius: b.radius,
		TokenRadius:     b.radius * o.sel.Settings.TokenScale,
		Seed:            core.DeriveSeed(o.fingerprint, kind, o.sel.Variant.Salt()),
		Kind:            kind,
	})
	o.stats.Computes++
	o.stats.RNGCalls += res.Diagnostic.RNGCalls
	o.logger.Debug("layout computed",
		"move", move,
		"kind", kind,
		"variant", o.sel.Variant,
		"tokens", len(res.Tokens),
		"iterations", res.Diagnostic.Iterations,
		"rng", res.Diagnostic.RNGCalls,
	)

	norm := cache.Normalize(core.Positions(res.Tokens), b.radius)
	o.cache.Store(move, id, norm)
	b.normalized, b.populated = norm, true

	return Bowl{Container: o.Container(kind), Tokens: o.Layout(kind), Diagnostic: res.Diagnostic}
}

// Layout returns the live tokens of kind at the current radius, relative to
// the bowl center. An empty bowl or an unknown kind returns an empty slice.
func (o *Orchestrator) Layout(kind core.Kind) []core.Token {
	if !kind.Valid() {
		return []core.Token{}
	}
	b := o.bowls[kind]
	if !b.populated {
		return []core.Token{}
	}
	return core.TokensAt(cache.Denormalize(b.normalized, b.radius, r2.Vec{}), kind)
}

// SetSelection switches variant or parameters. Any change invalidates every
// cached snapshot and drops both live layouts; the current move, if any, is
// recomputed immediately.
func (o *Orchestrator) SetSelection(sel config.Selection) (Frame, error) {
	if sel.Equal(o.sel) {
		return o.current(), nil
	}
	alg, err := placement.New(sel.Variant, sel.Settings)
	if err != nil {
		return o.current(), fmt.Errorf("replay: %w", err)
	}

	o.sel, o.alg = sel, alg
	o.cache.Invalidate()
	o.stats.Invalidations++
	o.resetBowls()
	o.logger.Info("layout cache invalidated", "variant", sel.Variant, "selection", sel.Fingerprint())

	if !o.hasMove {
		return Frame{}, nil
	}
	return o.Seek(o.move, o.targets), nil
}

// LoadGame starts a new game: the cache, live layouts and counters are
// cleared. Bowl geometry is kept.
func (o *Orchestrator) LoadGame(fingerprint string) {
	o.fingerprint = fingerprint
	o.cache.Clear()
	o.resetBowls()
	o.move, o.targets, o.hasMove = 0, Targets{}, false
	o.stats = Stats{}
	o.logger.Debug("game loaded", "fingerprint", fingerprint)
}

// Stats returns the counters, including cache traffic.
func (o *Orchestrator) Stats() Stats {
	s := o.stats
	s.Cache = o.cache.Stats()
	return s
}

// current rebuilds the frame for the last seek from live state.
func (o *Orchestrator) current() Frame {
	f := Frame{Move: o.move}
	for _, k := range core.Kinds {
		f.Bowls[k] = Bowl{Container: o.Container(k), Tokens: o.Layout(k)}
	}
	return f
}

func (o *Orchestrator) resetBowls() {
	for i := range o.bowls {
		o.bowls[i].populated = false
		o.bowls[i].normalized = nil
	}
}
