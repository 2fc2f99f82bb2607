// Package placement computes where captured stones sit inside a bowl.
//
// The four strategies form a closed set selected by Variant; New is the only
// way to obtain an Algorithm. Every strategy is a pure function of its
// Request: the same request always yields bit-identical tokens.
package placement

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/davemarvit/SGFPlayer-sub000/internal/core"
	"github.com/davemarvit/SGFPlayer-sub000/internal/physics"
)

// ErrUnknownVariant is returned when a variant name or value is not one of
// the supported strategies.
var ErrUnknownVariant = errors.New("placement: unknown variant")

// Variant selects a placement strategy.
type Variant int

const (
	Spiral Variant = iota
	GroupDrop
	Energy
	Grid
)

// Variants lists every strategy in display order.
var Variants = [...]Variant{Spiral, GroupDrop, Energy, Grid}

// String returns the configuration name of the variant.
func (v Variant) String() string {
	switch v {
	case Spiral:
		return "spiral"
	case GroupDrop:
		return "group-drop"
	case Energy:
		return "energy"
	case Grid:
		return "grid"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// Title returns a human-readable name for the variant.
func (v Variant) Title() string {
	switch v {
	case Spiral:
		return "Spiral"
	case GroupDrop:
		return "Group Drop"
	case Energy:
		return "Energy Minimization"
	case Grid:
		return "Grid"
	default:
		return "Unknown"
	}
}

// GrowthPolicy describes what happens to settled tokens when the count grows.
func (v Variant) GrowthPolicy() string {
	switch v {
	case Spiral:
		return "regenerates from index; earlier tokens land where they were"
	case GroupDrop:
		return "keeps identity; settled tokens are re-relaxed with the new drop"
	case Energy:
		return "keeps identity; every token is annealed again"
	case Grid:
		return "keeps identity and position; new tokens take fresh cells"
	default:
		return ""
	}
}

// Salt is the variant-specific constant mixed into seeds.
func (v Variant) Salt() uint64 {
	switch v {
	case Spiral:
		return 0x53504952414C0001
	case GroupDrop:
		return 0x47524F5550440002
	case Energy:
		return 0x454E455247590003
	case Grid:
		return 0x4752494400000004
	default:
		return 0
	}
}

// Next returns the variant after v, wrapping around.
func (v Variant) Next() Variant {
	return Variants[(int(v)+1)%len(Variants)]
}

// ParseVariant converts a configuration name to a Variant.
func ParseVariant(s string) (Variant, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "_", "-")
	switch name {
	case "spiral":
		return Spiral, nil
	case "group-drop", "groupdrop", "drop":
		return GroupDrop, nil
	case "energy", "energy-minimization", "anneal":
		return Energy, nil
	case "grid", "grid-based":
		return Grid, nil
	}
	return Spiral, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Request is the input to a placement computation. The current count is
// len(Existing).
type Request struct {
	Existing        []core.Token
	Target          int
	ContainerRadius float64
	TokenRadius     float64
	Seed            uint64
	Kind            core.Kind
}

// Diagnostic reports how a computation went. It is informational only.
type Diagnostic struct {
	Variant    Variant
	Iterations int
	Converged  bool
	RNGCalls   uint64
	Energy     float64
	Metrics    physics.Metrics
}

// Result is the output of a placement computation.
type Result struct {
	Tokens     []core.Token
	Diagnostic Diagnostic
}

// Algorithm is implemented by every placement strategy.
type Algorithm interface {
	Variant() Variant
	Compute(req Request) Result
}

// New returns the strategy for v configured with s.
func New(v Variant, s Settings) (Algorithm, error) {
	switch v {
	case Spiral:
		return spiral{settings: s}, nil
	case GroupDrop:
		return groupDrop{settings: s}, nil
	case Energy:
		return annealer{settings: s}, nil
	case Grid:
		return grid{settings: s}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
}

// job is a validated request shared by all strategies.
type job struct {
	req      Request
	target   int
	safe     float64
	token    float64
	existing []r2.Vec
}

// prepare validates req. When the answer does not need the strategy at all
// (empty bowl, shrink, hold, degenerate geometry) it returns the final result
// and done=true; no RNG is created on those paths.
func prepare(v Variant, req Request, s Settings) (job, Result, bool) {
	j := job{req: req, target: max(req.Target, 0)}
	empty := Result{Tokens: []core.Token{}, Diagnostic: Diagnostic{Variant: v, Converged: true}}

	if !core.ValidRadius(req.ContainerRadius) || j.target == 0 {
		return j, empty, true
	}

	j.token = req.TokenRadius
	if !core.ValidRadius(j.token) {
		j.token = req.ContainerRadius * s.TokenScale
	}
	j.safe = core.SafeRadius(req.ContainerRadius, j.token)

	n := min(len(req.Existing), j.target)
	j.existing = make([]r2.Vec, n)
	for i := 0; i < n; i++ {
		j.existing[i] = core.ClampToDisk(req.Existing[i].Pos, j.safe)
	}

	if j.target <= len(req.Existing) {
		return j, j.finish(v, j.existing, Diagnostic{Converged: true}), true
	}
	return j, Result{}, false
}

// streamSeed derives the RNG seed for one computation. Mixing in the counts
// gives each growth step its own stream while keeping it reproducible.
func (j job) streamSeed(v Variant, withCounts bool) uint64 {
	seed := j.req.Seed ^ core.KindSalt(j.req.Kind) ^ v.Salt()
	if !withCounts {
		return seed
	}
	counts := uint64(len(j.existing))<<32 | uint64(j.target)
	return core.Mix(seed, counts)
}

// finish clamps positions into the bowl, assigns identities and fills in
// the metrics.
func (j job) finish(v Variant, pos []r2.Vec, d Diagnostic) Result {
	out := make([]r2.Vec, len(pos))
	for i, p := range pos {
		out[i] = core.ClampToDisk(p, j.safe)
	}
	d.Variant = v
	d.Metrics = physics.Measure(out, j.req.ContainerRadius, j.token)
	return Result{Tokens: core.TokensAt(out, j.req.Kind), Diagnostic: d}
}

// dropCluster scatters n new tokens in a small disk around one random drop
// point. The drop radius follows a power law that favours the bowl center.
func dropCluster(rng *core.RNG, n int, safe, token float64, p DropParams) ([]r2.Vec, r2.Vec) {
	angle := rng.Angle()
	u := rng.Float64()
	dist := safe * p.Range * math.Pow(u, p.RadialExponent)
	drop := core.ClampToDisk(core.Polar(dist, angle), safe)

	out := make([]r2.Vec, n)
	spread := p.Radius * token
	for i := range out {
		a := rng.Angle()
		r := spread * math.Sqrt(rng.Float64())
		out[i] = core.ClampToDisk(r2.Add(drop, core.Polar(r, a)), safe)
	}
	return out, drop
}
