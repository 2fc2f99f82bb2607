package config

import (
	"math"

	"github.com/davemarvit/SGFPlayer-sub000/internal/placement"
)

// fixer replaces out-of-range values with their defaults and remembers which
// fields it touched.
type fixer struct {
	fixed []string
}

// float keeps *v when it is finite and inside [lo, hi]. An open bound
// excludes the bound itself.
func (f *fixer) float(name string, v *float64, def, lo, hi float64, openLo bool) {
	x := *v
	bad := math.IsNaN(x) || math.IsInf(x, 0) || x < lo || x > hi || (openLo && x == lo)
	if bad {
		*v = def
		f.fixed = append(f.fixed, name)
	}
}

func (f *fixer) int(name string, v *int, def, lo, hi int) {
	if *v < lo || *v > hi {
		*v = def
		f.fixed = append(f.fixed, name)
	}
}

// Normalize replaces invalid or out-of-range values with defaults and returns
// the names of the fields it changed. An unknown variant is replaced too.
func (c *Config) Normalize() []string {
	d := Default()
	var f fixer

	if _, err := placement.ParseVariant(c.Variant); err != nil {
		c.Variant = d.Variant
		f.fixed = append(f.fixed, "variant")
	}
	f.float("token_scale", &c.TokenScale, d.TokenScale, 0, 0.5, true)
	f.float("settle_duration", &c.SettleDuration, d.SettleDuration, 0, 10, false)

	p, dp := &c.Physics, d.Physics
	f.float("physics.repulsion_strength", &p.RepulsionStrength, dp.RepulsionStrength, 0, 1, true)
	f.float("physics.target_spacing", &p.TargetSpacing, dp.TargetSpacing, 1, 4, false)
	f.float("physics.center_pull", &p.CenterPull, dp.CenterPull, 0, 0.5, false)
	f.int("physics.iterations", &p.Iterations, dp.Iterations, 1, 10000)
	f.float("physics.damping", &p.Damping, dp.Damping, 0, 1, true)
	f.float("physics.wall_softness", &p.WallSoftness, dp.WallSoftness, 0, 0.9, false)
	f.float("physics.wall_stiffness", &p.WallStiffness, dp.WallStiffness, 0, 1, true)
	f.float("physics.convergence_threshold", &p.ConvergenceThreshold, dp.ConvergenceThreshold, 0, 1, true)
	f.float("physics.max_step", &p.MaxStep, dp.MaxStep, 0, 10, true)

	g, dg := &c.GroupDrop, d.GroupDrop
	f.float("group_drop.radius", &g.Radius, dg.Radius, 0, 20, true)
	f.float("group_drop.range", &g.Range, dg.Range, 0, 1, false)
	f.float("group_drop.radial_exponent", &g.RadialExponent, dg.RadialExponent, 0, 10, true)
	f.float("group_drop.outward_pull", &g.OutwardPull, dg.OutwardPull, 0, 1, false)
	f.float("group_drop.lens_gain", &g.LensGain, dg.LensGain, 0, 10, false)

	a, da := &c.Annealing, d.Annealing
	f.int("annealing.steps", &a.Steps, da.Steps, 1, 10000)
	f.float("annealing.initial_temperature", &a.InitialTemperature, da.InitialTemperature, 0, 100, true)
	f.float("annealing.cooling", &a.Cooling, da.Cooling, 0, math.Nextafter(1, 0), true)
	f.float("annealing.min_temperature", &a.MinTemperature, da.MinTemperature, 0, a.InitialTemperature, true)
	f.float("annealing.acceptance_threshold", &a.AcceptanceThreshold, da.AcceptanceThreshold, 0, 100, false)
	f.float("annealing.step_size", &a.StepSize, da.StepSize, 0, 5, true)
	f.float("annealing.weights.boundary", &a.Weights.Boundary, da.Weights.Boundary, 0, 100, false)
	f.float("annealing.weights.overlap", &a.Weights.Overlap, da.Weights.Overlap, 0, 100, true)
	f.float("annealing.weights.cohesion", &a.Weights.Cohesion, da.Weights.Cohesion, 0, 100, false)

	gr, dgr := &c.Grid, d.Grid
	f.float("grid.cell_spacing", &gr.CellSpacing, dgr.CellSpacing, 1, 5, false)
	f.float("grid.jitter", &gr.Jitter, dgr.Jitter, 0, 2, false)
	f.int("grid.max_retries", &gr.MaxRetries, dgr.MaxRetries, 1, 100)
	f.float("grid.min_separation", &gr.MinSeparation, dgr.MinSeparation, 0, 4, false)

	v, dv := &c.Viewer, d.Viewer
	f.int("viewer.tick_rate", &v.TickRate, dv.TickRate, 1, 120)
	f.int("viewer.width", &v.Width, dv.Width, 40, 1000)
	f.int("viewer.height", &v.Height, dv.Height, 12, 1000)
	if v.ScreenshotDir == "" {
		v.ScreenshotDir = dv.ScreenshotDir
		f.fixed = append(f.fixed, "viewer.screenshot_dir")
	}

	return f.fixed
}
