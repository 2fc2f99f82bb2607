// Package config provides YAML/TOML configuration loading for the bowl
// layout engine: the active placement variant and its parameter bundle.
package config

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/davemarvit/SGFPlayer-sub000/internal/physics"
	"github.com/davemarvit/SGFPlayer-sub000/internal/placement"
)

// ErrUnknownVariant is returned when the configured variant is not a known
// placement strategy. It matches placement.ErrUnknownVariant.
var ErrUnknownVariant = placement.ErrUnknownVariant

// Config contains the full bowl layout configuration.
type Config struct {
	Variant        string        `yaml:"variant" toml:"variant"`
	TokenScale     float64       `yaml:"token_scale" toml:"token_scale"`         // Stone radius as a fraction of the bowl radius
	SettleDuration float64       `yaml:"settle_duration" toml:"settle_duration"` // Seconds for stones to ease into place
	Physics        PhysicsConfig `yaml:"physics" toml:"physics"`
	GroupDrop      DropConfig    `yaml:"group_drop" toml:"group_drop"`
	Annealing      AnnealConfig  `yaml:"annealing" toml:"annealing"`
	Grid           GridConfig    `yaml:"grid" toml:"grid"`
	Viewer         ViewerConfig  `yaml:"viewer" toml:"viewer"`

	// Source is the file the configuration was read from, or "embedded".
	Source string `yaml:"-" toml:"-"`
}

// PhysicsConfig defines the relaxation solver parameters.
type PhysicsConfig struct {
	RepulsionStrength    float64 `yaml:"repulsion_strength" toml:"repulsion_strength"`
	TargetSpacing        float64 `yaml:"target_spacing" toml:"target_spacing"` // In stone radii
	CenterPull           float64 `yaml:"center_pull" toml:"center_pull"`
	Iterations           int     `yaml:"iterations" toml:"iterations"`
	Damping              float64 `yaml:"damping" toml:"damping"`
	WallSoftness         float64 `yaml:"wall_softness" toml:"wall_softness"`
	WallStiffness        float64 `yaml:"wall_stiffness" toml:"wall_stiffness"`
	ConvergenceThreshold float64 `yaml:"convergence_threshold" toml:"convergence_threshold"`
	MaxStep              float64 `yaml:"max_step" toml:"max_step"`
}

// DropConfig defines the group-drop seeding.
type DropConfig struct {
	Radius         float64 `yaml:"radius" toml:"radius"`
	Range          float64 `yaml:"range" toml:"range"`
	RadialExponent float64 `yaml:"radial_exponent" toml:"radial_exponent"`
	OutwardPull    float64 `yaml:"outward_pull" toml:"outward_pull"`
	LensGain       float64 `yaml:"lens_gain" toml:"lens_gain"`
}

// AnnealConfig defines the energy-minimization schedule.
type AnnealConfig struct {
	Steps               int           `yaml:"steps" toml:"steps"`
	InitialTemperature  float64       `yaml:"initial_temperature" toml:"initial_temperature"`
	Cooling             float64       `yaml:"cooling" toml:"cooling"`
	MinTemperature      float64       `yaml:"min_temperature" toml:"min_temperature"`
	AcceptanceThreshold float64       `yaml:"acceptance_threshold" toml:"acceptance_threshold"`
	Greedy              bool          `yaml:"greedy" toml:"greedy"`
	StepSize            float64       `yaml:"step_size" toml:"step_size"`
	Weights             WeightsConfig `yaml:"weights" toml:"weights"`
}

// WeightsConfig scales the energy terms.
type WeightsConfig struct {
	Boundary float64 `yaml:"boundary" toml:"boundary"`
	Overlap  float64 `yaml:"overlap" toml:"overlap"`
	Cohesion float64 `yaml:"cohesion" toml:"cohesion"`
}

// GridConfig defines the jittered lattice.
type GridConfig struct {
	CellSpacing   float64 `yaml:"cell_spacing" toml:"cell_spacing"`
	Jitter        float64 `yaml:"jitter" toml:"jitter"`
	MaxRetries    int     `yaml:"max_retries" toml:"max_retries"`
	MinSeparation float64 `yaml:"min_separation" toml:"min_separation"`
}

// ViewerConfig defines the terminal viewer.
type ViewerConfig struct {
	TickRate      int    `yaml:"tick_rate" toml:"tick_rate"`
	Width         int    `yaml:"width" toml:"width"`
	Height        int    `yaml:"height" toml:"height"`
	ScreenshotDir string `yaml:"screenshot_dir" toml:"screenshot_dir"`
}

// Selection is the active variant plus its parameter bundle. It is
// comparable with ==.
type Selection struct {
	Variant        placement.Variant
	Settings       placement.Settings
	SettleDuration time.Duration
}

// Equal reports whether s and o are the same selection. Any difference,
// settle duration included, counts as a parameter change.
func (s Selection) Equal(o Selection) bool {
	return s == o
}

// WithVariant returns a copy of s using variant v.
func (s Selection) WithVariant(v placement.Variant) Selection {
	s.Variant = v
	return s
}

// Fingerprint returns a short stable identifier for the selection, used to
// group diagnostics rows.
func (s Selection) Fingerprint() string {
	id := uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "%+v", s))
	return id.String()[:8]
}

// DefaultSelection returns the selection built from the default config.
func DefaultSelection() Selection {
	sel, _ := Default().Selection()
	return sel
}

// Selection converts the configuration into an engine selection.
func (c Config) Selection() (Selection, error) {
	v, err := placement.ParseVariant(c.Variant)
	if err != nil {
		return Selection{}, fmt.Errorf("config: %w", err)
	}

	return Selection{
		Variant: v,
		Settings: placement.Settings{
			TokenScale: c.TokenScale,
			Physics: physics.Params{
				RepulsionStrength:    c.Physics.RepulsionStrength,
				TargetSpacing:        c.Physics.TargetSpacing,
				CenterPull:           c.Physics.CenterPull,
				Iterations:           c.Physics.Iterations,
				Damping:              c.Physics.Damping,
				WallSoftness:         c.Physics.WallSoftness,
				WallStiffness:        c.Physics.WallStiffness,
				ConvergenceThreshold: c.Physics.ConvergenceThreshold,
				MaxStep:              c.Physics.MaxStep,
			},
			Drop: placement.DropParams{
				Radius:         c.GroupDrop.Radius,
				Range:          c.GroupDrop.Range,
				RadialExponent: c.GroupDrop.RadialExponent,
				OutwardPull:    c.GroupDrop.OutwardPull,
				LensGain:       c.GroupDrop.LensGain,
			},
			Anneal: placement.AnnealParams{
				Steps:               c.Annealing.Steps,
				InitialTemperature:  c.Annealing.InitialTemperature,
				Cooling:             c.Annealing.Cooling,
				MinTemperature:      c.Annealing.MinTemperature,
				AcceptanceThreshold: c.Annealing.AcceptanceThreshold,
				Greedy:              c.Annealing.Greedy,
				StepSize:            c.Annealing.StepSize,
				Weights: physics.EnergyWeights{
					Boundary: c.Annealing.Weights.Boundary,
					Overlap:  c.Annealing.Weights.Overlap,
					Cohesion: c.Annealing.Weights.Cohesion,
				},
			},
			Grid: placement.GridParams{
				CellSpacing:   c.Grid.CellSpacing,
				Jitter:        c.Grid.Jitter,
				MaxRetries:    c.Grid.MaxRetries,
				MinSeparation: c.Grid.MinSeparation,
			},
		},
		SettleDuration: time.Duration(c.SettleDuration * float64(time.Second)),
	}, nil
}
