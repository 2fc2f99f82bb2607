package config

import (
	_ "embed"

	"github.com/davemarvit/SGFPlayer-sub000/internal/placement"
)

//go:embed defaults/bowls.yaml
var defaultBowlsYAML []byte

// Default returns the hardcoded default configuration. It matches the
// embedded defaults/bowls.yaml.
func Default() Config {
	s := placement.DefaultSettings()
	return Config{
		Variant:        placement.GroupDrop.String(),
		TokenScale:     s.TokenScale,
		SettleDuration: 0.6,
		Physics: PhysicsConfig{
			RepulsionStrength:    s.Physics.RepulsionStrength,
			TargetSpacing:        s.Physics.TargetSpacing,
			CenterPull:           s.Physics.CenterPull,
			Iterations:           s.Physics.Iterations,
			Damping:              s.Physics.Damping,
			WallSoftness:         s.Physics.WallSoftness,
			WallStiffness:        s.Physics.WallStiffness,
			ConvergenceThreshold: s.Physics.ConvergenceThreshold,
			MaxStep:              s.Physics.MaxStep,
		},
		GroupDrop: DropConfig{
			Radius:         s.Drop.Radius,
			Range:          s.Drop.Range,
			RadialExponent: s.Drop.RadialExponent,
			OutwardPull:    s.Drop.OutwardPull,
			LensGain:       s.Drop.LensGain,
		},
		Annealing: AnnealConfig{
			Steps:               s.Anneal.Steps,
			InitialTemperature:  s.Anneal.InitialTemperature,
			Cooling:             s.Anneal.Cooling,
			MinTemperature:      s.Anneal.MinTemperature,
			AcceptanceThreshold: s.Anneal.AcceptanceThreshold,
			Greedy:              s.Anneal.Greedy,
			StepSize:            s.Anneal.StepSize,
			Weights: WeightsConfig{
				Boundary: s.Anneal.Weights.Boundary,
				Overlap:  s.Anneal.Weights.Overlap,
				Cohesion: s.Anneal.Weights.Cohesion,
			},
		},
		Grid: GridConfig{
			CellSpacing:   s.Grid.CellSpacing,
			Jitter:        s.Grid.Jitter,
			MaxRetries:    s.Grid.MaxRetries,
			MinSeparation: s.Grid.MinSeparation,
		},
		Viewer: ViewerConfig{
			TickRate:      30,
			Width:         80,
			Height:        24,
			ScreenshotDir: ".",
		},
		Source: "default",
	}
}
