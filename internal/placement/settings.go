package placement

import "github.com/davemarvit/SGFPlayer-sub000/internal/physics"

// DropParams tunes the group-drop seeding shared by GroupDrop and Energy.
type DropParams struct {
	Radius         float64 // Cluster radius around the drop point, in token radii
	Range          float64 // Farthest drop point as a fraction of the safe radius
	RadialExponent float64 // Exponent > 1 biases drop points toward the center
	OutwardPull    float64 // Outward displacement per relaxation step, in token radii
	LensGain       float64 // Extra repulsion at full overlap
}

// AnnealParams tunes the simulated annealing schedule.
type AnnealParams struct {
	Steps               int
	InitialTemperature  float64
	Cooling             float64 // Geometric factor applied each step
	MinTemperature      float64 // Annealing stops once T falls below this
	AcceptanceThreshold float64 // Uphill moves are only considered while T exceeds this
	Greedy              bool    // Never accept uphill moves
	StepSize            float64 // Candidate move length at T0, in token radii
	Weights             physics.EnergyWeights
}

// GridParams tunes the jittered lattice.
type GridParams struct {
	CellSpacing   float64 // Lattice pitch in token diameters
	Jitter        float64 // Jitter disk radius, in token radii
	MaxRetries    int     // Attempts per token before keeping the best one
	MinSeparation float64 // Acceptable nearest distance, in token radii
}

// Settings is the full parameter set for every strategy.
type Settings struct {
	TokenScale float64 // Token radius as a fraction of the bowl radius
	Physics    physics.Params
	Drop       DropParams
	Anneal     AnnealParams
	Grid       GridParams
}

// DefaultSettings returns the tuned defaults.
func DefaultSettings() Settings {
	return Settings{
		TokenScale: 0.09,
		Physics:    physics.DefaultParams(),
		Drop: DropParams{
			Radius:         2.5,
			Range:          0.6,
			RadialExponent: 1.5,
			OutwardPull:    0.02,
			LensGain:       0.5,
		},
		Anneal: AnnealParams{
			Steps:               160,
			InitialTemperature:  0.05,
			Cooling:             0.96,
			MinTemperature:      1e-4,
			AcceptanceThreshold: 0.002,
			StepSize:            0.6,
			Weights:             physics.DefaultEnergyWeights(),
		},
		Grid: GridParams{
			CellSpacing:   1.15,
			Jitter:        0.25,
			MaxRetries:    6,
			MinSeparation: 1.9,
		},
	}
}
