package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"

	"github.com/davemarvit/SGFPlayer-sub000/internal/config"
	"github.com/davemarvit/SGFPlayer-sub000/internal/core"
	"github.com/davemarvit/SGFPlayer-sub000/internal/placement"
	"github.com/davemarvit/SGFPlayer-sub000/internal/replay"
	"github.com/davemarvit/SGFPlayer-sub000/internal/storage"
	"github.com/davemarvit/SGFPlayer-sub000/internal/track"
)

var (
	flagBenchRadius float64
	flagBenchSeed   uint64
	flagBenchNoSave bool
)

var benchCmd = &cobra.Command{
	Use:   "bench [track]",
	Short: "Time every algorithm over a track",
	Long: `Replay a capture track once per placement algorithm and record, for every
move and bowl, how long the layout took and how well the stones spread.
Rows are stored in the diagnostics database; layouts are not.

Examples:
  bowls bench
  bowls bench game.yaml --radius 60
  bowls bench --no-save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBench,
}

func init() {
	benchCmd.Flags().Float64Var(&flagBenchRadius, "radius", 100, "Bowl radius")
	benchCmd.Flags().Uint64Var(&flagBenchSeed, "demo-seed", 1, "Seed of the demo track when no track is given")
	benchCmd.Flags().BoolVar(&flagBenchNoSave, "no-save", false, "Print the results without recording them")
}

func runBench(_ *cobra.Command, args []string) error {
	if !core.ValidRadius(flagBenchRadius) {
		return fmt.Errorf("--radius must be positive, got %v", flagBenchRadius)
	}
	tracks, err := loadTracks(args, flagBenchSeed)
	if err != nil {
		return err
	}
	t := tracks[0]
	runID := uuid.NewString()

	var all []storage.Run
	fmt.Printf("Benchmarking %q (%d moves), run %s\n\n", trackLabel(t), t.MoveCount(), runID)
	fmt.Printf("  %-18s  %8s  %9s  %8s  %8s  %9s\n", "Algorithm", "Layouts", "Converged", "Avg sep", "Overlaps", "Avg time")

	for _, v := range placement.Variants {
		runs, err := benchVariant(t, appSelection.WithVariant(v), runID)
		if err != nil {
			return err
		}
		printBenchLine(v, runs)
		all = append(all, runs...)
	}

	if flagBenchNoSave {
		return nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.SaveRuns(all); err != nil {
		return err
	}
	logger.Info("diagnostics recorded", "run", runID, "rows", len(all), "db", flagDBPath)
	return nil
}

// benchVariant replays t under sel and returns one row per computed bowl.
// Duration is the time of the whole seek, shared by both bowls of a move.
func benchVariant(t *track.Track, sel config.Selection, runID string) ([]storage.Run, error) {
	orch, err := replay.New(t.Fingerprint, sel, replay.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	orch.SetContainer(core.Black, flagBenchRadius, r2.Vec{})
	orch.SetContainer(core.White, flagBenchRadius, r2.Vec{})

	fp := sel.Fingerprint()
	runs := make([]storage.Run, 0, 2*t.MoveCount())
	for move := range t.MoveCount() {
		start := time.Now()
		frame := orch.Seek(move, replay.TargetsAt(t, move))
		elapsed := time.Since(start)

		for _, k := range core.Kinds {
			b := frame.Bowl(k)
			if b.Cached {
				continue
			}
			d := b.Diagnostic
			runs = append(runs, storage.Run{
				RunID:         runID,
				Track:         t.Fingerprint,
				Selection:     fp,
				Variant:       sel.Variant.String(),
				Move:          move,
				Kind:          k.String(),
				Tokens:        len(b.Tokens),
				Iterations:    d.Iterations,
				Converged:     d.Converged,
				RNGCalls:      int64(d.RNGCalls),
				Energy:        d.Energy,
				MinSeparation: d.Metrics.MinSeparation,
				Overlaps:      d.Metrics.Overlaps,
				Duration:      elapsed,
			})
		}
	}
	return runs, nil
}

// printBenchLine summarizes the rows of one algorithm.
func printBenchLine(v placement.Variant, runs []storage.Run) {
	if len(runs) == 0 {
		fmt.Printf("  %-18s  %8d\n", v.Title(), 0)
		return
	}

	var (
		seps      []float64
		durations = make([]float64, len(runs))
		converged int
		overlaps  int
	)
	for i, r := range runs {
		if r.Tokens > 1 {
			seps = append(seps, r.MinSeparation)
		}
		durations[i] = float64(r.Duration)
		if r.Converged {
			converged++
		}
		overlaps += r.Overlaps
	}

	avgSep := 0.0
	if len(seps) > 0 {
		avgSep = stat.Mean(seps, nil)
	}
	avg := time.Duration(stat.Mean(durations, nil)).Round(time.Microsecond)
	fmt.Printf("  %-18s  %8d  %8.0f%%  %8.3f  %8d  %9s\n",
		v.Title(), len(runs), 100*float64(converged)/float64(len(runs)), avgSep, overlaps, avg)
}
