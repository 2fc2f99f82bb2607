package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/davemarvit/SGFPlayer-sub000/internal/core"
	"github.com/davemarvit/SGFPlayer-sub000/internal/export"
	"github.com/davemarvit/SGFPlayer-sub000/internal/replay"
	"github.com/davemarvit/SGFPlayer-sub000/internal/track"
)

var (
	flagReplayCSV    string
	flagReplayRadius float64
	flagReplayScrub  bool
	flagReplaySeed   uint64
)

var replayCmd = &cobra.Command{
	Use:   "replay [track]",
	Short: "Walk a capture track move by move",
	Long: `Replay a capture track from the first move to the last, laying out both
bowls at every move. Without a track the built-in demo is used.

With --scrub the walk goes back to the start afterwards; every move on the
way back is restored from the cache, which the final statistics show.

Examples:
  bowls replay game.yaml
  bowls replay game.yaml --csv layouts.csv
  bowls replay --scrub --variant energy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayCSV, "csv", "", "Write every move's positions as CSV to this file (- for stdout)")
	replayCmd.Flags().Float64Var(&flagReplayRadius, "radius", 100, "Bowl radius")
	replayCmd.Flags().BoolVar(&flagReplayScrub, "scrub", false, "Walk back to the first move after reaching the last")
	replayCmd.Flags().Uint64Var(&flagReplaySeed, "demo-seed", 1, "Seed of the demo track when no track is given")
}

func runReplay(_ *cobra.Command, args []string) error {
	if !core.ValidRadius(flagReplayRadius) {
		return fmt.Errorf("--radius must be positive, got %v", flagReplayRadius)
	}
	tracks, err := loadTracks(args, flagReplaySeed)
	if err != nil {
		return err
	}
	t := tracks[0]

	orch, err := replay.New(t.Fingerprint, appSelection, replay.WithLogger(logger))
	if err != nil {
		return err
	}
	orch.SetContainer(core.Black, flagReplayRadius, r2.Vec{})
	orch.SetContainer(core.White, flagReplayRadius, r2.Vec{X: 2.5 * flagReplayRadius})

	var (
		out    io.Writer = os.Stdout
		csvOut *export.Writer
	)
	if flagReplayCSV != "" {
		if flagReplayCSV != "-" {
			f, err := os.Create(flagReplayCSV)
			if err != nil {
				return fmt.Errorf("cannot create %s: %w", flagReplayCSV, err)
			}
			defer f.Close()
			out = f
		}
		csvOut = export.NewWriter(out)
	} else {
		fmt.Printf("Replaying %q (%d moves) with %s\n\n", t.Name, t.MoveCount(), appSelection.Variant.Title())
		fmt.Printf("  %-5s  %-6s  %-6s  %-8s  %s\n", "Move", "Black", "White", "Source", "Iterations")
	}

	moves := walkOrder(t.MoveCount(), flagReplayScrub)
	for _, move := range moves {
		frame := orch.Seek(move, replay.TargetsAt(t, move))
		if csvOut != nil {
			if err := csvOut.WriteFrame(frame); err != nil {
				return err
			}
			continue
		}
		printFrameLine(frame)
	}

	s := orch.Stats()
	logger.Info("replay finished",
		"track", trackLabel(t),
		"seeks", s.Seeks,
		"computed", s.Computes,
		"cache_hits", s.CacheHits,
		"rng_draws", s.RNGCalls,
		"cached_layouts", s.Cache.Entries,
	)
	return nil
}

// walkOrder lists the moves to visit: forward, then back when scrubbing.
func walkOrder(n int, scrub bool) []int {
	moves := make([]int, 0, 2*n)
	for m := range n {
		moves = append(moves, m)
	}
	if scrub {
		for m := n - 2; m >= 0; m-- {
			moves = append(moves, m)
		}
	}
	return moves
}

// printFrameLine prints one row of the replay table.
func printFrameLine(f replay.Frame) {
	black, white := f.Bowl(core.Black), f.Bowl(core.White)
	source := "computed"
	if black.Cached && white.Cached {
		source = "cached"
	}
	iters := fmt.Sprintf("%d/%d", black.Diagnostic.Iterations, white.Diagnostic.Iterations)
	if source == "cached" {
		iters = "-"
	}
	fmt.Printf("  %-5d  %-6d  %-6d  %-8s  %s\n", f.Move, len(black.Tokens), len(white.Tokens), source, iters)
}

// trackLabel names a track in logs and diagnostics rows.
func trackLabel(t *track.Track) string {
	if t.Name != "" {
		return t.Name
	}
	return t.Fingerprint
}
