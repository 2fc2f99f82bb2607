package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/davemarvit/SGFPlayer-sub000/internal/platform/tui"
	"github.com/davemarvit/SGFPlayer-sub000/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsPlain bool
	flagRunsClear bool
	flagRunsTrack string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse recorded diagnostics",
	Long: `Show the layout diagnostics recorded by 'bowls bench'. In a terminal this
opens an interactive board with one tab per algorithm; otherwise, or with
--plain, it prints a summary and the most recent rows.

Examples:
  bowls runs
  bowls runs --plain --limit 50
  bowls runs --clear`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Rows to print in plain mode")
	runsCmd.Flags().BoolVar(&flagRunsPlain, "plain", false, "Print instead of opening the board")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete every recorded run")
	runsCmd.Flags().StringVar(&flagRunsTrack, "track", "", "Restrict the summary to one track fingerprint")
}

func runRuns(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagRunsClear {
		if err := store.ClearRuns(); err != nil {
			return err
		}
		logger.Info("diagnostics cleared", "db", flagDBPath)
		return nil
	}

	if !flagRunsPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		rt := runtimeConfig()
		return tui.RunBoard(store, rt.ScreenW, rt.ScreenH)
	}
	return printRuns(store)
}

func printRuns(store *storage.Store) error {
	sums, err := store.Summaries(flagRunsTrack)
	if err != nil {
		return err
	}

	fmt.Println("Layout diagnostics")
	fmt.Println()
	if len(sums) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'bowls bench' to record some!")
		return nil
	}

	fmt.Printf("  %-10s  %6s  %9s  %8s  %8s  %8s  %10s  %s\n",
		"Algorithm", "Rows", "Converged", "Avg iter", "Avg sep", "Overlaps", "Avg time", "Last run")
	for _, s := range sums {
		fmt.Printf("  %-10s  %6d  %8.0f%%  %8.1f  %8.3f  %8d  %10s  %s\n",
			s.Variant, s.Runs, 100*s.ConvergedRatio, s.AvgIterations, s.AvgSeparation,
			s.TotalOverlaps, s.AvgDuration, s.LastRun.Format("2006-01-02 15:04"))
	}

	last, err := store.LastRunID()
	if err != nil {
		return err
	}
	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Most recent rows (latest run %s):\n", last)
	fmt.Printf("  %-10s  %5s  %-5s  %6s  %5s  %6s  %4s  %s\n",
		"Algorithm", "Move", "Kind", "Stones", "Iter", "Sep", "Ovl", "Time")
	for _, r := range runs {
		fmt.Printf("  %-10s  %5d  %-5s  %6d  %5d  %6.3f  %4d  %s\n",
			r.Variant, r.Move, r.Kind, r.Tokens, r.Iterations, r.MinSeparation, r.Overlaps, r.Duration)
	}
	return nil
}
