package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/davemarvit/SGFPlayer-sub000/internal/platform/tui"
)

// viewLogFile receives viewer logs when --verbose is set.
const viewLogFile = "bowls-debug.log"

var flagViewSeed uint64

var viewCmd = &cobra.Command{
	Use:   "view [tracks...]",
	Short: "Replay tracks in the terminal viewer",
	Long: `Open the interactive viewer. With several tracks a menu picks one; with
none the built-in demo is shown.

Controls:
  Right/l, Left/h   - Next / previous move
  PgDn/L, PgUp/H    - Ten moves forward / back
  Home/g, End/G     - First / last move
  v                 - Next placement algorithm
  Ctrl+S            - Save a text screenshot
  Esc/b             - Back to the track menu
  ?                 - All keys
  q/Ctrl+C          - Quit

With --verbose, logs are appended to bowls-debug.log.

Examples:
  bowls view
  bowls view game1.yaml game2.yaml
  bowls view --variant spiral`,
	RunE: runView,
}

func init() {
	viewCmd.Flags().Uint64Var(&flagViewSeed, "demo-seed", 1, "Seed of the demo track when no track is given")
}

func runView(_ *cobra.Command, args []string) error {
	tracks, err := loadTracks(args, flagViewSeed)
	if err != nil {
		return err
	}

	// The viewer owns the terminal, so logs go to a file, and only with --verbose.
	viewLogger := newLogger(io.Discard, log.InfoLevel)
	if flagVerbose {
		f, err := os.OpenFile(viewLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open %s: %w", viewLogFile, err)
		}
		defer f.Close()
		viewLogger = newLogger(f, log.DebugLevel)
	}

	return tui.RunSession(tui.SessionConfig{
		Tracks:    tracks,
		Selection: appSelection,
		Viewer: tui.ViewerOptions{
			Runtime:       runtimeConfig(),
			ScreenshotDir: appConfig.Viewer.ScreenshotDir,
			Logger:        viewLogger,
		},
	})
}
