// bowls lays out captured stones in the two bowls beside a Go board and
// replays the layouts move by move.
//
// Usage:
//
//	bowls algorithms            - List placement algorithms
//	bowls layout                - Lay out one pair of bowls
//	bowls replay [track]        - Walk a capture track, printing or exporting layouts
//	bowls bench [track]         - Time every algorithm over a track and record diagnostics
//	bowls runs                  - Browse recorded diagnostics
//	bowls view [tracks...]      - Replay tracks in the terminal viewer
//	bowls serve [tracks...]     - Serve the viewer over SSH
//	bowls demo                  - Write the built-in demo track
//	bowls config                - Print the effective configuration
//
// Global flags:
//
//	--config <path>   - Config file (default: search ~/.bowls, ./configs, then built-in)
//	--variant <name>  - Override the configured algorithm
//	--db <path>       - Diagnostics database (default: ~/.bowls/runs.db)
//	--verbose         - Debug logging
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/davemarvit/SGFPlayer-sub000/internal/config"
	"github.com/davemarvit/SGFPlayer-sub000/internal/placement"
)

var (
	// Global flags
	flagConfig  string
	flagVariant string
	flagDBPath  string
	flagVerbose bool

	// Set by loadConfig before any subcommand runs.
	appConfig    config.Config
	appSelection config.Selection
	logger       *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bowls",
	Short: "Captured-stone bowl layouts for Go game replays",
	Long: `bowls places captured stones in the two bowls beside a Go board so they
look naturally scattered, grow and shrink move by move, and come back
exactly the same when you scrub through a game.

Available commands:
  algorithms - Show the placement algorithms
  layout     - Lay out one pair of bowls
  replay     - Walk a capture track move by move
  bench      - Time every algorithm over a track
  runs       - Browse recorded diagnostics
  view       - Interactive terminal viewer
  serve      - Serve the viewer over SSH
  demo       - Write the built-in demo track
  config     - Print the effective configuration

Examples:
  bowls layout --black 12 --white 5
  bowls replay game.yaml --csv layouts.csv
  bowls view --variant energy
  bowls bench game.yaml && bowls runs`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a bowls config file (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagVariant, "variant", "", "Placement algorithm (overrides the config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bowls/runs.db", "Path to diagnostics database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(algorithmsCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates a logger writing to w at the given level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Prefix:          "bowls",
		Level:           level,
	})
}

// loadConfig builds the logger, then loads and normalizes the configuration.
// Out-of-range values fall back to their defaults with a warning.
func loadConfig(cmd *cobra.Command, _ []string) error {
	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	logger = newLogger(os.Stderr, level)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagVariant != "" {
		if _, err := placement.ParseVariant(flagVariant); err != nil {
			return fmt.Errorf("--variant: %w", err)
		}
		cfg.Variant = flagVariant
	}
	for _, field := range cfg.Normalize() {
		logger.Warn("config value out of range, using default", "field", field, "source", cfg.Source)
	}

	sel, err := cfg.Selection()
	if err != nil {
		return err
	}
	appConfig, appSelection = cfg, sel
	logger.Debug("config loaded", "source", cfg.Source, "variant", sel.Variant, "selection", sel.Fingerprint())
	return nil
}
