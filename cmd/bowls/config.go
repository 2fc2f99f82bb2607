package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/davemarvit/SGFPlayer-sub000/internal/config"
)

var flagConfigFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration every other command would use, after defaults,
the config file and --variant are applied. The output is a valid config file.

Examples:
  bowls config > ~/.bowls/bowls.yaml
  bowls config --format toml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		logger.Debug("printing config", "source", appConfig.Source, "format", flagConfigFormat)
		return config.Encode(os.Stdout, appConfig, flagConfigFormat)
	},
}

func init() {
	configCmd.Flags().StringVar(&flagConfigFormat, "format", "yaml", "Output format: yaml or toml")
}
