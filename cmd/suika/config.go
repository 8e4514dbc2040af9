package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-suika/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default config",
	Long: `Print the embedded default YAML config. Save it to
~/.arcade/configs/suika.yaml or pass it with --config to customize.

Examples:
  suika config > ~/.arcade/configs/suika.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, err := os.Stdout.Write(config.GetDefaultYAML(gameID))
		return err
	},
}
