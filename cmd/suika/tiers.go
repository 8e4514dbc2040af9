package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-suika/internal/config"
	"github.com/vovakirdan/tui-suika/internal/suika"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Show the tier table",
	Long: `Print the tier table from the active config: display label,
world radius, color and points awarded for merging into the tier.

Examples:
  suika tiers
  suika tiers --config ./my-suika.yaml`,
	Args: cobra.NoArgs,
	Run:  runTiers,
}

func runTiers(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadSuika(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	tiers, err := suika.TiersFromConfig(cfg.Tiers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	settings := suika.SettingsFromConfig(cfg)
	points := cfg.Rules.MergeMultiplier

	fmt.Printf("  %-4s  %-8s  %-7s  %-6s  %s\n", "Tier", "Radius", "Color", "Merge", "Label")
	fmt.Printf("  %-4s  %-8s  %-7s  %-6s  %s\n", "----", "------", "-----", "-----", "-----")
	for i := 0; i < tiers.Count(); i++ {
		t := tiers.At(i)
		merge := "-"
		if i > 0 {
			// Points for the merge that produces this tier
			merge = fmt.Sprintf("%d", t.Score*points)
		}
		fmt.Printf("  %-4d  %-8.1f  %-7s  %-6s  %s\n", i+1, settings.WorldRadius(t), t.Hex, merge, t.Label)
	}
	fmt.Println()
	fmt.Printf("Drops come from the lowest %d tiers.\n", cfg.Spawn.RandomTiers)
}
