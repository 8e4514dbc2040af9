// suika is a merge-drop arcade game for the terminal.
//
// Usage:
//
//	suika play               - Play a run directly
//	suika menu               - Title menu with difficulty picker and scores
//	suika serve              - Start SSH server for remote play
//	suika scores             - Show high scores and run stats
//	suika tiers              - Show the active tier table
//	suika config             - Print the default YAML config
//	suika list               - List registered games
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log <path>          - Write a debug log of game events
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-suika/internal/core"
	"github.com/vovakirdan/tui-suika/internal/suika"
)

const gameID = "suika"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogPath    string

	// logFile is the open --log target, closed after the command runs.
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	closeLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "suika",
	Short: "Suika - drop and merge in your terminal",
	Long: `Suika is a merge-drop game for the terminal. Drop items into the
container; two touching items of the same tier merge into the next tier.
The run ends when the pile rests above the danger line for too long.

Available commands:
  play     - Play a run directly
  menu     - Title menu with difficulty picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  tiers    - Show the tier table
  config   - Print the default config

Examples:
  suika play
  suika play --difficulty hard
  suika menu --db ./scores.db
  suika serve --ssh :2222
  suika scores --recent`,
	PersistentPreRunE: configure,
	PersistentPostRun: func(_ *cobra.Command, _ []string) { closeLog() },
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write a debug log of game events to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(tiersCmd)
	rootCmd.AddCommand(configCmd)
}

// configure applies the global flags shared by every command.
func configure(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	suika.SetConfigPath(flagConfig)
	suika.SetDifficultyPreset(flagDifficulty)

	if flagLogPath == "" {
		return nil
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	closeLog()
	logFile = f
	suika.SetLogger(log.NewWithOptions(f, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		Prefix:          "suika",
	}))
	return nil
}

// closeLog detaches the game logger and closes the --log file, if any.
// It is safe to call more than once.
func closeLog() {
	if logFile == nil {
		return
	}
	suika.SetLogger(nil)
	_ = logFile.Close()
	logFile = nil
}

// runtimeConfig builds the runtime config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
