// arcade runs Trap Streets, a dodge-the-traffic mini-game, in the terminal.
//
// Usage:
//
//	arcade play              - Play in the local terminal
//	arcade menu              - Start menu with play and scoreboard
//	arcade sim               - Run a headless session and print the outcome
//	arcade scores            - Show recorded sessions
//	arcade serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible traffic
//	--db <path>          - Set database path (default: ~/.arcade/trapstreets.db)
//	--config <path>      - Load gameplay constants from YAML
//	--difficulty <name>  - Apply a preset: easy, normal, hard
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/trap-streets/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Trap Streets - dodge the traffic in your terminal",
	Long: `Trap Streets is a terminal mini-game: steer left and right at the
bottom of the street and dodge the falling traffic for 30 seconds.

Available commands:
  play     - Play directly
  menu     - Interactive menu with scoreboard
  sim      - Headless session, prints the outcome
  scores   - View recorded sessions
  serve    - Start SSH server for remote play

Examples:
  arcade play
  arcade play --difficulty hard
  arcade sim --no-spawn --seconds 5
  arcade serve --ssh :2222
  arcade scores --limit 20`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/trapstreets.db", "Path to sessions database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom gameplay config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "trapstreets",
		Level:           level,
	}), nil
}

// loadGameConfig loads the gameplay config and applies --difficulty.
func loadGameConfig() (config.DodgeConfig, config.DifficultyPreset, error) {
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return config.DodgeConfig{}, "", err
	}
	cfg, err := config.Load(flagConfig, preset)
	if err != nil {
		return config.DodgeConfig{}, "", err
	}
	return cfg, preset, nil
}
