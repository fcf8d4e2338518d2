package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trap-streets/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one round after another in this terminal",
	Long: `Play Trap Streets in this terminal.

Steer at the bottom of the street and stay clear of the traffic for 30
seconds. Every finished round is saved to the sessions database under
your user name.

Keys:
  ←/a  →/d   steer
  r          next round once this one is over
  ctrl+s     dump the screen to ~/.arcade/screenshots
  esc/q      leave

Use --difficulty easy|normal|hard for a preset, --config for your own
YAML constants and --seed to replay the same traffic.

Examples:
  arcade play
  arcade play --difficulty hard --seed 42
  arcade play --config ./my-streets.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	l, err := openLocal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if l.store == nil {
		fmt.Fprintln(os.Stderr, "Warning: sessions database unavailable, rounds will not be saved")
	}

	_, err = tui.Run(l.game, l.store, l.runtime(), l.opts)
	l.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
