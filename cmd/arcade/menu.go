package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trap-streets/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the title menu",
	Long: `Open the title menu with Play, Scoreboard and Quit.

Esc from a round or from the scoreboard comes back here.

Keys:
  ↑/↓ (k/j, w/s)   move
  enter/space      select
  tab              scoreboard
  q                quit

Examples:
  arcade menu
  arcade menu --fps 30 --db ./sessions.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	l, err := openLocal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer l.Close()

	if err := menuLoop(l); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

// menuLoop shows the menu until the user quits from any screen.
func menuLoop(l *localSession) error {
	for {
		rt := l.runtime()
		choice, err := tui.RunMenu(l.store, rt.ScreenW, rt.ScreenH)
		if err != nil {
			return err
		}

		var back bool
		switch choice {
		case tui.ChoicePlay:
			back, err = tui.Run(l.game, l.store, rt, l.opts)
		case tui.ChoiceScoreboard:
			back, err = tui.RunScoreboard(l.store, rt.ScreenW, rt.ScreenH)
		}
		if err != nil || !back {
			return err
		}
	}
}
