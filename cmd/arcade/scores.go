package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trap-streets/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded sessions",
	Long: `Display the best recorded sessions. Wins rank above losses, then
longer survival times.

Examples:
  arcade scores
  arcade scores --limit 20
  arcade scores --recent
  arcade scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of sessions to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest sessions instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded sessions")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening sessions database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearSessions(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		fmt.Println("All sessions deleted.")
		return
	}

	title := "Top Sessions"
	var sessions []storage.SessionRecord
	if flagScoresRecent {
		title = "Recent Sessions"
		sessions, err = store.RecentSessions(flagScoresLimit)
	} else {
		sessions, err = store.TopSessions(flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	fmt.Printf("Trap Streets - %s\n", title)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'arcade play' to set the first record!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-6s  %-6s  %-7s  %s\n", "Rank", "Player", "Result", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-12s  %-6s  %-6s  %-7s  %s\n", "----", "------", "------", "-----", "-----", "----")

	for i, s := range sessions {
		level := s.Difficulty
		if level == "" {
			level = "-"
		}
		fmt.Printf("  %-4d  %-12s  %-6s  %-6s  %-7s  %s\n",
			i+1, s.Player, s.Result(), fmt.Sprintf("%ds", s.Score), level,
			s.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err == nil {
		fmt.Println()
		fmt.Printf("Played: %d  Wins: %d  Best: %ds  Average: %.1fs\n",
			stats.Played, stats.Wins, stats.HighScore, stats.AvgScore)
	}
}
