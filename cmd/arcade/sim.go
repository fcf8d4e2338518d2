package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/trap-streets/internal/config"
	"github.com/vovakirdan/trap-streets/internal/core"
	"github.com/vovakirdan/trap-streets/internal/dodge"
	"github.com/vovakirdan/trap-streets/internal/storage"
)

var (
	flagSimSeconds  int
	flagSimNoSpawn  bool
	flagSimRealtime bool
	flagSimShow     bool
	flagSimSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless session",
	Long: `Run a session without a terminal UI and no player input, then print
the outcome.

By default the session runs on a simulated clock, one frame per --fps
step, so a 30 second session finishes instantly and the same --seed
always gives the same result. --realtime runs it on the wall clock.

Examples:
  arcade sim --seed 42
  arcade sim --no-spawn --seconds 5
  arcade sim --realtime --seconds 3 --show`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimSeconds, "seconds", 0, "Win time in seconds (0 = from config)")
	simCmd.Flags().BoolVar(&flagSimNoSpawn, "no-spawn", false, "Disable obstacle spawning")
	simCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Run on the wall clock")
	simCmd.Flags().BoolVar(&flagSimShow, "show", false, "Print the final frame")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the session in the database")
}

// SimResult is the outcome of a headless session.
type SimResult struct {
	SessionID string
	Won       bool
	Score     int
	Frames    int
}

func runSim(_ *cobra.Command, _ []string) {
	cfg, preset, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagSimSeconds > 0 {
		cfg.Rules.WinSeconds = flagSimSeconds
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	screen := core.NewScreen(core.DefaultScreenW, core.DefaultScreenH)
	surface := dodge.NewScreenSurface(screen, cfg.Canvas.Width, cfg.Canvas.Height)

	opts := []dodge.Option{
		dodge.WithLogger(logger),
		dodge.WithSeed(flagSeed),
	}
	if flagSimNoSpawn {
		opts = append(opts, dodge.WithoutSpawning())
	}

	var res SimResult
	if flagSimRealtime {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		res, err = simulateRealtime(ctx, cfg, surface, flagFPS, opts...)
	} else {
		res, err = simulate(cfg, surface, flagFPS, opts...)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagSimShow {
		fmt.Println(screen.String())
	}

	result := "lost"
	if res.Won {
		result = "won"
	}
	fmt.Printf("Session %s: %s, score %d after %d frames\n", res.SessionID, result, res.Score, res.Frames)

	if flagSimSave {
		saveSim(logger, res, string(preset))
	}
}

// simulate runs a session on a fake clock, advancing it by one frame
// interval before each frame.
func simulate(cfg config.DodgeConfig, surface dodge.Surface, fps int, opts ...dodge.Option) (SimResult, error) {
	if fps <= 0 {
		fps = 60
	}
	clock := dodge.NewFakeClock(time.Now())
	queue := dodge.NewFrameQueue()

	var res SimResult
	done := false
	opts = append(opts, dodge.WithClock(clock), dodge.WithScheduler(queue))
	driver := dodge.NewDriver(cfg, opts...)
	cleanup, err := driver.Start(surface, func(won bool, score int) {
		res.Won, res.Score = won, score
		done = true
	}, nil)
	if err != nil {
		return res, err
	}
	defer cleanup()

	step := time.Second / time.Duration(fps)
	// The session is decided by the win time at the latest
	maxFrames := (cfg.Rules.WinSeconds + 1) * fps
	for i := 0; !done && i < maxFrames; i++ {
		clock.Advance(step)
		queue.Fire()
	}
	if !done {
		return res, fmt.Errorf("session did not finish after %d frames", maxFrames)
	}

	res.SessionID = driver.SessionID()
	res.Frames = driver.Frames()
	return res, nil
}

// simulateRealtime runs a session on the wall clock and blocks until it
// finishes or ctx is canceled.
func simulateRealtime(ctx context.Context, cfg config.DodgeConfig, surface dodge.Surface, fps int, opts ...dodge.Option) (SimResult, error) {
	outcome := make(chan SimResult, 1)

	opts = append(opts, dodge.WithScheduler(dodge.NewTickerScheduler(fps)))
	driver := dodge.NewDriver(cfg, opts...)
	cleanup, err := driver.Start(surface, func(won bool, score int) {
		outcome <- SimResult{Won: won, Score: score}
	}, nil)
	if err != nil {
		return SimResult{}, err
	}
	defer cleanup()

	select {
	case res := <-outcome:
		res.SessionID = driver.SessionID()
		res.Frames = driver.Frames()
		return res, nil
	case <-ctx.Done():
		return SimResult{}, fmt.Errorf("session interrupted: %w", ctx.Err())
	}
}

func saveSim(logger *log.Logger, res SimResult, difficulty string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open sessions database", "path", flagDBPath, "error", err)
		return
	}
	defer store.Close()

	_, err = store.SaveSession(storage.SessionRecord{
		SessionID:  res.SessionID,
		Player:     "sim",
		Won:        res.Won,
		Score:      res.Score,
		Difficulty: difficulty,
	})
	if err != nil {
		logger.Warn("could not save session", "session", res.SessionID, "error", err)
	}
}
