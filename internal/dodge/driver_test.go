package dodge

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/trap-streets/internal/config"
	"github.com/vovakirdan/trap-streets/internal/core"
)

const frameDur = time.Second / 60

// recordingSurface is a fixed-size surface that keeps every frame.
type recordingSurface struct {
	w, h   float64
	frames []Frame
}

func (s *recordingSurface) Size() (float64, float64) { return s.w, s.h }
func (s *recordingSurface) Draw(f Frame)             { s.frames = append(s.frames, f) }

func (s *recordingSurface) last() Frame { return s.frames[len(s.frames)-1] }

type outcome struct {
	won   bool
	score int
}

// recorder collects callback invocations in order.
type recorder struct {
	mu       sync.Mutex
	outcomes []outcome
	progress [][2]int
	events   []string
}

func (r *recorder) onOutcome(won bool, score int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome{won, score})
	r.events = append(r.events, "outcome")
}

func (r *recorder) onProgress(score, remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, [2]int{score, remaining})
	r.events = append(r.events, "progress")
}

type harness struct {
	driver  *Driver
	queue   *FrameQueue
	clock   *FakeClock
	keys    *core.KeyState
	surface *recordingSurface
	rec     *recorder
	cleanup func()
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		queue:   NewFrameQueue(),
		clock:   NewFakeClock(time.Unix(1700000000, 0)),
		keys:    core.NewKeyState(),
		surface: &recordingSurface{w: 600, h: 400},
		rec:     &recorder{},
	}
	base := []Option{WithClock(h.clock), WithScheduler(h.queue), WithInput(h.keys), WithSeed(42)}
	h.driver = NewDriver(config.DefaultDodgeConfig(), append(base, opts...)...)

	cleanup, err := h.driver.Start(h.surface, h.rec.onOutcome, h.rec.onProgress)
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	h.cleanup = cleanup
	return h
}

// run advances the clock and fires frames until nothing is scheduled or
// max frames have run. It returns the number of frames fired.
func (h *harness) run(max int) int {
	n := 0
	for n < max {
		h.clock.Advance(frameDur)
		if !h.queue.Fire() {
			break
		}
		n++
	}
	return n
}

func TestDriverWinsAfterWinTime(t *testing.T) {
	h := newHarness(t, WithoutSpawning())

	h.run(5000)

	if len(h.rec.outcomes) != 1 {
		t.Fatalf("outcome reported %d times, expected 1", len(h.rec.outcomes))
	}
	if got := h.rec.outcomes[0]; got != (outcome{won: true, score: 30}) {
		t.Errorf("outcome = %+v, expected won with score 30", got)
	}
	if h.driver.Phase() != PhaseWon {
		t.Errorf("Phase() = %v, expected won", h.driver.Phase())
	}
	if h.queue.Pending() {
		t.Error("No frame should be scheduled after the outcome")
	}
	if h.rec.events[len(h.rec.events)-1] != "outcome" {
		t.Error("No progress report should follow the outcome")
	}
	if last := h.surface.last(); last.Phase != PhaseWon || last.Score != 30 {
		t.Errorf("last frame = %v/%d, expected terminal overlay for a win", last.Phase, last.Score)
	}

	// Progress counts down from 30
	first := h.rec.progress[0]
	if first != [2]int{0, 30} {
		t.Errorf("first progress = %v, expected [0 30]", first)
	}
	lastProgress := h.rec.progress[len(h.rec.progress)-1]
	if lastProgress != [2]int{30, 0} {
		t.Errorf("last progress = %v, expected [30 0]", lastProgress)
	}
}

func TestDriverLosesOnObstacle(t *testing.T) {
	h := newHarness(t, WithoutSpawning())

	// Player sits at (285, 360); this obstacle falls straight onto it
	if !h.driver.Inject(Obstacle{X: 280, Y: -20, Width: 40, Height: 20, Speed: 3}) {
		t.Fatal("Inject() rejected the obstacle")
	}

	frames := h.run(5000)

	if frames != 121 {
		t.Errorf("collision after %d frames, expected 121", frames)
	}
	if len(h.rec.outcomes) != 1 {
		t.Fatalf("outcome reported %d times, expected 1", len(h.rec.outcomes))
	}
	if got := h.rec.outcomes[0]; got != (outcome{won: false, score: 2}) {
		t.Errorf("outcome = %+v, expected lost with score 2", got)
	}
	if len(h.rec.progress) != frames {
		t.Errorf("progress reported %d times, expected once per frame (%d)", len(h.rec.progress), frames)
	}

	// Nothing happens after the outcome
	before := len(h.rec.events)
	h.run(100)
	if len(h.rec.events) != before {
		t.Error("Callbacks fired after the session ended")
	}
	if h.keys.Attached() {
		t.Error("Input should be detached after the session ended")
	}
}

func TestDriverCollisionBeatsWinTime(t *testing.T) {
	h := newHarness(t, WithoutSpawning())

	// Jump straight to the win time with an obstacle resting on the player
	h.clock.Advance(30 * time.Second)
	h.driver.Inject(Obstacle{X: 290, Y: 365, Width: 40, Height: 20, Speed: 0})
	h.queue.Fire()

	if len(h.rec.outcomes) != 1 {
		t.Fatalf("outcome reported %d times, expected 1", len(h.rec.outcomes))
	}
	if got := h.rec.outcomes[0]; got != (outcome{won: false, score: 30}) {
		t.Errorf("outcome = %+v, expected lost with score 30", got)
	}
	if h.driver.Phase() != PhaseLost {
		t.Errorf("Phase() = %v, expected lost", h.driver.Phase())
	}
}

func TestDriverCleanupIsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.run(5)

	h.cleanup()
	h.cleanup()

	if h.driver.Phase() != PhaseStopped {
		t.Errorf("Phase() = %v, expected stopped", h.driver.Phase())
	}
	if h.queue.Pending() {
		t.Error("Cleanup should cancel the pending frame")
	}
	if h.keys.Attached() {
		t.Error("Cleanup should detach input")
	}

	events := len(h.rec.events)
	h.run(10)
	if len(h.rec.events) != events {
		t.Error("Callbacks fired after cleanup")
	}
	if len(h.rec.outcomes) != 0 {
		t.Error("Cleanup must not report an outcome")
	}
}

func TestDriverCleanupAfterOutcome(t *testing.T) {
	h := newHarness(t, WithoutSpawning())
	h.run(5000)

	h.cleanup()
	h.cleanup()

	if h.driver.Phase() != PhaseWon {
		t.Errorf("Phase() = %v, cleanup should not change a finished session", h.driver.Phase())
	}
	if len(h.rec.outcomes) != 1 {
		t.Errorf("outcome reported %d times, expected 1", len(h.rec.outcomes))
	}
}

func TestDriverCleanupFromOutcomeCallback(t *testing.T) {
	queue := NewFrameQueue()
	clock := NewFakeClock(time.Unix(0, 0))
	d := NewDriver(config.DefaultDodgeConfig(), WithClock(clock), WithScheduler(queue), WithoutSpawning())

	var cleanup func()
	calls := 0
	cleanup, err := d.Start(&recordingSurface{w: 600, h: 400}, func(bool, int) {
		calls++
		cleanup()
	}, nil)
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	clock.Advance(31 * time.Second)
	queue.Fire()

	if calls != 1 {
		t.Errorf("onOutcome called %d times, expected 1", calls)
	}
}

func TestDriverCleanupMidFrame(t *testing.T) {
	queue := NewFrameQueue()
	clock := NewFakeClock(time.Unix(0, 0))
	d := NewDriver(config.DefaultDodgeConfig(), WithClock(clock), WithScheduler(queue), WithoutSpawning())

	var cleanup func()
	progress := 0
	cleanup, err := d.Start(&recordingSurface{w: 600, h: 400}, nil, func(int, int) {
		progress++
		cleanup()
	})
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	clock.Advance(frameDur)
	queue.Fire()

	if progress != 1 {
		t.Errorf("in-flight frame should complete, got %d progress calls", progress)
	}
	if queue.Pending() {
		t.Error("No frame should be scheduled after cleanup")
	}
}

func TestDriverInvalidSurface(t *testing.T) {
	var nilScreen *ScreenSurface

	tests := []struct {
		name    string
		surface Surface
	}{
		{"nil surface", nil},
		{"typed nil surface", nilScreen},
		{"screen surface without screen", NewScreenSurface(nil, 600, 400)},
		{"zero size", &recordingSurface{w: 0, h: 400}},
		{"negative size", &recordingSurface{w: 600, h: -1}},
		{"narrower than obstacle", &recordingSurface{w: 35, h: 400}},
		{"shorter than player", &recordingSurface{w: 600, h: 20}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			queue := NewFrameQueue()
			keys := core.NewKeyState()
			d := NewDriver(config.DefaultDodgeConfig(), WithScheduler(queue), WithInput(keys))

			cleanup, err := d.Start(tc.surface, nil, nil)
			if !errors.Is(err, ErrInvalidSurface) {
				t.Fatalf("Start() error = %v, expected ErrInvalidSurface", err)
			}
			if cleanup != nil {
				t.Error("Start() should not return a cleanup function on failure")
			}
			if queue.Pending() {
				t.Error("No frame should be scheduled")
			}
			if keys.Attached() {
				t.Error("Input should not be attached")
			}
			if d.Phase() != PhaseIdle {
				t.Errorf("Phase() = %v, expected idle", d.Phase())
			}
		})
	}
}

func TestDriverStartTwice(t *testing.T) {
	h := newHarness(t)
	_, err := h.driver.Start(h.surface, nil, nil)
	if !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start() error = %v, expected ErrAlreadyStarted", err)
	}
}

func TestDriverInitialState(t *testing.T) {
	h := newHarness(t)

	f := h.driver.Snapshot()
	if f.Phase != PhaseRunning {
		t.Errorf("Phase = %v, expected running", f.Phase)
	}
	if f.Player.X != 285 || f.Player.Y != 360 {
		t.Errorf("player at (%v, %v), expected (285, 360)", f.Player.X, f.Player.Y)
	}
	if len(f.Obstacles) != 0 || f.Score != 0 {
		t.Errorf("expected empty obstacles and zero score, got %d / %d", len(f.Obstacles), f.Score)
	}
	if !h.keys.Attached() {
		t.Error("Start should attach input")
	}
	if h.driver.SessionID() == "" {
		t.Error("SessionID() should be set after Start")
	}
	if !h.queue.Pending() {
		t.Error("Start should schedule the first frame")
	}
}

func TestDriverPlayerFollowsKeys(t *testing.T) {
	h := newHarness(t, WithoutSpawning())

	h.keys.Press(KeyArrowRight)
	h.run(2)
	if x := h.driver.Snapshot().Player.X; x != 295 {
		t.Errorf("after two frames right X = %v, expected 295", x)
	}

	h.keys.Press(KeyA)
	h.run(1)
	if x := h.driver.Snapshot().Player.X; x != 295 {
		t.Errorf("holding both directions X = %v, expected 295", x)
	}

	h.keys.Release(KeyArrowRight)
	h.run(100)
	if x := h.driver.Snapshot().Player.X; x != 0 {
		t.Errorf("after holding left X = %v, expected clamp to 0", x)
	}
}

func TestDriverSpawnIsFrameRateIndependent(t *testing.T) {
	// Same wall time, very different frame counts
	for _, step := range []time.Duration{time.Millisecond, 10 * time.Millisecond, 250 * time.Millisecond} {
		queue := NewFrameQueue()
		clock := NewFakeClock(time.Unix(0, 0))
		d := NewDriver(config.DefaultDodgeConfig(), WithClock(clock), WithScheduler(queue), WithSeed(3))
		if _, err := d.Start(&recordingSurface{w: 600, h: 400}, nil, nil); err != nil {
			t.Fatalf("Start() failed: %v", err)
		}

		for elapsed := time.Duration(0); elapsed < 1050*time.Millisecond; elapsed += step {
			clock.Advance(step)
			queue.Fire()
			if elapsed+step <= time.Second {
				if got := len(d.Snapshot().Obstacles); got != 0 {
					t.Fatalf("step %v: %d obstacles before the interval passed", step, got)
				}
			}
		}

		if d.Phase() != PhaseRunning {
			t.Fatalf("step %v: session ended early (%v)", step, d.Phase())
		}
		if got := len(d.Snapshot().Obstacles); got != 1 {
			t.Errorf("step %v: %d obstacles after 1.05s, expected 1", step, got)
		}
	}
}

func TestDriversAreIndependent(t *testing.T) {
	a := newHarness(t, WithoutSpawning())
	b := newHarness(t, WithoutSpawning())

	a.keys.Press(KeyArrowLeft)
	a.run(3)
	b.run(3)

	if a.driver.SessionID() == b.driver.SessionID() {
		t.Error("sessions should have distinct IDs")
	}
	if a.driver.Snapshot().Player.X == b.driver.Snapshot().Player.X {
		t.Error("input on one driver should not move the other player")
	}
}

func TestDriverWithTickerScheduler(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	cfg.Rules.WinSeconds = 1

	done := make(chan outcome, 1)
	d := NewDriver(cfg, WithScheduler(NewTickerScheduler(120)), WithoutSpawning())
	cleanup, err := d.Start(&lockedSurface{w: 600, h: 400}, func(won bool, score int) {
		done <- outcome{won, score}
	}, nil)
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	defer cleanup()

	select {
	case got := <-done:
		if got != (outcome{won: true, score: 1}) {
			t.Errorf("outcome = %+v, expected won with score 1", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the outcome")
	}
}

// lockedSurface is safe to draw from timer goroutines.
type lockedSurface struct {
	mu   sync.Mutex
	w, h float64
	n    int
}

func (s *lockedSurface) Size() (float64, float64) { return s.w, s.h }

func (s *lockedSurface) Draw(Frame) {
	s.mu.Lock()
	s.n++
	s.mu.Unlock()
}
