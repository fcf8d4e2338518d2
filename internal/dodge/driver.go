package dodge

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/trap-streets/internal/config"
	"github.com/vovakirdan/trap-streets/internal/core"
)

// OutcomeFunc receives the final result of a session, exactly once.
type OutcomeFunc func(won bool, score int)

// ProgressFunc receives the running score and seconds left, once per frame.
type ProgressFunc func(score, remaining int)

// Input is a key listener the driver attaches on start and detaches on
// cleanup. *core.KeyState satisfies it.
type Input interface {
	core.KeyReader
	Attach()
	Detach()
}

// Driver runs one Trap Streets session: it owns the session state, steps it
// once per scheduled frame and reports progress and outcome to the embedder.
type Driver struct {
	cfg     config.DodgeConfig
	clock   Clock
	sched   Scheduler
	input   Input
	logger  *log.Logger
	seed    int64
	noSpawn bool

	mu         sync.Mutex
	phase      Phase
	sess       *Session
	spawner    *Spawner
	surface    Surface
	canvasW    float64
	canvasH    float64
	pending    FrameHandle
	onOutcome  OutcomeFunc
	onProgress ProgressFunc
	frames     int
	cleaned    bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock sets the time source. Defaults to SystemClock.
func WithClock(c Clock) Option {
	return func(d *Driver) { d.clock = c }
}

// WithScheduler sets the frame scheduler. Defaults to a 60 fps TickerScheduler.
func WithScheduler(s Scheduler) Option {
	return func(d *Driver) { d.sched = s }
}

// WithInput sets the key listener. Defaults to a fresh core.KeyState.
func WithInput(in Input) Option {
	return func(d *Driver) { d.input = in }
}

// WithLogger sets the logger. Defaults to a logger that discards output.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithSeed sets the obstacle RNG seed. Zero picks a time-based seed.
func WithSeed(seed int64) Option {
	return func(d *Driver) { d.seed = seed }
}

// WithoutSpawning disables obstacle spawning; only injected obstacles fall.
func WithoutSpawning() Option {
	return func(d *Driver) { d.noSpawn = true }
}

// NewDriver creates an idle driver for the given config.
func NewDriver(cfg config.DodgeConfig, opts ...Option) *Driver {
	d := &Driver{
		cfg:   cfg,
		phase: PhaseIdle,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.clock == nil {
		d.clock = SystemClock{}
	}
	if d.sched == nil {
		d.sched = NewTickerScheduler(60)
	}
	if d.input == nil {
		d.input = core.NewKeyState()
	}
	if d.logger == nil {
		d.logger = log.New(io.Discard)
	}
	if d.seed == 0 {
		d.seed = time.Now().UnixNano()
	}
	return d
}

// Start begins the session on the given surface and returns the cleanup
// function the embedder must call on teardown. onProgress is called once per
// frame; onOutcome is called once when the session is won or lost. Either
// callback may be nil.
func (d *Driver) Start(surface Surface, onOutcome OutcomeFunc, onProgress ProgressFunc) (func(), error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.phase != PhaseIdle {
		return nil, fmt.Errorf("dodge: cannot start: %w", ErrAlreadyStarted)
	}
	if err := validateSurface(surface, d.cfg); err != nil {
		d.logger.Error("cannot start session", "error", err)
		return nil, fmt.Errorf("dodge: cannot start: %w", err)
	}

	d.surface = surface
	d.canvasW, d.canvasH = surface.Size()
	d.onOutcome = onOutcome
	d.onProgress = onProgress

	now := d.clock.Now()
	d.sess = NewSession(uuid.NewString(), NewPlayer(d.cfg.Player, d.canvasW, d.canvasH), now)
	d.spawner = NewSpawner(d.cfg.Obstacles, d.cfg.SpawnInterval(), d.seed)
	if d.noSpawn {
		d.spawner.Disable()
	}

	d.input.Attach()
	d.phase = PhaseRunning
	d.pending = d.sched.Schedule(d.frame)

	d.logger.Info("session started",
		"session", d.sess.ID,
		"canvas", fmt.Sprintf("%vx%v", d.canvasW, d.canvasH),
		"seed", d.seed,
	)
	return d.cleanup, nil
}

// frame runs one simulate-and-render cycle. Callbacks run outside the lock so
// they may call cleanup.
func (d *Driver) frame() {
	d.mu.Lock()
	if d.phase != PhaseRunning {
		d.mu.Unlock()
		return
	}
	d.pending = nil
	d.frames++

	v := d.step(d.clock.Now())
	if v.Ended {
		d.phase = PhaseLost
		if v.Won {
			d.phase = PhaseWon
		}
		d.input.Detach()
		d.logger.Info("session over",
			"session", d.sess.ID,
			"result", d.phase,
			"score", d.sess.Score,
			"frames", d.frames,
		)
	}

	f := d.snapshot()
	d.surface.Draw(f)
	onProgress, onOutcome := d.onProgress, d.onOutcome
	d.mu.Unlock()

	if onProgress != nil {
		onProgress(f.Score, f.Remaining)
	}
	if v.Ended {
		if onOutcome != nil {
			onOutcome(v.Won, f.Score)
		}
		return
	}

	d.mu.Lock()
	if d.phase == PhaseRunning {
		d.pending = d.sched.Schedule(d.frame)
	}
	d.mu.Unlock()
}

// step advances the session to now. Collision is evaluated before the win
// time so a hit on the final frame still loses.
func (d *Driver) step(now time.Time) Verdict {
	s := d.sess

	UpdatePlayer(&s.Player, d.input, d.cfg.Player.Speed, d.canvasW)

	d.spawner.Maybe(now, s, d.canvasW)
	s.Obstacles = AdvanceObstacles(s.Obstacles, d.canvasH)

	collided := CheckCollisions(s.Player, s.Obstacles)

	s.Score = ElapsedSeconds(s.StartedAt, now)
	v := Evaluate(collided, s.Score, d.cfg.Rules.WinSeconds)
	s.Ended, s.Won = v.Ended, v.Won
	return v
}

// cleanup cancels the pending frame and detaches input. It is safe to call
// any number of times, including after the session ended on its own.
func (d *Driver) cleanup() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Cancel()
		d.pending = nil
	}
	if d.phase == PhaseRunning {
		d.phase = PhaseStopped
		d.input.Detach()
	}
	if !d.cleaned {
		d.cleaned = true
		d.logger.Debug("cleanup complete", "session", d.sess.ID, "phase", d.phase)
	}
}

// Inject adds an obstacle to a running session and reports whether it was
// accepted. Scripted scenarios use it together with WithoutSpawning.
func (d *Driver) Inject(o Obstacle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase != PhaseRunning {
		return false
	}
	d.sess.Obstacles = append(d.sess.Obstacles, o)
	return true
}

// Phase returns the current lifecycle state.
func (d *Driver) Phase() Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phase
}

// SessionID returns the running session's ID, or empty before Start.
func (d *Driver) SessionID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sess == nil {
		return ""
	}
	return d.sess.ID
}

// Snapshot returns the current state of the session.
func (d *Driver) Snapshot() Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sess == nil {
		return Frame{Phase: d.phase}
	}
	return d.snapshot()
}

// Frames returns how many frames have run.
func (d *Driver) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}
