package dodge

import "fmt"

// Phase is the driver's lifecycle state.
type Phase int

const (
	PhaseIdle    Phase = iota
	PhaseRunning       // Frames are being scheduled
	PhaseWon           // Survived until the win time
	PhaseLost          // Hit an obstacle
	PhaseStopped       // Cleaned up before reaching an outcome
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	case PhaseStopped:
		return "stopped"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Terminal reports whether the phase is a game outcome.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// Frame is an immutable snapshot of a session handed to a Surface.
type Frame struct {
	CanvasW, CanvasH float64
	Player           Player
	Obstacles        []Obstacle
	Score            int
	Remaining        int
	Phase            Phase
}

func (d *Driver) snapshot() Frame {
	obstacles := make([]Obstacle, len(d.sess.Obstacles))
	copy(obstacles, d.sess.Obstacles)
	return Frame{
		CanvasW:   d.canvasW,
		CanvasH:   d.canvasH,
		Player:    d.sess.Player,
		Obstacles: obstacles,
		Score:     d.sess.Score,
		Remaining: Remaining(d.sess.Score, d.cfg.Rules.WinSeconds),
		Phase:     d.phase,
	}
}
