package dodge

import "time"

// Verdict is the result of evaluating a frame.
type Verdict struct {
	Ended bool
	Won   bool
}

// ElapsedSeconds returns the whole seconds between start and now.
func ElapsedSeconds(start, now time.Time) int {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

// Evaluate decides whether the session is over.
// A collision always loses, even when the win time is reached on the same frame.
func Evaluate(collided bool, score, winSeconds int) Verdict {
	if collided {
		return Verdict{Ended: true, Won: false}
	}
	if score >= winSeconds {
		return Verdict{Ended: true, Won: true}
	}
	return Verdict{}
}

// Remaining returns the seconds left until the win time, never negative.
func Remaining(score, winSeconds int) int {
	if score >= winSeconds {
		return 0
	}
	return winSeconds - score
}
