package dodge

import (
	"testing"
	"time"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		collided bool
		score    int
		expected Verdict
	}{
		{"running", false, 10, Verdict{}},
		{"just before win", false, 29, Verdict{}},
		{"win at threshold", false, 30, Verdict{Ended: true, Won: true}},
		{"win past threshold", false, 31, Verdict{Ended: true, Won: true}},
		{"collision early", true, 3, Verdict{Ended: true, Won: false}},
		{"collision at threshold loses", true, 30, Verdict{Ended: true, Won: false}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate(tc.collided, tc.score, 30); got != tc.expected {
				t.Errorf("Evaluate() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestElapsedSeconds(t *testing.T) {
	start := time.Unix(1000, 0)

	tests := []struct {
		elapsed  time.Duration
		expected int
	}{
		{0, 0},
		{999 * time.Millisecond, 0},
		{time.Second, 1},
		{29999 * time.Millisecond, 29},
		{30 * time.Second, 30},
		{-time.Second, 0},
	}

	for _, tc := range tests {
		if got := ElapsedSeconds(start, start.Add(tc.elapsed)); got != tc.expected {
			t.Errorf("ElapsedSeconds(%v) = %d, expected %d", tc.elapsed, got, tc.expected)
		}
	}
}

func TestRemaining(t *testing.T) {
	if got := Remaining(12, 30); got != 18 {
		t.Errorf("Remaining(12, 30) = %d, expected 18", got)
	}
	if got := Remaining(31, 30); got != 0 {
		t.Errorf("Remaining(31, 30) = %d, expected 0", got)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseWon.String() != "won" || PhaseStopped.String() != "stopped" {
		t.Error("unexpected phase names")
	}
	if !PhaseLost.Terminal() || PhaseStopped.Terminal() || PhaseRunning.Terminal() {
		t.Error("only won and lost are terminal")
	}
	if Phase(42).String() != "Phase(42)" {
		t.Errorf("Phase(42).String() = %q", Phase(42).String())
	}
}
