package dodge

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/trap-streets/internal/config"
	"github.com/vovakirdan/trap-streets/internal/core"
)

// Key names understood by UpdatePlayer. Any other key is ignored.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyA          = "a"
	KeyD          = "d"
)

// UpdatePlayer sets the player's velocity from the held keys, moves it and
// clamps it into [0, canvasW-Width]. Holding both directions stops the player.
func UpdatePlayer(p *Player, keys core.KeyReader, speed, canvasW float64) {
	left := keys.Held(KeyArrowLeft) || keys.Held(KeyA)
	right := keys.Held(KeyArrowRight) || keys.Held(KeyD)

	switch {
	case left && !right:
		p.DX = -speed
	case right && !left:
		p.DX = speed
	default:
		p.DX = 0
	}

	p.X = core.Clamp(p.X+p.DX, 0, canvasW-p.Width)
}

// AdvanceObstacles moves every obstacle down by its own speed and drops the
// ones that have left the canvas. The order of the rest is preserved.
// The slice is filtered in place.
func AdvanceObstacles(obstacles []Obstacle, canvasH float64) []Obstacle {
	kept := obstacles[:0]
	for _, o := range obstacles {
		o.Y += o.Speed
		if o.Y < canvasH {
			kept = append(kept, o)
		}
	}
	// Zero the tail so dropped obstacles don't linger in the backing array
	clear(obstacles[len(kept):])
	return kept
}

// Spawner creates obstacles on a wall-clock interval.
type Spawner struct {
	cfg      config.ObstacleConfig
	interval time.Duration
	rng      *rand.Rand
	disabled bool
}

// NewSpawner creates a spawner with a seeded RNG.
func NewSpawner(cfg config.ObstacleConfig, interval time.Duration, seed int64) *Spawner {
	return &Spawner{
		cfg:      cfg,
		interval: interval,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Disable stops the spawner from creating obstacles.
func (s *Spawner) Disable() {
	s.disabled = true
}

// Maybe appends a new obstacle when more than the spawn interval has passed
// since the last spawn, and reports whether it did.
func (s *Spawner) Maybe(now time.Time, sess *Session, canvasW float64) bool {
	if s.disabled || now.Sub(sess.LastSpawn) <= s.interval {
		return false
	}
	sess.Obstacles = append(sess.Obstacles, s.Spawn(canvasW))
	sess.LastSpawn = now
	return true
}

// Spawn creates an obstacle just above the canvas at a random column.
func (s *Spawner) Spawn(canvasW float64) Obstacle {
	return Obstacle{
		X:      s.rng.Float64() * (canvasW - s.cfg.Width),
		Y:      -s.cfg.Height,
		Width:  s.cfg.Width,
		Height: s.cfg.Height,
		Speed:  s.cfg.BaseSpeed + s.rng.Float64()*s.cfg.SpeedJitter,
	}
}
