// Package dodge implements Trap Streets, an obstacle-dodging game: the player
// slides along the bottom of the canvas while obstacles fall from the top.
// Survive long enough to win; touch an obstacle and lose.
//
// Step functions are pure mutations of the values they are given. The Driver
// owns a Session and runs one frame per scheduler callback.
package dodge

import (
	"time"

	"github.com/vovakirdan/trap-streets/internal/config"
	"github.com/vovakirdan/trap-streets/internal/core"
)

// Player is the block the user steers.
type Player struct {
	X, Y          float64
	Width, Height float64
	DX            float64 // Horizontal velocity applied on the last update
}

// NewPlayer creates a player centered horizontally near the canvas bottom.
func NewPlayer(cfg config.PlayerConfig, canvasW, canvasH float64) Player {
	return Player{
		X:      canvasW/2 - cfg.Width/2,
		Y:      canvasH - cfg.Height - cfg.BottomMargin,
		Width:  cfg.Width,
		Height: cfg.Height,
	}
}

// Rect returns the player's bounding box.
func (p Player) Rect() core.RectF {
	return core.NewRectF(p.X, p.Y, p.Width, p.Height)
}

// Obstacle is a falling block. Speed is fixed at spawn time.
type Obstacle struct {
	X, Y          float64
	Width, Height float64
	Speed         float64
}

// Rect returns the obstacle's bounding box.
func (o Obstacle) Rect() core.RectF {
	return core.NewRectF(o.X, o.Y, o.Width, o.Height)
}

// Session is the state of one play-through.
// Once Ended is set the session is frozen.
type Session struct {
	ID        string
	Player    Player
	Obstacles []Obstacle // Spawn order
	Score     int        // Whole seconds survived
	Ended     bool
	Won       bool
	StartedAt time.Time
	LastSpawn time.Time
}

// NewSession creates a fresh session that starts at now.
func NewSession(id string, player Player, now time.Time) *Session {
	return &Session{
		ID:        id,
		Player:    player,
		Obstacles: make([]Obstacle, 0, 16),
		StartedAt: now,
		LastSpawn: now,
	}
}
