package dodge

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/trap-streets/internal/config"
)

// Surface is where the driver draws each frame.
type Surface interface {
	// Size returns the canvas dimensions in canvas units.
	Size() (width, height float64)
	// Draw renders a frame. Terminal frames carry a won or lost phase.
	Draw(f Frame)
}

var (
	// ErrInvalidSurface is returned by Start when there is nothing usable to draw on.
	ErrInvalidSurface = errors.New("invalid drawing surface")
	// ErrAlreadyStarted is returned by Start on a driver that already ran.
	ErrAlreadyStarted = errors.New("driver already started")
)

// validateSurface checks that the surface exists and fits the player.
func validateSurface(s Surface, cfg config.DodgeConfig) error {
	if s == nil {
		return fmt.Errorf("%w: no surface", ErrInvalidSurface)
	}
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: size %vx%v", ErrInvalidSurface, w, h)
	}
	if w < cfg.Player.Width || w < cfg.Obstacles.Width {
		return fmt.Errorf("%w: width %v is narrower than the entities", ErrInvalidSurface, w)
	}
	if h < cfg.Player.Height+cfg.Player.BottomMargin {
		return fmt.Errorf("%w: height %v does not fit the player", ErrInvalidSurface, h)
	}
	return nil
}
