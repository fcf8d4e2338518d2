package dodge

import (
	"fmt"
	"math"

	"github.com/vovakirdan/trap-streets/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar   = '█'
	ObstacleChar = '▓'
	GridChar     = '·'
)

// gridSize is the canvas-unit spacing of background grid marks.
const gridSize = 50

// ScreenSurface draws frames onto a character screen. The canvas is scaled
// to fill the screen below a one-row HUD.
type ScreenSurface struct {
	screen  *core.Screen
	canvasW float64
	canvasH float64

	// Hint is shown under the outcome in the terminal overlay.
	Hint string
}

// NewScreenSurface creates a surface for a canvas of the given size.
func NewScreenSurface(screen *core.Screen, canvasW, canvasH float64) *ScreenSurface {
	return &ScreenSurface{
		screen:  screen,
		canvasW: canvasW,
		canvasH: canvasH,
	}
}

// Size returns the canvas dimensions. A surface without a screen, or whose
// screen has no room for the play field, has zero size.
func (s *ScreenSurface) Size() (float64, float64) {
	if s == nil || s.screen == nil {
		return 0, 0
	}
	if s.screen.Width() < 1 || s.screen.Height() < 2 {
		return 0, 0
	}
	return s.canvasW, s.canvasH
}

// Screen returns the underlying screen buffer.
func (s *ScreenSurface) Screen() *core.Screen {
	return s.screen
}

// Draw renders the frame: HUD, grid, obstacles, player and, for terminal
// frames, the outcome overlay.
func (s *ScreenSurface) Draw(f Frame) {
	dst := s.screen
	dst.Clear()

	s.drawGrid(dst)
	for _, o := range f.Obstacles {
		dst.DrawRect(s.toCells(o.Rect()), ObstacleChar, core.ColorBrightMagenta)
	}
	dst.DrawRect(s.toCells(f.Player.Rect()), PlayerChar, core.ColorBrightGreen)

	s.drawHUD(dst, f)

	switch f.Phase {
	case PhaseWon:
		s.drawOverlay(dst, "YOU WIN!", fmt.Sprintf("Survived for %d seconds!", f.Score))
	case PhaseLost:
		s.drawOverlay(dst, "GAME OVER", fmt.Sprintf("Score: %d", f.Score))
	}
}

// playHeight is the number of rows available to the canvas.
func (s *ScreenSurface) playHeight() int {
	return s.screen.Height() - 1
}

// toCells maps a canvas box to screen cells. Any visible box covers at
// least one cell.
func (s *ScreenSurface) toCells(r core.RectF) core.Rect {
	sx := float64(s.screen.Width()) / s.canvasW
	sy := float64(s.playHeight()) / s.canvasH

	x0 := int(math.Floor(r.X * sx))
	y0 := int(math.Floor(r.Y * sy))
	x1 := int(math.Ceil(r.Right() * sx))
	y1 := int(math.Ceil(r.Bottom() * sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	// Shift below the HUD row and keep the play field clear of it
	y0, y1 = y0+1, y1+1
	if y0 < 1 {
		y0 = 1
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

func (s *ScreenSurface) drawGrid(dst *core.Screen) {
	for gy := 0.0; gy <= s.canvasH; gy += gridSize {
		for gx := 0.0; gx <= s.canvasW; gx += gridSize {
			c := s.toCells(core.NewRectF(gx, gy, 0, 0))
			dst.SetCell(c.X, c.Y, GridChar, core.ColorDarkGray)
		}
	}
}

func (s *ScreenSurface) drawHUD(dst *core.Screen, f Frame) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", f.Score), core.ColorBrightGreen)
	if f.Phase == PhaseRunning {
		left := fmt.Sprintf("Time Left: %ds", f.Remaining)
		dst.DrawText(dst.Width()-len(left)-1, 0, left, core.ColorBrightGreen)
	}
}

// drawOverlay draws a message box in the center of the screen.
func (s *ScreenSurface) drawOverlay(dst *core.Screen, title, subtitle string) {
	lines := []string{title, subtitle}
	if s.Hint != "" {
		lines = append(lines, s.Hint)
	}

	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines)*2 + 1
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	for i, l := range lines {
		c := core.ColorBrightGreen
		if i == 2 {
			c = core.ColorGray
		}
		x := box.X + (boxW-len([]rune(l)))/2
		dst.DrawText(x, box.Y+1+i*2, l, c)
	}
}
