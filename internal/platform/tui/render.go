package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/trap-streets/internal/core"
)

func cellStyle(c core.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if code := c.ANSI(); code != "" {
		s = s.Foreground(lipgloss.Color(code))
	}
	return s
}

// RenderScreen turns the cell grid into styled terminal text. Each run of
// same-colored cells on a row is styled once.
func RenderScreen(s *core.Screen) string {
	rows := make([]string, s.Height())
	for y := range rows {
		var (
			row  strings.Builder
			span []rune
			cur  core.Color
		)
		flush := func() {
			if len(span) > 0 {
				row.WriteString(cellStyle(cur).Render(string(span)))
				span = span[:0]
			}
		}
		for x := range s.Width() {
			c := s.GetCell(x, y)
			if c.Color != cur {
				flush()
				cur = c.Color
			}
			span = append(span, c.Rune)
		}
		flush()
		rows[y] = row.String()
	}
	return strings.Join(rows, "\n")
}
