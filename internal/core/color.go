package core

// Color is the foreground color of a screen cell. The terminal host maps
// it to an ANSI palette index.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightGreen
	ColorBrightMagenta
	ColorGray
	ColorDarkGray
)

var ansiCodes = [...]string{
	ColorRed:           "1",
	ColorGreen:         "2",
	ColorYellow:        "3",
	ColorMagenta:       "5",
	ColorCyan:          "6",
	ColorWhite:         "7",
	ColorBrightGreen:   "10",
	ColorBrightMagenta: "13",
	ColorGray:          "245",
	ColorDarkGray:      "238",
}

// ANSI returns the 256-color palette index for c, or "" for the terminal
// default.
func (c Color) ANSI() string {
	if int(c) >= len(ansiCodes) {
		return ""
	}
	return ansiCodes[c]
}
