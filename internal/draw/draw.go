// Package draw renders the playfield to a terminal using half-block
// characters and ANSI escape sequences.
package draw

import "strconv"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a canvas pixel colour. The zero value is an unset pixel.
type Color uint8

// Palette. Values map to the 16 standard ANSI colours.
const (
	ColorNone Color = iota
	ColorWhite
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
	ColorMagenta
	ColorCyan
	ColorGray
	ColorBrightCyan
	ColorBrightYellow
)

// Raw escape sequences for text overlays.
const (
	ColorReset      = "\033[0m"
	ColorBoldYellow = "\033[1;93m"
	ColorDim        = "\033[2m"
)

// ansiCodes holds the SGR foreground code for each palette entry.
// Background codes are foreground + 10.
var ansiCodes = [...]int{
	ColorNone:         39,
	ColorWhite:        97,
	ColorRed:          91,
	ColorGreen:        92,
	ColorBlue:         94,
	ColorYellow:       33,
	ColorMagenta:      95,
	ColorCyan:         36,
	ColorGray:         90,
	ColorBrightCyan:   96,
	ColorBrightYellow: 93,
}

// appendSGR appends the escape sequence selecting fg and bg colours.
// ColorNone selects the terminal default.
func appendSGR(buf []byte, fg, bg Color) []byte {
	buf = append(buf, "\033["...)
	buf = strconv.AppendInt(buf, int64(ansiCodes[fg]), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(ansiCodes[bg]+10), 10)
	return append(buf, 'm')
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
