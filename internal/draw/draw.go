// Package draw renders colored vector graphics to a terminal using
// half-block characters.
package draw

import (
	"strconv"
)

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

// ANSI color sequences used by overlays.
const (
	ColorReset      = "\033[0m"
	ColorBrightCyan = "\033[96m"
	ColorDim        = "\033[2m"
)

// RGB is a 24-bit color. The zero value is black, not "no color".
type RGB struct {
	R, G, B uint8
}

// packed stores a color in a cell slot; 0 means empty.
func (c RGB) packed() uint32 {
	return 1<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func unpack(p uint32) RGB {
	return RGB{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p)}
}

// appendFg appends a truecolor foreground sequence.
func appendFg(dst []byte, c RGB) []byte {
	dst = append(dst, "\033[38;2;"...)
	return appendTriple(dst, c)
}

// appendBg appends a truecolor background sequence.
func appendBg(dst []byte, c RGB) []byte {
	dst = append(dst, "\033[48;2;"...)
	return appendTriple(dst, c)
}

func appendTriple(dst []byte, c RGB) []byte {
	dst = strconv.AppendInt(dst, int64(c.R), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(c.G), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(c.B), 10)
	return append(dst, 'm')
}

// Fg returns the truecolor foreground sequence for c.
func Fg(c RGB) string {
	return string(appendFg(nil, c))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
