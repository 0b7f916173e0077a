// Package object defines the entities that live in a level: static shapes,
// chasing enemies, the player and short-lived visual particles.
package object

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/rotander/internal/geometry"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// Colorful converts to a go-colorful color for blending.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Blend mixes c toward other by t in [0, 1].
func (c Color) Blend(other Color, t float64) Color {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return other
	}
	r, g, b := c.Colorful().BlendRgb(other.Colorful(), t).Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Shape is a static level polytope.
type Shape struct {
	Name string
	geometry.Polytope

	// Target marks a winning volume: touching it completes the level.
	Target bool

	// Color is nil when the level did not specify one; see ColorOr.
	Color *Color
}

// ColorOr returns the shape color, or def when none was configured.
func (s Shape) ColorOr(def Color) Color {
	if s.Color == nil {
		return def
	}
	return *s.Color
}

// ShouldRenderBlink returns true if an object with remaining blink time
// should be drawn this frame. Always true once the time runs out.
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}
