package stream

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Color is a single RGB pixel as sent on the wire.
type Color struct {
	R, G, B uint8
}

// Colorful converts c for use with go-colorful.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}

// Hex returns c as "#rrggbb".
func (c Color) Hex() string {
	return c.Colorful().Hex()
}

// Scale dims c by f, which is clamped to [0, 1].
func (c Color) Scale(f float64) Color {
	if f >= 1 {
		return c
	}
	if f <= 0 {
		return Color{}
	}
	return Color{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
	}
}
