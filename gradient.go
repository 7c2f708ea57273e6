package mandel

import (
	"fmt"
	"image/color"
)

var (
	Orange = color.RGBA{R: 255, G: 128, B: 0, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Red    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Pink   = color.RGBA{R: 255, G: 105, B: 180, A: 255}
	Black  = color.RGBA{A: 255}
)

// Band interpolates From → To while Lo <= t < Hi.
type Band struct {
	Lo, Hi   float64
	From, To color.RGBA
}

// at returns the band's color at t, which must lie within the band.
// Channels are truncated, not rounded.
func (b Band) at(t float64) color.RGBA {
	t = (t - b.Lo) / (b.Hi - b.Lo)
	lerp := func(from, to uint8) uint8 {
		return uint8(float64(from) + t*(float64(to)-float64(from)))
	}
	return color.RGBA{
		R: lerp(b.From.R, b.To.R),
		G: lerp(b.From.G, b.To.G),
		B: lerp(b.From.B, b.To.B),
		A: 255,
	}
}

// Gradient maps the normalized iteration ratio to a color.
// Bands are ordered and contiguous, covering [0,1).
type Gradient []Band

// DefaultGradient is orange → yellow → red → white → pink, with a constant pink tail.
var DefaultGradient = Gradient{
	{Lo: 0.00, Hi: 0.20, From: Orange, To: Yellow},
	{Lo: 0.20, Hi: 0.40, From: Yellow, To: Red},
	{Lo: 0.40, Hi: 0.60, From: Red, To: White},
	{Lo: 0.60, Hi: 0.90, From: White, To: Pink},
	{Lo: 0.90, Hi: 1.00, From: Pink, To: Pink},
}

// NewGradient checks that bands are ordered, non-empty and contiguous from 0 to 1.
func NewGradient(bands ...Band) (Gradient, error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("gradient needs at least one band")
	}
	lo := 0.0
	for i, b := range bands {
		if b.Lo != lo {
			return nil, fmt.Errorf("band %d starts at %v, expected %v", i, b.Lo, lo)
		}
		if b.Hi <= b.Lo {
			return nil, fmt.Errorf("band %d is empty: [%v, %v)", i, b.Lo, b.Hi)
		}
		lo = b.Hi
	}
	if lo != 1 {
		return nil, fmt.Errorf("gradient ends at %v, expected 1", lo)
	}
	return Gradient(bands), nil
}

// Color returns the color of an iteration count. Counts at or above maxIter
// are inside the set and black.
func (g Gradient) Color(count, maxIter int) color.RGBA {
	if count >= maxIter {
		return Black
	}
	t := float64(count) / float64(maxIter)
	for _, b := range g {
		if t < b.Hi {
			return b.at(t)
		}
	}
	return g[len(g)-1].To
}

// IterationsToColor colors count with DefaultGradient.
func IterationsToColor(count, maxIter int) color.RGBA {
	return DefaultGradient.Color(count, maxIter)
}
