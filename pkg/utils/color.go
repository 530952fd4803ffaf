package utils

import (
	"image/color"
	"math"
)

// LerpColor 在两个 RGBA 颜色之间插值，t 限制到 [0, 1]
func LerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = Clamp01(t)
	return color.RGBA{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
		A: lerpChannel(a.A, b.A, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(math.Round(Lerp(float64(a), float64(b), t)))
}
