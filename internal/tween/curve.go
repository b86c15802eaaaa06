package tween

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Curve maps linear progress in [0,1] to eased progress.
type Curve func(t float64) float64

// Ease adapts c to the gween easing signature: time t of duration d moving
// from b by change.
func (c Curve) Ease() ease.TweenFunc {
	return func(t, b, change, d float32) float32 {
		return b + change*float32(c(float64(t/d)))
	}
}

func Linear(t float64) float64 { return t }

// EaseOut matches the toolkit ease-out timing, cubic-bezier(0, 0, 0.58, 1).
var EaseOut = CubicBezier(0, 0, 0.58, 1)

// EaseInOut is cubic-bezier(0.42, 0, 0.58, 1).
var EaseInOut = CubicBezier(0.42, 0, 0.58, 1)

// CubicBezier builds a timing curve through (0,0), (x1,y1), (x2,y2), (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	sampleY := func(s float64) float64 { return ((ay*s+by)*s + cy) * s }
	slopeX := func(s float64) float64 { return (3*ax*s+2*bx)*s + cx }

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		s := t
		for i := 0; i < 8; i++ {
			dx := sampleX(s) - t
			if math.Abs(dx) < 1e-7 {
				return sampleY(s)
			}
			d := slopeX(s)
			if math.Abs(d) < 1e-6 {
				break
			}
			s -= dx / d
		}

		lo, hi := 0.0, 1.0
		s = t
		for i := 0; i < 32; i++ {
			x := sampleX(s)
			if math.Abs(x-t) < 1e-7 {
				break
			}
			if x < t {
				lo = s
			} else {
				hi = s
			}
			s = (lo + hi) / 2
		}
		return sampleY(s)
	}
}
