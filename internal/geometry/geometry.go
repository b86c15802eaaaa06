package geometry

import (
	"math"

	"github.com/gogpu/gg"
)

// Vec is a point or displacement in model units. Y grows downward, so a
// positive rotation turns clockwise on screen.
type Vec = gg.Point

// Radians converts degrees to radians.
func Radians(degrees float64) float64 { return degrees * math.Pi / 180 }

// Rotation turns points about the origin by degrees.
func Rotation(degrees float64) gg.Matrix { return gg.Rotate(Radians(degrees)) }

// Translation moves points by v.
func Translation(v Vec) gg.Matrix { return gg.Translate(v.X, v.Y) }

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) MidX() float64 { return r.X + r.W/2 }
func (r Rect) MidY() float64 { return r.Y + r.H/2 }

// Centered returns a w×h rectangle whose center is the origin.
func Centered(w, h float64) Rect {
	return Rect{X: -w / 2, Y: -h / 2, W: w, H: h}
}

type Path []Vec

// Transform returns a new path with m applied to every point.
func (p Path) Transform(m gg.Matrix) Path {
	out := make(Path, len(p))
	for i, v := range p {
		out[i] = m.TransformPoint(v)
	}
	return out
}

// Bounds returns the smallest rectangle containing every point.
func (p Path) Bounds() Rect {
	if len(p) == 0 {
		return Rect{}
	}
	minX, maxX := p[0].X, p[0].X
	minY, maxY := p[0].Y, p[0].Y
	for _, v := range p[1:] {
		minX = math.Min(minX, v.X)
		maxX = math.Max(maxX, v.X)
		minY = math.Min(minY, v.Y)
		maxY = math.Max(maxY, v.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.X+r.W, o.X+o.W)
	maxY := math.Max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
