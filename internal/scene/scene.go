// Package scene flattens a book snapshot into stroked polylines. Coordinates
// are model units with the origin at the center of the loader and y growing
// downward.
package scene

import (
	"github.com/san-kum/bookloader/internal/book"
	"github.com/san-kum/bookloader/internal/geometry"
	"github.com/san-kum/bookloader/internal/loader"
	"github.com/san-kum/bookloader/internal/pages"
)

const (
	CoverWidth = 120.0
	Thickness  = 8.0
)

// Stroke is a polyline drawn with round caps at the given width.
type Stroke struct {
	Name   string
	Points geometry.Path
	Width  float64
}

type Scene struct {
	At      float64
	Strokes []Stroke
}

// capsule returns the centerline of a w-wide capsule centered on the origin.
func capsule(w float64) geometry.Path {
	half := (w - Thickness) / 2
	return geometry.Path{{X: -half}, {X: half}}
}

// Build returns the covers and holder followed by the page stack, in paint
// order.
func Build(snap book.Snapshot) Scene {
	sc := Scene{
		At:      snap.At.Seconds(),
		Strokes: make([]Stroke, 0, 5+pages.NumPages),
	}

	for _, p := range loader.Parts {
		pose := snap.Pose(p)
		move := geometry.Translation(pose.Offset)
		turn := geometry.Rotation(pose.Angle)

		var pts geometry.Path
		if p == loader.Holder {
			// the holder rotates in place, then moves
			pts = geometry.HolderPath(geometry.Rect{}).Transform(move.Multiply(turn))
		} else {
			pts = capsule(CoverWidth).Transform(turn.Multiply(move))
		}
		sc.Strokes = append(sc.Strokes, Stroke{Name: p.String(), Points: pts, Width: Thickness})
	}

	ps := snap.Pages
	sc.Strokes = append(sc.Strokes,
		bar("left_bar", ps.Left.Y, ps.Left.Angle),
		bar("right_bar", ps.Right.Y, ps.Right.Angle),
	)
	for i, angle := range ps.Pages {
		sc.Strokes = append(sc.Strokes, bar(pageName(i), 0, angle))
	}
	return sc
}

func bar(name string, y, angle float64) Stroke {
	m := geometry.Translation(geometry.Vec{Y: pages.GroupOffsetY}).
		Multiply(geometry.Rotation(angle)).
		Multiply(geometry.Translation(geometry.Vec{X: pages.BarOffsetX, Y: y}))
	pts := capsule(pages.BarWidth).Transform(m)
	return Stroke{Name: name, Points: pts, Width: pages.BarThickness}
}

func pageName(i int) string {
	return "page_" + string(rune('a'+i))
}

// Bounds covers every stroke including its width.
func (s Scene) Bounds() geometry.Rect {
	if len(s.Strokes) == 0 {
		return geometry.Rect{}
	}
	var r geometry.Rect
	for i, st := range s.Strokes {
		b := st.Points.Bounds()
		pad := st.Width / 2
		b = geometry.Rect{X: b.X - pad, Y: b.Y - pad, W: b.W + st.Width, H: b.H + st.Width}
		if i == 0 {
			r = b
			continue
		}
		r = r.Union(b)
	}
	return r
}

// Extent is the half-size of the square every pose of the loader fits in.
// The farthest point is an open cover's tip at about (-140, 55.75).
const Extent = 160.0
