package viz

import (
	"math"
	"strings"

	"github.com/san-kum/bookloader/internal/geometry"
	"github.com/san-kum/bookloader/internal/scene"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// Set turns on the dot at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the dot at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillCircle sets every dot within r of (cx, cy).
func (c *Canvas) FillCircle(cx, cy, r float64) {
	for y := int(math.Floor(cy - r)); y <= int(math.Ceil(cy+r)); y++ {
		for x := int(math.Floor(cx - r)); x <= int(math.Ceil(cx+r)); x++ {
			if math.Hypot(float64(x)-cx, float64(y)-cy) <= r {
				c.Set(x, y)
			}
		}
	}
}

// DrawThickLine strokes a segment w sub-pixels wide with round caps.
func (c *Canvas) DrawThickLine(x0, y0, x1, y1, w float64) {
	r := w / 2
	if r < 0.75 {
		c.DrawLine(round(x0), round(y0), round(x1), round(y1))
		return
	}

	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length > 0 {
		nx, ny := -dy/length, dx/length
		for off := -r; off <= r; off += 0.5 {
			c.DrawLine(round(x0+nx*off), round(y0+ny*off), round(x1+nx*off), round(y1+ny*off))
		}
	}
	c.FillCircle(x0, y0, r)
	c.FillCircle(x1, y1, r)
}

// DrawScene maps a square of half-size extent model units onto the canvas,
// centered and uniformly scaled, and strokes every polyline in sc.
func (c *Canvas) DrawScene(sc scene.Scene, extent float64) {
	cw, ch := float64(c.Width*2), float64(c.Height*4)
	s := math.Min(cw, ch) / (2 * extent)
	ox, oy := cw/2, ch/2

	project := func(v geometry.Vec) (float64, float64) {
		return ox + v.X*s, oy + v.Y*s
	}

	for _, st := range sc.Strokes {
		w := st.Width * s
		for i := 1; i < len(st.Points); i++ {
			x0, y0 := project(st.Points[i-1])
			x1, y1 := project(st.Points[i])
			c.DrawThickLine(x0, y0, x1, y1, w)
		}
	}
}

// Lit counts the dots that are on.
func (c *Canvas) Lit() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			bits := r - blank
			for bits != 0 {
				n += int(bits & 1)
				bits >>= 1
			}
		}
	}
	return n
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func round(f float64) int { return int(math.Round(f)) }
