package geometry

const (
	holderInset  = 28
	holderHeight = 12
)

// HolderPath returns the book spine: a bracket that drops down, runs across
// and climbs back up, anchored 28 units left of the center of rect.
func HolderPath(rect Rect) Path {
	cx := rect.MidX() - holderInset
	cy := rect.MidY()

	return Path{
		{X: cx, Y: cy},
		{X: cx, Y: cy + holderHeight},
		{X: cx + 2*holderInset, Y: cy + holderHeight},
		{X: cx + 2*holderInset, Y: cy},
	}
}
