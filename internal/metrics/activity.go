package metrics

import (
	"math"

	"github.com/san-kum/bookloader/internal/book"
)

// DefaultActivityThreshold is the smallest change, in model units or
// degrees, that counts as movement between two samples.
const DefaultActivityThreshold = 1e-6

// Activity is the fraction of samples in which anything moved since the
// previous sample.
type Activity struct {
	name      string
	threshold float64
	prev      book.Snapshot
	moving    int
	samples   int
}

func NewActivity(threshold float64) *Activity {
	return &Activity{
		name:      "activity",
		threshold: threshold,
	}
}

func (a *Activity) Name() string {
	return a.name
}

func (a *Activity) Observe(snap book.Snapshot) {
	if a.samples > 0 && a.moved(snap) {
		a.moving++
	}
	a.prev = snap
	a.samples++
}

func (a *Activity) moved(snap book.Snapshot) bool {
	for i, pose := range snap.Parts {
		was := a.prev.Parts[i]
		if math.Abs(pose.Angle-was.Angle) > a.threshold ||
			pose.Offset.Sub(was.Offset).Length() > a.threshold {
			return true
		}
	}
	p, q := snap.Pages, a.prev.Pages
	if math.Abs(p.Left.Angle-q.Left.Angle) > a.threshold || math.Abs(p.Left.Y-q.Left.Y) > a.threshold ||
		math.Abs(p.Right.Angle-q.Right.Angle) > a.threshold || math.Abs(p.Right.Y-q.Right.Y) > a.threshold {
		return true
	}
	for i := range p.Pages {
		if math.Abs(p.Pages[i]-q.Pages[i]) > a.threshold {
			return true
		}
	}
	return false
}

func (a *Activity) Value() float64 {
	if a.samples < 2 {
		return 0
	}
	return float64(a.moving) / float64(a.samples-1)
}

func (a *Activity) Reset() {
	a.prev = book.Snapshot{}
	a.moving = 0
	a.samples = 0
}
