package metrics

import (
	"github.com/san-kum/bookloader/internal/book"
	"github.com/san-kum/bookloader/internal/loader"
)

// Spread is the mean distance between the two cover offsets.
type Spread struct {
	name    string
	total   float64
	samples int
}

func NewSpread() *Spread {
	return &Spread{name: "mean_spread"}
}

func (s *Spread) Name() string { return s.name }

func (s *Spread) Observe(snap book.Snapshot) {
	left := snap.Pose(loader.LeftCover).Offset
	right := snap.Pose(loader.RightCover).Offset
	s.total += right.Sub(left).Length()
	s.samples++
}

func (s *Spread) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

func (s *Spread) Reset() {
	s.total = 0
	s.samples = 0
}
