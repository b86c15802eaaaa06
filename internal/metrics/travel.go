package metrics

import (
	"math"

	"github.com/san-kum/bookloader/internal/book"
	"github.com/san-kum/bookloader/internal/loader"
)

// HolderTravel is the total angle, in degrees, the holder swept through.
type HolderTravel struct {
	name    string
	sum     float64
	last    float64
	samples int
}

func NewHolderTravel() *HolderTravel {
	return &HolderTravel{
		name: "holder_travel",
	}
}

func (h *HolderTravel) Name() string {
	return h.name
}

func (h *HolderTravel) Observe(snap book.Snapshot) {
	angle := snap.Pose(loader.Holder).Angle
	if h.samples > 0 {
		h.sum += math.Abs(angle - h.last)
	}
	h.last = angle
	h.samples++
}

func (h *HolderTravel) Value() float64 {
	return h.sum
}

func (h *HolderTravel) Reset() {
	h.sum = 0
	h.last = 0
	h.samples = 0
}
