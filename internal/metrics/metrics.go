// Package metrics summarizes a sampled run one snapshot at a time.
package metrics

import "github.com/san-kum/bookloader/internal/book"

type Metric interface {
	Name() string
	Observe(snap book.Snapshot)
	Value() float64
	Reset()
}

// Defaults returns a fresh set of the standard run metrics.
func Defaults() []Metric {
	return []Metric{
		NewHolderTravel(),
		NewActivity(DefaultActivityThreshold),
		NewSpread(),
	}
}
