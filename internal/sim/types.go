package sim

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/bookloader/internal/book"
	"github.com/san-kum/bookloader/internal/loader"
	"github.com/san-kum/bookloader/internal/metrics"
	"github.com/san-kum/bookloader/internal/pages"
)

type Config struct {
	Dt       float64
	Duration float64
	Scale    float64
	Policy   book.Policy
	// Warmup delays the first tap, in seconds.
	Warmup float64
	// Taps lists absolute tap times in seconds. Empty means a single tap at
	// Warmup.
	Taps      []float64
	Observers []Observer
	// Metrics summarize the run into Result.Metrics. Nil means
	// metrics.Defaults.
	Metrics []metrics.Metric
	Logger  *slog.Logger
}

// Observer sees the full snapshot behind every sample.
type Observer interface {
	OnSample(snap book.Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(book.Snapshot)

func (f ObserverFunc) OnSample(snap book.Snapshot) { f(snap) }

// Sample is the presented pose of everything at one instant.
type Sample struct {
	Time  float64
	State loader.State
	Gate  bool
	Parts [len(loader.Parts)]loader.Pose
	Left  pages.BarPose
	Right pages.BarPose
	Pages [pages.NumPages]float64
}

type Result struct {
	Times   []float64
	Samples []Sample
	Events  []book.Event
	Metrics map[string]float64
}

// Columns names the values Sample.Values returns, in order.
func Columns() []string {
	cols := []string{"state", "gate"}
	for _, p := range loader.Parts {
		cols = append(cols, p.String()+"_x", p.String()+"_y", p.String()+"_angle")
	}
	cols = append(cols, "left_bar_y", "left_bar_angle", "right_bar_y", "right_bar_angle")
	for i := range pages.NumPages {
		cols = append(cols, fmt.Sprintf("page_%c_angle", 'a'+i))
	}
	return cols
}

// Values flattens s in Columns order. Time is not included.
func (s Sample) Values() []float64 {
	gate := 0.0
	if s.Gate {
		gate = 1
	}
	v := make([]float64, 0, len(Columns()))
	v = append(v, float64(s.State.Index()), gate)
	for _, p := range loader.Parts {
		pose := s.Parts[p]
		v = append(v, pose.Offset.X, pose.Offset.Y, pose.Angle)
	}
	v = append(v, s.Left.Y, s.Left.Angle, s.Right.Y, s.Right.Angle)
	v = append(v, s.Pages[:]...)
	return v
}

// Column returns one named column across all samples.
func (r *Result) Column(name string) ([]float64, error) {
	idx := -1
	for i, c := range Columns() {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Values()[idx]
	}
	return out, nil
}
