package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/bookloader/internal/book"
	"github.com/san-kum/bookloader/internal/clock"
	"github.com/san-kum/bookloader/internal/metrics"
	"github.com/san-kum/bookloader/internal/pages"
)

// Run drives a fresh loader on its own virtual clock, sampling every Dt
// seconds for Duration seconds. The first sample is taken at t=0 after any
// tap due then.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	sched := clock.New()
	l := book.New(sched, book.Options{Scale: cfg.Scale, Policy: cfg.Policy, Logger: cfg.Logger})
	rec := &book.Recorder{}
	l.AddObserver(rec)
	l.Mount()
	defer l.Close()

	taps := cfg.Taps
	if len(taps) == 0 {
		taps = []float64{cfg.Warmup}
	}
	for _, at := range taps {
		sched.After(clock.Seconds(at), l.Tap)
	}

	ms := cfg.Metrics
	if ms == nil {
		ms = metrics.Defaults()
	}
	for _, m := range ms {
		m.Reset()
	}

	steps := int(math.Floor(cfg.Duration/cfg.Dt + 1e-9))
	result := &Result{
		Times:   make([]float64, 0, steps+1),
		Samples: make([]Sample, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for i := 0; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return result, &RunError{Step: i, Time: float64(i) * cfg.Dt, Wrapped: fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())}
		default:
		}

		t := float64(i) * cfg.Dt
		now := clock.Seconds(t)
		sched.AdvanceTo(now)

		snap := l.Snapshot(now)
		for _, m := range ms {
			m.Observe(snap)
		}
		for _, obs := range cfg.Observers {
			obs.OnSample(snap)
		}
		result.Times = append(result.Times, t)
		result.Samples = append(result.Samples, Sample{
			Time:  t,
			State: snap.State,
			Gate:  l.Gate(),
			Parts: snap.Parts,
			Left:  snap.Pages.Left,
			Right: snap.Pages.Right,
			Pages: snap.Pages.Pages,
		})
	}

	result.Events = rec.Events
	for _, m := range ms {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Metrics["taps"] = float64(len(rec.Named(book.EventTap)))
	result.Metrics["cycles"] = float64(len(rec.Named(book.EventBook)))
	result.Metrics["advances"] = float64(len(rec.Named(book.EventAdvance)))
	result.Metrics["page_loops"] = float64(len(rec.Named(pages.StepRightClose)))
	result.Metrics["final_state"] = float64(l.Index())

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	if cfg.Dt > cfg.Duration {
		return fmt.Errorf("%w: dt %f exceeds duration %f", ErrInvalidConfig, cfg.Dt, cfg.Duration)
	}
	if cfg.Scale < book.MinScale {
		return fmt.Errorf("%w: scale must be at least %g, got %g", ErrInvalidConfig, book.MinScale, cfg.Scale)
	}
	if cfg.Warmup < 0 {
		return fmt.Errorf("%w: warmup must not be negative, got %f", ErrInvalidConfig, cfg.Warmup)
	}
	for _, at := range cfg.Taps {
		if at < 0 {
			return fmt.Errorf("%w: tap time must not be negative, got %f", ErrInvalidConfig, at)
		}
	}
	return nil
}
