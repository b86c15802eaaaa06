package sim

import (
	"context"
	"sync"
)

// Sweep runs one sampler per scale, concurrently. Each run owns its own
// clock and loader. base supplies every other setting except Observers and
// Metrics, which are not shared across goroutines.
func Sweep(ctx context.Context, base Config, scales []float64) ([]*Result, error) {
	results := make([]*Result, len(scales))
	errs := make([]error, len(scales))

	var wg sync.WaitGroup
	for i, scale := range scales {
		wg.Add(1)
		go func(idx int, scale float64) {
			defer wg.Done()

			cfgCopy := base
			cfgCopy.Scale = scale
			cfgCopy.Taps = append([]float64(nil), base.Taps...)
			cfgCopy.Observers = nil
			cfgCopy.Metrics = nil

			results[idx], errs[idx] = Run(ctx, cfgCopy)
		}(i, scale)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
