package sim

import (
	"context"
	"math/rand"
	"sync"
)

// Ensemble replays one event script under consecutive seeds, one goroutine
// per run. Only the random star field differs between runs.
type Ensemble struct {
	params    Params
	slides    []Slide
	numRuns   int
	seedStart int64
	metrics   func() []Metric
}

func NewEnsemble(p Params, slides []Slide, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{params: p, slides: slides, numRuns: numRuns, seedStart: seedStart}
}

// WithMetrics sets a factory for per-run metrics. Metrics hold state, so
// every run needs its own set.
func (e *Ensemble) WithMetrics(f func() []Metric) *Ensemble {
	e.metrics = f
	return e
}

func (e *Ensemble) Seed(idx int) int64 { return e.seedStart + int64(idx) }

func (e *Ensemble) Run(ctx context.Context, events []Event) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = e.runOne(ctx, e.Seed(idx), events)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

func (e *Ensemble) runOne(ctx context.Context, seed int64, events []Event) (*Result, error) {
	engine, err := NewEngine(e.params, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	sim := New(engine, engine.Initial(e.slides))
	if e.metrics != nil {
		for _, m := range e.metrics() {
			sim.AddMetric(m)
		}
	}

	ch := make(chan Event)
	go func() {
		defer close(ch)
		for _, ev := range events {
			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return sim.Run(ctx, ch)
}
