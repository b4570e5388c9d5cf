package sim

import (
	"context"
)

// Simulator owns the authoritative snapshot and folds events into it one
// at a time, in arrival order.
type Simulator struct {
	engine    *Engine
	state     State
	steps     int
	metrics   []Metric
	observers []Observer
}

func New(engine *Engine, initial State) *Simulator {
	return &Simulator{
		engine:    engine,
		state:     initial,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) State() State { return s.state }
func (s *Simulator) Steps() int   { return s.steps }

// Apply reduces one event into the current snapshot and returns the result.
func (s *Simulator) Apply(ev Event) State {
	s.state = s.engine.Reduce(s.state, ev)
	s.steps++

	for _, m := range s.metrics {
		m.Observe(s.state, ev)
	}
	for _, obs := range s.observers {
		obs.OnStep(s.state, ev)
	}
	return s.state
}

// Run consumes events until the channel closes or ctx is done. A sample is
// recorded for the starting snapshot and after every tick.
func (s *Simulator) Run(ctx context.Context, events <-chan Event) (*Result, error) {
	if events == nil {
		return nil, ErrNilStream
	}

	for _, m := range s.metrics {
		m.Reset()
		if st, ok := m.(Starter); ok {
			st.Start(s.state)
		}
	}

	result := &Result{
		Samples: []Sample{SampleOf(s.state)},
		Metrics: make(map[string]float64),
	}

	for {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				s.finish(result)
				return result, nil
			}
			state := s.Apply(ev)
			result.StepsTaken++
			if _, isTick := ev.(Tick); isTick {
				result.Samples = append(result.Samples, SampleOf(state))
			}
		}
	}
}

func (s *Simulator) finish(result *Result) {
	result.Final = s.state
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
