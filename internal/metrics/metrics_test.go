package metrics

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/starfield/internal/sim"
)

func TestPeakSpeed(t *testing.T) {
	m := NewPeakSpeed()
	for _, v := range []float64{0.001, 0.4, 0.2} {
		m.Observe(sim.State{Speed: v}, sim.Tick{DeltaMs: 16})
	}
	if m.Value() != 0.4 {
		t.Errorf("expected peak 0.4, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("Reset did not clear peak")
	}
}

func TestMeanSpeed_CountsTicksOnly(t *testing.T) {
	m := NewMeanSpeed()
	m.Observe(sim.State{Speed: 0.2}, sim.Tick{DeltaMs: 16})
	m.Observe(sim.State{Speed: 0.9}, sim.PointerMoved{X: 9, ViewportWidth: 10})
	m.Observe(sim.State{Speed: 0.4}, sim.Tick{DeltaMs: 16})

	if math.Abs(m.Value()-0.3) > 1e-12 {
		t.Errorf("expected mean 0.3, got %f", m.Value())
	}
}

func TestMeanSpeed_Empty(t *testing.T) {
	if v := NewMeanSpeed().Value(); v != 0 {
		t.Errorf("expected 0 for no samples, got %f", v)
	}
}

func TestDistance(t *testing.T) {
	m := NewDistance()
	for _, p := range []float64{10, 12, 30.5} {
		m.Observe(sim.State{CurrentPosition: p}, sim.Tick{DeltaMs: 16})
	}
	if m.Value() != 20.5 {
		t.Errorf("expected distance 20.5, got %f", m.Value())
	}

	m.Reset()
	m.Observe(sim.State{CurrentPosition: 3}, sim.Tick{DeltaMs: 16})
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}

func TestDistance_Start(t *testing.T) {
	m := NewDistance()
	m.Start(sim.State{CurrentPosition: 2})
	m.Observe(sim.State{CurrentPosition: 5}, sim.Tick{DeltaMs: 16})
	if m.Value() != 3 {
		t.Errorf("expected distance 3 from the starting snapshot, got %f", m.Value())
	}
}

func TestDistance_MatchesRun(t *testing.T) {
	engine, err := sim.NewEngine(sim.DefaultParams(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	initial := engine.Initial([]sim.Slide{{Position: 0}, {Position: 100}})
	s := sim.New(engine, initial)
	s.AddMetric(NewDistance())

	events := make(chan sim.Event, 512)
	events <- sim.AdvancePressed{}
	for i := 0; i < 400; i++ {
		events <- sim.Tick{DeltaMs: 16}
	}
	close(events)

	result, err := s.Run(context.Background(), events)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := result.Final.CurrentPosition - initial.CurrentPosition
	if got := result.Metrics["distance"]; math.Abs(got-want) > 1e-12 {
		t.Errorf("distance %f, want %f", got, want)
	}
}

func TestRecycles(t *testing.T) {
	m := NewRecycles()
	m.Observe(sim.State{Recycled: 4}, sim.Tick{DeltaMs: 16})
	m.Observe(sim.State{Recycled: 9}, sim.Tick{DeltaMs: 16})
	if m.Value() != 9 {
		t.Errorf("expected 9, got %f", m.Value())
	}
}

func TestDefaults_UniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range Defaults() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric name %s", m.Name())
		}
		seen[m.Name()] = true
	}
	if len(seen) != 4 {
		t.Errorf("expected 4 metrics, got %d", len(seen))
	}
}
