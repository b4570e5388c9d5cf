package scenario

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/starfield/internal/metrics"
	"github.com/san-kum/starfield/internal/sim"
)

func countKinds(events []sim.Event) (ticks, advances, pointers int) {
	for _, ev := range events {
		switch ev.(type) {
		case sim.Tick:
			ticks++
		case sim.AdvancePressed:
			advances++
		case sim.PointerMoved:
			pointers++
		}
	}
	return
}

func TestEvents_Ordering(t *testing.T) {
	sc := &Scenario{
		FrameMs: 10,
		Ticks:   5,
		Steps: []Step{
			{AtMs: 25, Kind: "advance"},
			{AtMs: 0, Kind: "pointer", X: 5, Viewport: 10},
			{AtMs: 500, Kind: "advance"},
		},
	}

	events, err := sc.Events()
	if err != nil {
		t.Fatalf("events: %v", err)
	}

	want := []sim.Event{
		sim.PointerMoved{X: 5, ViewportWidth: 10},
		sim.Tick{DeltaMs: 10},
		sim.Tick{DeltaMs: 10},
		sim.Tick{DeltaMs: 10},
		sim.AdvancePressed{},
		sim.Tick{DeltaMs: 10},
		sim.Tick{DeltaMs: 10},
	}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d: %v", len(want), len(events), events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %#v, want %#v", i, events[i], want[i])
		}
	}
}

func TestEvents_AdvanceEvery(t *testing.T) {
	sc := &Scenario{FrameMs: 16, Ticks: 100, AdvanceEveryMs: 400}

	events, err := sc.Events()
	if err != nil {
		t.Fatalf("events: %v", err)
	}

	ticks, advances, _ := countKinds(events)
	if ticks != 100 {
		t.Errorf("expected 100 ticks, got %d", ticks)
	}
	if advances != 4 {
		t.Errorf("expected 4 advances in 1600ms, got %d", advances)
	}
}

func TestEvents_DefaultFrame(t *testing.T) {
	events, err := (&Scenario{Ticks: 1}).Events()
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if events[0] != (sim.Tick{DeltaMs: 16}) {
		t.Errorf("expected default 16ms tick, got %#v", events[0])
	}
}

func TestEvents_Invalid(t *testing.T) {
	_, err := (&Scenario{Ticks: 3, Steps: []Step{{AtMs: 0, Kind: "jump"}}}).Events()
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}

	if _, err := (&Scenario{Ticks: -1}).Events(); err == nil {
		t.Error("expected error for negative ticks")
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.yaml")
	data := []byte(`name: short
preset: lecture
frame_ms: 20
ticks: 50
events:
  - at_ms: 100
    kind: advance
  - at_ms: 200
    kind: pointer
    x: 300
    viewport: 600
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.Name != "short" || sc.Preset != "lecture" || sc.Ticks != 50 || len(sc.Steps) != 2 {
		t.Errorf("unexpected scenario: %+v", sc)
	}
	if sc.Steps[1].Viewport != 600 {
		t.Errorf("pointer viewport not parsed: %+v", sc.Steps[1])
	}
}

func TestRun(t *testing.T) {
	engine, err := sim.NewEngine(sim.DefaultParams(), rand.New(rand.NewSource(8)))
	if err != nil {
		t.Fatal(err)
	}
	deck := []sim.Slide{{Position: 0, Text: "a"}, {Position: 30, Text: "b"}, {Position: 90, Text: "c"}}
	s := sim.New(engine, engine.Initial(deck))
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}

	sc := Default("journey")
	sc.Ticks = 600
	result, err := Run(context.Background(), sc, s)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(result.Samples) != 601 {
		t.Errorf("expected 601 samples, got %d", len(result.Samples))
	}
	if result.Final.CurrentSlide != 2 {
		t.Errorf("expected to reach slide 2, got %d", result.Final.CurrentSlide)
	}
	if result.Metrics["distance"] <= 0 {
		t.Errorf("expected positive distance, got %f", result.Metrics["distance"])
	}
	if result.Metrics["peak_speed"] < result.Metrics["mean_speed"] {
		t.Error("peak speed below mean speed")
	}
}
