package sim

import (
	"context"
	"testing"
)

func TestEnsemble(t *testing.T) {
	events := []Event{AdvancePressed{}}
	for i := 0; i < 200; i++ {
		events = append(events, Tick{DeltaMs: 16})
	}
	deck := []Slide{{Position: 0}, {Position: 20}}

	results, err := NewEnsemble(DefaultParams(), deck, 4, 10).Run(context.Background(), events)
	if err != nil {
		t.Fatalf("ensemble: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}

	pos := results[0].Final.CurrentPosition
	for i, r := range results {
		if r.StepsTaken != len(events) {
			t.Errorf("run %d: expected %d steps, got %d", i, len(events), r.StepsTaken)
		}
		if r.Final.CurrentPosition != pos {
			t.Errorf("run %d: camera path depends on seed: %f vs %f", i, r.Final.CurrentPosition, pos)
		}
	}
	if results[0].Final.Stars[0] == results[1].Final.Stars[0] {
		t.Error("different seeds produced the same field")
	}
}

func TestEnsemble_InvalidParams(t *testing.T) {
	p := DefaultParams()
	p.Ease = nil
	if _, err := NewEnsemble(p, nil, 2, 1).Run(context.Background(), nil); err == nil {
		t.Error("expected error for invalid params")
	}
}
