// Package scenario expands scripted input into an ordered event stream with
// a fixed tick cadence, for headless runs.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/san-kum/starfield/internal/config"
	"github.com/san-kum/starfield/internal/sim"
	"gopkg.in/yaml.v3"
)

var ErrUnknownKind = errors.New("scenario: unknown event kind")

// Scenario is a scripted session: Ticks frames of FrameMs each, with input
// events injected at virtual times.
type Scenario struct {
	Name           string  `yaml:"name"`
	Description    string  `yaml:"description"`
	Preset         string  `yaml:"preset"`
	FrameMs        float64 `yaml:"frame_ms"`
	Ticks          int     `yaml:"ticks"`
	AdvanceEveryMs float64 `yaml:"advance_every_ms"`
	Steps          []Step  `yaml:"events"`
}

// Step is one scripted input. Kind is "advance" or "pointer".
type Step struct {
	AtMs     float64 `yaml:"at_ms"`
	Kind     string  `yaml:"kind"`
	X        float64 `yaml:"x"`
	Viewport float64 `yaml:"viewport"`
}

func (st Step) event() (sim.Event, error) {
	switch st.Kind {
	case "advance":
		return sim.AdvancePressed{}, nil
	case "pointer":
		return sim.PointerMoved{X: st.X, ViewportWidth: st.Viewport}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, st.Kind)
}

// Default tours a deck, advancing every three seconds.
func Default(preset string) *Scenario {
	return &Scenario{
		Name:           "tour",
		Description:    "advance through the deck every 3s",
		Preset:         preset,
		FrameMs:        config.DefaultFrameMs,
		Ticks:          1500,
		AdvanceEveryMs: 3000,
	}
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &sc, nil
}

func (sc *Scenario) frame() float64 {
	if sc.FrameMs <= 0 {
		return config.DefaultFrameMs
	}
	return sc.FrameMs
}

// Events expands the scenario. A step fires right after the first tick
// that brings virtual time to its AtMs; steps past the last tick are
// dropped.
func (sc *Scenario) Events() ([]sim.Event, error) {
	if sc.Ticks < 0 {
		return nil, fmt.Errorf("ticks must not be negative, got %d", sc.Ticks)
	}

	steps := make([]Step, len(sc.Steps))
	copy(steps, sc.Steps)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].AtMs < steps[j].AtMs })

	frame := sc.frame()
	out := make([]sim.Event, 0, sc.Ticks+len(steps))
	next := 0
	flush := func(now float64) error {
		for next < len(steps) && steps[next].AtMs <= now {
			ev, err := steps[next].event()
			if err != nil {
				return fmt.Errorf("step %d: %w", next+1, err)
			}
			out = append(out, ev)
			next++
		}
		return nil
	}

	if err := flush(0); err != nil {
		return nil, err
	}
	nextAdvance := sc.AdvanceEveryMs
	for i := 1; i <= sc.Ticks; i++ {
		out = append(out, sim.Tick{DeltaMs: frame})
		now := float64(i) * frame
		if err := flush(now); err != nil {
			return nil, err
		}
		for sc.AdvanceEveryMs > 0 && nextAdvance <= now {
			out = append(out, sim.AdvancePressed{})
			nextAdvance += sc.AdvanceEveryMs
		}
	}
	return out, nil
}

// Run feeds the scenario through s and returns the folded result.
func Run(ctx context.Context, sc *Scenario, s *sim.Simulator) (*sim.Result, error) {
	events, err := sc.Events()
	if err != nil {
		return nil, err
	}

	ch := make(chan sim.Event)
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

	return s.Run(ctx, ch)
}
