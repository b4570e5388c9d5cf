package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/starfield/internal/field"
)

// Engine holds the fixed parameters and random source of a simulation.
// Reduce is the only state transition.
type Engine struct {
	params Params
	rng    field.Source
}

func NewEngine(p Params, rng field.Source) (*Engine, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, ErrNilSource
	}
	return &Engine{params: p, rng: rng}, nil
}

func (e *Engine) Params() Params { return e.params }

// Initial returns the first snapshot for a deck of slides.
func (e *Engine) Initial(slides []Slide) State {
	deck := make([]Slide, len(slides))
	copy(deck, slides)
	return State{
		Stars:  []field.Star{},
		Speed:  e.params.Floor,
		Slides: deck,
	}
}

// Reduce returns the snapshot following s after ev. s is not modified.
func (e *Engine) Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case Tick:
		return e.tick(s, ev)
	case PointerMoved:
		if e.params.Mode != ModePointer {
			return s
		}
		s.Speed = pointerSpeed(e.params.Floor, ev.X, ev.ViewportWidth)
		if ev.ViewportWidth > 0 && !math.IsNaN(ev.X) {
			s.Pointer = ev.X / ev.ViewportWidth
		}
		return s
	case AdvancePressed:
		return e.advanceSlide(s)
	}
	return s
}

// Fold applies events in order starting from s.
func (e *Engine) Fold(s State, events ...Event) State {
	for _, ev := range events {
		s = e.Reduce(s, ev)
	}
	return s
}

func (e *Engine) tick(s State, ev Tick) State {
	advanceClock(&s, ev.DeltaMs)

	delta := e.travel(&s)
	switch e.params.Mode {
	case ModeTween:
		s.Speed = math.Max(e.params.Floor, delta)
	default:
		s.Speed = math.Max(e.params.Floor, s.Speed)
	}

	stars, recycled := field.Advance(e.rng, s.Stars, s.Speed)
	s.Recycled += recycled
	s.Stars = field.Procreate(e.rng, stars, e.density(s), e.params.Cap)
	return s
}

// density is the star count the field should hold in s.
func (e *Engine) density(s State) int {
	if e.params.Mode == ModePointer {
		batches := math.Floor(s.Time / e.params.SpawnEveryMs)
		return int(math.Min(batches*float64(e.params.SpawnBatch), float64(e.params.Cap)))
	}
	return int(math.Min(math.Floor(s.CurrentPosition*2), float64(e.params.Cap)))
}

func validateParams(p Params) error {
	if p.Floor <= 0 {
		return fmt.Errorf("speed floor must be positive, got %f", p.Floor)
	}
	if p.Cap < 0 {
		return fmt.Errorf("star cap must not be negative, got %d", p.Cap)
	}
	if p.Crawl < 0 {
		return fmt.Errorf("crawl must not be negative, got %f", p.Crawl)
	}
	if p.TweenK <= 0 {
		return fmt.Errorf("tween k must be positive, got %f", p.TweenK)
	}
	if p.SlideOffset <= 0 {
		return fmt.Errorf("slide offset must be positive, got %f", p.SlideOffset)
	}
	if p.Ease == nil {
		return ErrNilEasing
	}
	if p.Mode == ModePointer && (p.SpawnBatch <= 0 || p.SpawnEveryMs <= 0) {
		return fmt.Errorf("pointer mode needs a positive spawn batch and interval")
	}
	return nil
}
