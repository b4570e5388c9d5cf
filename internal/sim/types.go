package sim

import (
	"github.com/san-kum/starfield/internal/easing"
	"github.com/san-kum/starfield/internal/field"
)

// Slide is a fixed waypoint on the story axis and the caption shown there.
type Slide struct {
	Position float64
	Text     string
}

// State is one snapshot of the simulation. Snapshots are values: Stars is
// never written after the snapshot is produced, so copies may share it.
type State struct {
	Stars []field.Star
	Speed float64
	Time  float64

	CurrentPosition    float64
	TargetPosition     float64
	TweenStartPosition float64
	TweenStartTime     float64
	TweenEndTime       float64

	CurrentSlide int
	Slides       []Slide

	// Pointer is the last pointer position as a fraction of the viewport
	// width, before the speed floor is applied.
	Pointer  float64
	Recycled int
}

func (s State) Clone() State {
	c := s
	c.Stars = make([]field.Star, len(s.Stars))
	copy(c.Stars, s.Stars)
	c.Slides = make([]Slide, len(s.Slides))
	copy(c.Slides, s.Slides)
	return c
}

// Tweening reports whether the camera is still travelling toward its target.
func (s State) Tweening() bool { return s.CurrentPosition < s.TargetPosition }

// Slide returns the current slide, or false for an empty deck.
func (s State) Slide() (Slide, bool) {
	if len(s.Slides) == 0 {
		return Slide{}, false
	}
	return s.Slides[clampIndex(s.CurrentSlide, len(s.Slides))], true
}

type Mode int

const (
	ModeTween Mode = iota
	ModePointer
)

func (m Mode) String() string {
	switch m {
	case ModePointer:
		return "pointer"
	default:
		return "tween"
	}
}

type Params struct {
	Mode Mode
	// Floor is the minimum speed.
	Floor float64
	// Cap bounds the number of stars.
	Cap int
	// Crawl is added to the camera position on every tick.
	Crawl float64
	// TweenK is virtual milliseconds of travel per unit of distance.
	TweenK float64
	// SlideOffset keeps the camera short of a slide's exact position.
	SlideOffset float64
	Ease        easing.Func

	// Pointer mode has no camera travel to drive density, so stars are
	// spawned SpawnBatch at a time every SpawnEveryMs of virtual time.
	SpawnBatch   int
	SpawnEveryMs float64
}

func DefaultParams() Params {
	return Params{
		Mode:         ModeTween,
		Floor:        0.001,
		Cap:          300,
		Crawl:        0.0001,
		TweenK:       10,
		SlideOffset:  0.5,
		Ease:         easing.InOutCubic,
		SpawnBatch:   5,
		SpawnEveryMs: 50,
	}
}

type Observer interface {
	OnStep(s State, ev Event)
}

type Metric interface {
	Name() string
	Observe(s State, ev Event)
	Value() float64
	Reset()
}

// Starter is implemented by metrics that need the snapshot a run starts
// from. Run calls Start after Reset.
type Starter interface {
	Start(s State)
}

// Sample is the scalar summary of a snapshot recorded after every tick.
type Sample struct {
	Time     float64
	Speed    float64
	Position float64
	Stars    int
	Slide    int
}

func SampleOf(s State) Sample {
	return Sample{
		Time:     s.Time,
		Speed:    s.Speed,
		Position: s.CurrentPosition,
		Stars:    len(s.Stars),
		Slide:    s.CurrentSlide,
	}
}

type Result struct {
	Final      State
	Samples    []Sample
	Metrics    map[string]float64
	StepsTaken int
}
