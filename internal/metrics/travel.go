package metrics

import "github.com/san-kum/starfield/internal/sim"

// Distance is how far the camera travelled along the story axis.
type Distance struct {
	name        string
	seen        bool
	first, last float64
}

func NewDistance() *Distance {
	return &Distance{name: "distance"}
}

func (d *Distance) Name() string { return d.name }

// Start anchors the distance at the run's first snapshot, so the first
// event's travel is counted.
func (d *Distance) Start(s sim.State) {
	d.first, d.last = s.CurrentPosition, s.CurrentPosition
	d.seen = true
}

func (d *Distance) Observe(s sim.State, ev sim.Event) {
	if !d.seen {
		d.first = s.CurrentPosition
		d.seen = true
	}
	d.last = s.CurrentPosition
}

func (d *Distance) Value() float64 { return d.last - d.first }

func (d *Distance) Reset() {
	d.seen = false
	d.first, d.last = 0, 0
}

type Recycles struct {
	name  string
	count int
}

func NewRecycles() *Recycles {
	return &Recycles{name: "recycles"}
}

func (r *Recycles) Name() string { return r.name }

func (r *Recycles) Observe(s sim.State, ev sim.Event) { r.count = s.Recycled }

func (r *Recycles) Value() float64 { return float64(r.count) }
func (r *Recycles) Reset()         { r.count = 0 }

// Defaults returns the metrics every run reports.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewPeakSpeed(),
		NewMeanSpeed(),
		NewDistance(),
		NewRecycles(),
	}
}
