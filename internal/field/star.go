package field

import "math"

const (
	// Edge is the half-extent of the visible unit field.
	Edge = 0.5
	// RecycleSpan is the width of the square a recycled star is dropped into.
	RecycleSpan = 0.001
	// Expansion is the per-tick radial growth factor per unit of speed.
	Expansion = 0.10
	// SpawnScale is the spread of freshly generated stars.
	SpawnScale = 0.001
)

type Star struct {
	X, Y float64
}

func (s Star) Radius() float64 { return math.Hypot(s.X, s.Y) }

// Outside reports whether the star has left the visible field.
func (s Star) Outside() bool {
	return math.Abs(s.X) > Edge || math.Abs(s.Y) > Edge
}

// Source is the randomness a field consumes. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Bounds describes a field centred at the origin.
type Bounds struct {
	Width, Height float64
}

var Unit = Bounds{Width: 1, Height: 1}

func clampAbs(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
