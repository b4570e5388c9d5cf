package sim

import (
	"math"

	"github.com/san-kum/starfield/internal/easing"
)

// pointerSpeed maps a pointer position to a speed in [floor, ...).
func pointerSpeed(floor, x, viewportWidth float64) float64 {
	if viewportWidth <= 0 || math.IsNaN(x) {
		return floor
	}
	return math.Max(floor, x/viewportWidth)
}

// travel places the camera on the eased tween curve, adds the constant
// crawl and returns how far the camera moved.
func (e *Engine) travel(s *State) float64 {
	prev := s.CurrentPosition
	if s.Tweening() {
		ratio := 1.0
		if span := s.TweenEndTime - s.TweenStartTime; span > 0 {
			ratio = easing.Clamp01((s.Time - s.TweenStartTime) / span)
		}
		s.CurrentPosition = s.TweenStartPosition + (s.TargetPosition-s.TweenStartPosition)*e.params.Ease(ratio)
	}
	s.CurrentPosition += e.params.Crawl
	return s.CurrentPosition - prev
}
