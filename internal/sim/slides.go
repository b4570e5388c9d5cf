package sim

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// advanceSlide moves to the next slide and starts a tween toward it. At the
// last slide the state is returned unchanged.
func (e *Engine) advanceSlide(s State) State {
	if len(s.Slides) == 0 {
		return s
	}
	next := clampIndex(s.CurrentSlide+1, len(s.Slides))
	if next == s.CurrentSlide {
		return s
	}

	s.CurrentSlide = next
	s.TargetPosition = s.Slides[next].Position - e.params.SlideOffset
	s.TweenStartPosition = s.CurrentPosition
	s.TweenStartTime = s.Time
	s.TweenEndTime = s.Time + (s.TargetPosition-s.CurrentPosition)*e.params.TweenK
	return s
}
