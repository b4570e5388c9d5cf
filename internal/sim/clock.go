package sim

import "math"

// advanceClock moves virtual time forward. Negative or invalid deltas are
// dropped so Time stays monotonic.
func advanceClock(s *State, deltaMs float64) {
	if deltaMs <= 0 || math.IsNaN(deltaMs) || math.IsInf(deltaMs, 0) {
		return
	}
	s.Time += deltaMs
}
