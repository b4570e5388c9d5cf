package sim

// Event is one entry of the merged input stream.
type Event interface {
	event()
}

// Tick advances the virtual clock by DeltaMs.
type Tick struct {
	DeltaMs float64
}

// PointerMoved carries the pointer's horizontal position and the width of
// the viewport it was measured in.
type PointerMoved struct {
	X             float64
	ViewportWidth float64
}

// AdvancePressed requests the next slide.
type AdvancePressed struct{}

func (Tick) event()           {}
func (PointerMoved) event()   {}
func (AdvancePressed) event() {}
