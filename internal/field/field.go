package field

// Generate returns count stars drawn uniformly from a scale-wide square
// centred on the field. Coordinates never leave bounds.
func Generate(rng Source, count int, scale float64, b Bounds) []Star {
	if count <= 0 {
		return []Star{}
	}
	hw, hh := b.Width/2, b.Height/2
	stars := make([]Star, count)
	for i := range stars {
		x := rng.Float64()*scale - scale/2
		y := rng.Float64()*scale - scale/2
		stars[i] = Star{X: clampAbs(x, hw), Y: clampAbs(y, hh)}
	}
	return stars
}

// Recycle returns a star reset to a small random offset near the origin.
func Recycle(rng Source) Star {
	return Star{
		X: rng.Float64()*RecycleSpan - RecycleSpan/2,
		Y: rng.Float64()*RecycleSpan - RecycleSpan/2,
	}
}

// Advance moves every star outward by 1+speed*Expansion, recycling the ones
// that left the field first. The input slice is not modified.
func Advance(rng Source, stars []Star, speed float64) ([]Star, int) {
	out := make([]Star, len(stars))
	factor := 1 + speed*Expansion
	recycled := 0
	for i, s := range stars {
		if s.Outside() {
			s = Recycle(rng)
			recycled++
		}
		out[i] = Star{X: s.X * factor, Y: s.Y * factor}
	}
	return out, recycled
}

// Procreate grows stars up to min(target, limit). It never shrinks and
// always returns a slice that does not alias the input's spare capacity.
func Procreate(rng Source, stars []Star, target, limit int) []Star {
	want := min(target, limit)
	if len(stars) >= want {
		return stars
	}
	fresh := Generate(rng, want-len(stars), SpawnScale, Unit)
	return append(stars[:len(stars):len(stars)], fresh...)
}
