package field

import (
	"math/rand"
	"testing"
)

func benchField(n int) []Star {
	return Generate(rand.New(rand.NewSource(1)), n, SpawnScale, Unit)
}

func BenchmarkAdvance300(b *testing.B) {
	rng := rand.New(rand.NewSource(2))
	stars := benchField(300)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		stars, _ = Advance(rng, stars, 0.05)
	}
}

func BenchmarkAdvance3000(b *testing.B) {
	rng := rand.New(rand.NewSource(2))
	stars := benchField(3000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		stars, _ = Advance(rng, stars, 0.05)
	}
}

func BenchmarkProcreate(b *testing.B) {
	rng := rand.New(rand.NewSource(3))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Procreate(rng, nil, 300, 300)
	}
}
