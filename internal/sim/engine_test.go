package sim_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/starfield/internal/field"
	"github.com/san-kum/starfield/internal/sim"
)

var _ = Describe("Engine", func() {
	var (
		engine *sim.Engine
		deck   []sim.Slide
	)

	BeforeEach(func() {
		var err error
		engine, err = sim.NewEngine(sim.DefaultParams(), rand.New(rand.NewSource(2024)))
		Expect(err).NotTo(HaveOccurred())
		deck = []sim.Slide{
			{Position: 0, Text: "A journey through space and time"},
			{Position: 500, Text: "The first stop"},
			{Position: 900, Text: "The last stop"},
		}
	})

	Describe("a tick with no active tween", func() {
		It("advances the clock and crawls the camera", func() {
			s := engine.Reduce(sim.State{}, sim.Tick{DeltaMs: 16})

			Expect(s.Time).To(Equal(16.0))
			Expect(s.CurrentPosition).To(BeNumerically("~", 0.0001, 1e-12))
			Expect(s.Speed).To(Equal(0.001))
		})
	})

	Describe("advancing a slide", func() {
		It("starts a tween proportional to the travel distance", func() {
			s := engine.Reduce(sim.State{Slides: deck}, sim.AdvancePressed{})

			Expect(s.CurrentSlide).To(Equal(1))
			Expect(s.TargetPosition).To(Equal(499.5))
			Expect(s.TweenStartPosition).To(Equal(0.0))
			Expect(s.TweenStartTime).To(Equal(0.0))
			Expect(s.TweenEndTime).To(Equal(4995.0))
		})

		It("is clamped at the last slide", func() {
			s := engine.Initial(deck)
			for i := 0; i < 10; i++ {
				s = engine.Reduce(s, sim.AdvancePressed{})
			}
			last := s
			s = engine.Reduce(s, sim.AdvancePressed{})

			Expect(s.CurrentSlide).To(Equal(len(deck) - 1))
			Expect(s.TweenEndTime).To(Equal(last.TweenEndTime))
			Expect(s.TargetPosition).To(Equal(last.TargetPosition))
		})

		It("never decreases the slide index", func() {
			rng := rand.New(rand.NewSource(5))
			s := engine.Initial(deck)
			prev := s.CurrentSlide
			for i := 0; i < 500; i++ {
				if rng.Intn(20) == 0 {
					s = engine.Reduce(s, sim.AdvancePressed{})
				} else {
					s = engine.Reduce(s, sim.Tick{DeltaMs: 16})
				}
				Expect(s.CurrentSlide).To(BeNumerically(">=", prev))
				Expect(s.CurrentSlide).To(BeNumerically("<=", len(deck)-1))
				prev = s.CurrentSlide
			}
		})
	})

	Describe("an active tween", func() {
		It("moves the camera monotonically toward the target", func() {
			s := engine.Reduce(engine.Initial(deck), sim.AdvancePressed{})
			target := s.TargetPosition
			prev := s.CurrentPosition

			for s.Time < s.TweenEndTime+160 {
				s = engine.Reduce(s, sim.Tick{DeltaMs: 16})
				Expect(s.CurrentPosition).To(BeNumerically(">=", prev))
				prev = s.CurrentPosition
			}

			Expect(s.CurrentPosition).To(BeNumerically(">=", target))
			Expect(s.CurrentPosition).To(BeNumerically("~", target, 0.01))
			Expect(s.Tweening()).To(BeFalse())
		})

		It("derives speed from the camera delta", func() {
			s := engine.Reduce(engine.Initial(deck), sim.AdvancePressed{})
			for i := 0; i < 150; i++ {
				before := s.CurrentPosition
				s = engine.Reduce(s, sim.Tick{DeltaMs: 16})
				Expect(s.Speed).To(BeNumerically("~", math.Max(0.001, s.CurrentPosition-before), 1e-9))
			}
			Expect(s.Speed).To(BeNumerically(">", 0.001))
		})
	})

	Describe("the star field", func() {
		It("grows with camera progress and stays capped", func() {
			s := engine.Reduce(engine.Initial(deck), sim.AdvancePressed{})
			prev := 0
			for i := 0; i < 400; i++ {
				s = engine.Reduce(s, sim.Tick{DeltaMs: 16})
				Expect(len(s.Stars)).To(BeNumerically(">=", prev))
				Expect(len(s.Stars)).To(BeNumerically("<=", 300))
				prev = len(s.Stars)
			}
			Expect(s.Stars).To(HaveLen(300))
		})

		It("recycles stars that leave the field", func() {
			s := engine.Initial(deck)
			s.Stars = []field.Star{{X: 0.6, Y: 0.1}, {X: 0.2, Y: -0.9}}

			s = engine.Reduce(s, sim.Tick{DeltaMs: 16})

			Expect(s.Recycled).To(Equal(2))
			for _, star := range s.Stars {
				Expect(math.Abs(star.X)).To(BeNumerically("<=", 0.0005*(1+s.Speed*field.Expansion)))
				Expect(math.Abs(star.Y)).To(BeNumerically("<=", 0.0005*(1+s.Speed*field.Expansion)))
			}
		})
	})

	Describe("the speed floor", func() {
		It("holds for every event kind in either mode", func() {
			for _, mode := range []sim.Mode{sim.ModeTween, sim.ModePointer} {
				p := sim.DefaultParams()
				p.Mode = mode
				e, err := sim.NewEngine(p, rand.New(rand.NewSource(3)))
				Expect(err).NotTo(HaveOccurred())

				s := e.Initial(deck)
				events := []sim.Event{
					sim.PointerMoved{X: 0, ViewportWidth: 1024},
					sim.Tick{DeltaMs: 16},
					sim.AdvancePressed{},
					sim.PointerMoved{X: -5, ViewportWidth: 1024},
					sim.Tick{DeltaMs: 0},
					sim.Tick{DeltaMs: 16},
				}
				for _, ev := range events {
					s = e.Reduce(s, ev)
					Expect(s.Speed).To(BeNumerically(">=", 0.001), "mode %s after %T", mode, ev)
				}
			}
		})
	})
})
