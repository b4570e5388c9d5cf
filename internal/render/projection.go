// Package render resolves a simulation snapshot into backend-neutral
// drawing primitives for a given viewport.
package render

import (
	"math"
	"sort"

	"github.com/san-kum/starfield/internal/field"
	"github.com/san-kum/starfield/internal/sim"
)

const (
	BaseFontSize  = 25.0
	LetterSpacing = 0.1
	BeamBase      = 1.001
	trailExponent = 1.1
	trailPercent  = 100.0
)

type Viewport struct {
	Width, Height float64
}

type Line struct {
	X1, Y1, X2, Y2 float64
}

type Text struct {
	X, Y          float64
	FontSize      float64
	LetterSpacing float64
	Text          string
	Scale         float64
}

type Model struct {
	Stars  []Line
	Slides []Text
}

// Trail is the star's streak length ratio; it grows toward the corners.
func Trail(s field.Star) float64 {
	area := math.Abs(s.X) / field.Edge * math.Abs(s.Y) / field.Edge
	return math.Pow(math.Sqrt(area)*trailPercent, trailExponent) / trailPercent
}

func StarLine(s field.Star, speed float64, vp Viewport) Line {
	beam := BeamBase + Trail(s)*speed
	cx, cy := vp.Width/2, vp.Height/2
	return Line{
		X1: cx + s.X*vp.Width,
		Y1: cy + s.Y*vp.Height,
		X2: cx + s.X*vp.Width*beam,
		Y2: cy + s.Y*vp.Height*beam,
	}
}

// SlideScale is the perspective scale of a slide seen from position.
// Slides at or behind the camera are not visible.
func SlideScale(slide sim.Slide, position float64) (float64, bool) {
	dist := slide.Position - position
	if dist <= 0 || math.IsNaN(dist) {
		return 0, false
	}
	scale := 1 / dist
	if math.IsInf(scale, 0) {
		return 0, false
	}
	return scale, true
}

func Project(s sim.State, vp Viewport) Model {
	m := Model{
		Stars:  make([]Line, len(s.Stars)),
		Slides: make([]Text, 0, len(s.Slides)),
	}
	for i, star := range s.Stars {
		m.Stars[i] = StarLine(star, s.Speed, vp)
	}
	for _, slide := range s.Slides {
		scale, ok := SlideScale(slide, s.CurrentPosition)
		if !ok {
			continue
		}
		size := BaseFontSize * scale
		m.Slides = append(m.Slides, Text{
			X:             vp.Width / 2,
			Y:             vp.Height / 2,
			FontSize:      size,
			LetterSpacing: size * LetterSpacing,
			Text:          slide.Text,
			Scale:         scale,
		})
	}
	return m
}

// Nearest returns the visible slide with the largest scale.
func (m Model) Nearest() (Text, bool) {
	best, found := Text{}, false
	for _, t := range m.Slides {
		if !found || t.Scale > best.Scale {
			best, found = t, true
		}
	}
	return best, found
}

// FarthestFirst returns the visible slides in painting order, so nearer
// captions are drawn over farther ones.
func (m Model) FarthestFirst() []Text {
	out := make([]Text, len(m.Slides))
	copy(out, m.Slides)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Scale < out[j].Scale })
	return out
}
