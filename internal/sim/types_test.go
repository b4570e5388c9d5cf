package sim

import (
	"testing"

	"github.com/san-kum/starfield/internal/field"
)

func TestState_Clone(t *testing.T) {
	s := State{
		Stars:  []field.Star{{X: 0.1, Y: 0.2}},
		Slides: []Slide{{Position: 3, Text: "a"}},
		Speed:  0.4,
	}

	c := s.Clone()
	c.Stars[0].X = 0.9
	c.Slides[0].Text = "b"

	if s.Stars[0].X != 0.1 {
		t.Error("Clone shares stars")
	}
	if s.Slides[0].Text != "a" {
		t.Error("Clone shares slides")
	}
	if c.Speed != 0.4 {
		t.Errorf("Clone lost speed: %f", c.Speed)
	}
}

func TestState_Slide(t *testing.T) {
	deck := []Slide{{Position: 0, Text: "a"}, {Position: 10, Text: "b"}}

	tests := []struct {
		name  string
		index int
		want  string
	}{
		{"first", 0, "a"},
		{"last", 1, "b"},
		{"past end", 7, "b"},
		{"negative", -2, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := State{Slides: deck, CurrentSlide: tt.index}.Slide()
			if !ok || got.Text != tt.want {
				t.Errorf("Slide() = %q, %v; want %q", got.Text, ok, tt.want)
			}
		})
	}
}

func TestMode_String(t *testing.T) {
	if ModeTween.String() != "tween" || ModePointer.String() != "pointer" {
		t.Errorf("unexpected names: %s %s", ModeTween, ModePointer)
	}
}

func TestSampleOf(t *testing.T) {
	s := State{Time: 32, Speed: 0.2, CurrentPosition: 4, CurrentSlide: 1, Stars: make([]field.Star, 7)}
	got := SampleOf(s)
	want := Sample{Time: 32, Speed: 0.2, Position: 4, Stars: 7, Slide: 1}
	if got != want {
		t.Errorf("SampleOf = %+v, want %+v", got, want)
	}
}
