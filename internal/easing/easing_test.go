package easing

import (
	"errors"
	"math"
	"testing"
)

func TestCurves_Endpoints(t *testing.T) {
	for _, name := range Names() {
		fn, err := Lookup(name)
		if err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
		if got := fn(0); got != 0 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := fn(1); math.Abs(got-1) > 1e-12 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
		if got := fn(0.5); math.Abs(got-0.5) > 1e-12 {
			t.Errorf("%s(0.5) = %v, want 0.5", name, got)
		}
	}
}

func TestCurves_Monotonic(t *testing.T) {
	for _, name := range Names() {
		fn, _ := Lookup(name)
		prev := fn(0)
		for i := 1; i <= 1000; i++ {
			v := fn(float64(i) / 1000)
			if v < prev {
				t.Fatalf("%s not monotonic at %d: %v < %v", name, i, v, prev)
			}
			prev = v
		}
	}
}

func TestInOutCubic(t *testing.T) {
	tests := []struct {
		t, want float64
	}{
		{0.25, 4 * 0.25 * 0.25 * 0.25},
		{0.75, 1 - math.Pow(0.5, 3)/2},
		{-1, 0},
		{2, 1},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := InOutCubic(tt.t); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("InOutCubic(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestLookup(t *testing.T) {
	fn, err := Lookup("")
	if err != nil {
		t.Fatalf("empty name should select default: %v", err)
	}
	if fn(0.25) != InOutCubic(0.25) {
		t.Error("default curve is not cubic")
	}

	_, err = Lookup("bounce")
	if !errors.Is(err, ErrUnknown) {
		t.Errorf("expected ErrUnknown, got %v", err)
	}
}
