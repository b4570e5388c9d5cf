// Package easing maps a progress ratio in [0,1] onto an eased ratio.
package easing

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var ErrUnknown = errors.New("easing: unknown curve")

type Func func(t float64) float64

func Linear(t float64) float64 { return Clamp01(t) }

// InOutCubic is slow at both ends and fastest at t=0.5.
func InOutCubic(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func InOutQuint(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 16 * t * t * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 5)/2
}

func Clamp01(t float64) float64 {
	switch {
	case math.IsNaN(t), t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}

var curves = map[string]Func{
	"cubic":  InOutCubic,
	"quint":  InOutQuint,
	"linear": Linear,
}

// Default is the curve used when a config leaves easing empty.
const Default = "cubic"

func Lookup(name string) (Func, error) {
	if name == "" {
		name = Default
	}
	fn, ok := curves[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknown, name, Names())
	}
	return fn, nil
}

func Names() []string {
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
