package sim

import "errors"

var (
	ErrNilSource = errors.New("sim: nil random source")
	ErrNilEasing = errors.New("sim: nil easing function")
	ErrNilStream = errors.New("sim: nil event stream")
)
