// Package viz is the terminal front end for the starfield simulation.
//
// The package implements a Bubble Tea program around a [sim.Simulator]:
//
//   - [Model]: feeds ticks, key presses and mouse motion into the simulator
//   - [Canvas]: Braille-based pixel canvas the projected star lines are drawn on
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Advance to the next slide
//	Mouse - Steer speed in pointer mode
//	P     - Pause/Resume
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	[]/   - Time travel (rewind/forward)
//
// # Recording
//
// Sessions can be recorded as GIF animations with the G key. Recordings are
// written to the path given in [Options].
package viz
