// Package viz provides the terminal view of the book loader.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: drives a [book.Loader] from frame ticks on a virtual clock
//   - [Canvas]: Braille-based pixel canvas the scene is stroked onto
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Tap (start or stop loading)
//	P     - Pause/Resume the clock
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show full help
//	Q     - Quit
//
// A left mouse click anywhere also taps.
//
// # Recording
//
// While recording, every frame's scene is kept. Stopping the recording
// renders the frames with package render and writes a GIF in the background.
package viz
