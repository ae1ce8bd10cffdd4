// Package viz provides terminal-based visualization of sorting playback.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live playback view driven by wall-clock ticks
//   - [Canvas]: Braille-based pixel canvas for the detail view and recording
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Reset to the initial array
//	+/-   - Speed up / slow down
//	T     - Cycle color themes
//	D     - Toggle Braille detail view
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// The detail view can be recorded as a GIF animation using the G key.
// Recordings are saved to the current directory.
package viz
