// Package viz plays captures back in the terminal.
//
// The package implements an interactive player using the Bubble Tea
// framework:
//
//   - [Model]: playback loop with scrubbing and an orbiting camera
//   - [Canvas]: braille pixel canvas the skeleton is drawn on
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from the first frame
//	[ / ] - Step one frame back/forward
//	Arrows - Orbit the camera
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// The player records sessions as GIF animations with the G key.
// Recordings are saved to the current directory.
package viz
