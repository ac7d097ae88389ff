// Package viz is the terminal viewer for the two-body system.
//
// A Bubble Tea program drives the same [driver.Driver] as the window
// viewer. Each frame is projected through the free-look camera onto a
// Braille [Canvas], next to a sidebar with a separation plot.
//
//   - [Model]: live viewer for one scenario
//   - [RunInteractive]: preset menu in front of the live viewer
//   - [Projector]: perspective projection of world points onto the canvas
//   - [Recorder]: GIF capture of the canvas
//
// # Key Bindings
//
//	W A S D    - Move
//	Space / C  - Up / down
//	Tab        - Grab or release the mouse
//	P          - Pause
//	R          - Reset
//	T          - Cycle color themes
//	G          - Toggle GIF recording
//	Q / Esc    - Quit
//
// Terminals do not report key releases, so a movement key counts as held
// for a few ticks after each press.
package viz
