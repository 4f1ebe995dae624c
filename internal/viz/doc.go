// Package viz draws submarine runs in the terminal.
//
//   - [Model]: Bubble Tea live view of a running simulator, with side, top
//     and orbit views of the hull, its trail and force arrows
//   - [Canvas]: Braille-based pixel canvas, 2x4 dots per cell
//   - [RunCharts] and [Track]: asciigraph charts and braille tracks of a
//     recorded run
//   - [TrackSVG] and [CanvasSVG]: the same drawings as SVG documents
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	S     - Single tick while paused
//	R     - Reset to initial state
//	V     - Cycle side/top/orbit view
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
