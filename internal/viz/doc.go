// Package viz provides the interactive terminal UI for algorithm animations.
//
// The UI is a Bubble Tea program driving an [anim.Controller]:
//
//   - [App]: category tabs, algorithm list, bars, counters and code panel
//   - [Bridge]: an anim.Renderer that forwards callbacks into the program
//   - [Canvas]: Braille canvas used when the array is wider than the screen
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Start/Pause
//	R     - Reset to the array the run started from
//	N     - Step forward (not available)
//	+/-   - Speed up/down
//	G     - Generate a new array; [ and ] change its size
//	/     - Edit the search target
//	Tab   - Switch category
//	L     - Cycle code sample language
//	V     - Toggle code panel
//	T     - Cycle color themes
//	?     - Show help overlay
//
// Controller calls are issued from commands, never from Update, because the
// Bridge blocks in Program.Send while the controller holds its lock.
package viz
