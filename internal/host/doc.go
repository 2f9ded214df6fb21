// Package host drives presentation frames for the runtime.
//
//   - Headless calls frame on a ticker and suits CI, recording and replay
//   - Terminal runs a bubbletea program; frames arrive as tea.Tick
//     messages on the program's event loop, which runs on the goroutine
//     that called Run
//
// Both hosts return nil when their context is cancelled, so the runtime
// treats an external stop as a clean shutdown.
package host
