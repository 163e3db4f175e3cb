// Package ui is the Bubble Tea front end of the lead console.
//
// Building blocks:
//   - View: a screen region with its own Init/Update/View (Elm-style)
//   - OverlayStack: modals (convert dialog, confirmations) that take input first
//   - FocusManager: tab rotation between the lead and opportunity tables
//   - KeybindRegistry/KeyHandler: single keys plus SPC leader sequences
//
// AppModel owns the console state container and turns view messages into
// console operations, simulated-latency ticks and toasts.
package ui
