// Package ui contains the Bubble Tea program that draws the desktop: a menu
// bar, overlapping windows, a dock and a status line.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. An open prompt
//     sees key presses first; everything else is routed through a typed
//     handler registry so each tea.Msg is handled by a focused function.
//   - Key presses go to the component owning the keyboard (see Mode): the
//     desktop shortcuts, the open menu, the window switcher, a move in
//     progress, typing into an application, the dock or the diagnostics
//     panel.
//
// State ownership:
//   - Windows, the dock and browser history live in the internal/state
//     store owned by the desktop. The UI reads it on every frame and only
//     writes to it through actions, except for a committed move.
//   - The menu bar is whatever desktop.MenuBar returns for the active window,
//     so a focus change swaps the bar without any bookkeeping here.
//   - Menu and key actions run asynchronously through internal/ui/command
//     and come back as menu.ActionResult messages.
//
// Backend interactions:
//   - A backend.Watcher streams clock ticks and page-load completions;
//     Update waits for those events and hands them to the dispatcher.
package ui
