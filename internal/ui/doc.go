// Package ui contains the Bubble Tea program that browses a style library.
// The Model type focuses on message orchestration, while dedicated helpers
// own navigation, input, rendering, and library updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - While the rename form is open, key messages go to the form. Otherwise
//     every message is routed through a typed handler registry so each
//     tea.Msg is handled by a focused function (key presses, resizes,
//     library reloads).
//   - Navigation helpers (navigation.go) move the cursor and drive the
//     filter hotkeys. Filter input helpers (input.go) keep text entry
//     isolated from the event loop.
//
// State ownership:
//   - The rows on screen are a view.View over the style.Library. The view
//     owns filtering and sorting; internal/ui/state.Level owns the cursor,
//     the filter query and the viewport, and follows the selected entity by
//     name whenever the view reorders.
//   - All registry mutations (renames, favorites, reloads) happen on the
//     Update goroutine, so the model, view and level observe them as
//     synchronous registry events.
//
// Backend interactions:
//   - A backend.Watcher streams parsed library files; Update waits for
//     those events and hands them to applyBackendEvent, which replays the
//     snapshot onto the registry through the dispatcher.
//   - Previews are rendered synchronously from the model's decoration role
//     and cached by the preview renderer.
package ui
