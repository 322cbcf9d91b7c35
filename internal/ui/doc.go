// Package ui provides the glyphart terminal interface, built on Bubble Tea.
//
// # Views
//
//   - Main: input panel (selected file, MIME type, size, preview and the
//     submit button) next to the result panel (phase badge, echoed filename
//     and the converted image). Narrow terminals stack the panels.
//   - Picker: bubbles filepicker restricted to image extensions. Other files
//     are listed but cannot be selected.
//   - Logs: tail of glyphart's own log file in a scrollable viewport.
//
// # Uploads
//
// The submit key runs upload.Controller.Submit inside a tea.Cmd, so the
// network call never blocks the event loop. The button reads
// "Upload & Convert" and switches to "Processing..." with a spinner while a
// request is in flight; pressing it again then does nothing. Results are
// decoded off the event loop and rendered by the preview package.
//
// # Alerts
//
// The controller's notifier writes failure texts to a channel. A command
// blocks on that channel and turns each text into an alert modal. Further
// notices queue behind the open alert, and no other key is handled until
// it is dismissed.
//
// # Header
//
// The header shows the service health from state.Store (online, checking or
// offline), when it was last probed and the endpoint. It refreshes on the UI
// tick, independent of the poller's own interval.
//
// # Preferences
//
// Cycling the theme (T) or selecting a file saves the theme and the picker
// directory through the prefs package.
package ui
