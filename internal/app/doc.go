// Package app is the composition root for glyphart.
//
// # Overview
//
// Run loads configuration, points the global zerolog logger at the log file,
// builds the conversion service client and the upload controller, and then
// either converts a single file (headless mode) or starts the TUI.
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()         config.toml, .env, environment
//	       ├─────> setupLogging()        log file, or stderr when headless
//	       ├─────> glyphsvc.NewClient()  resty client for the service
//	       ├─────> upload.NewController() gate, state, notifier
//	       ├─────> RunPoller()           health probes into state.Store
//	       └─────> ui.Run()              Bubble Tea program (blocks)
//
// The poller and the UI run in one errgroup. Quitting the UI cancels the
// poller; cancelling the parent context (SIGINT, SIGTERM) stops both.
//
// # Notifications
//
// In the TUI the controller's notifier writes to a channel the UI drains into
// an alert modal. Headless runs record the notice and return it as the error,
// which cmd/glyphart prints to stderr.
//
// # Polling Behavior
//
// Health probes run every HealthInterval. Consecutive failures double the
// delay up to 30 seconds; the first success resets it. Probe failures are
// logged and never end the program.
package app
