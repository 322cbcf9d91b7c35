// Package state provides thread-safe storage for the conversion service's
// health as seen by the background poller.
//
// # Overview
//
// The poller writes, the UI reads:
//
//	Poller:                        UI:
//	┌────────────────┐            ┌──────────────────┐
//	│ client.Health()│            │                  │
//	│      ↓         │            │                  │
//	│ store.Update() │───────────→│ store.Snapshot() │
//	│      ↓         │  (mutex)   │      ↓           │
//	│  repeat...     │            │  render header   │
//	└────────────────┘            └──────────────────┘
//
// # Core Types
//
// Store wraps a Snapshot behind a sync.RWMutex. Snapshot is returned by value;
// its LastError is rewrapped so readers never share the poller's error value.
//
// # Failure Tracking
//
// A failed probe keeps the last known health and increments
// ConsecutiveFailures. IsOffline reports true from the second consecutive
// failure on, which keeps a single dropped probe from flashing "offline" in the
// header. A successful probe resets the counter.
//
// Upload state does not live here; the upload controller owns it.
package state
