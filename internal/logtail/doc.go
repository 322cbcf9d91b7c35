// Package logtail reads the tail of glyphart's log file for the log view.
//
// # Reading Log Files
//
// Read keeps a ring buffer of maxLines entries and scans the file once, so
// memory is O(maxLines) regardless of file size. A missing file is not an
// error; the log simply has not been written yet.
//
// # Parsing
//
// The app writes logs through zerolog's ConsoleWriter with colors disabled.
// ParseLine splits such a line into timestamp, three-letter level, message and
// the trailing key=value fields so the UI can style each part. Anything else
// (stack traces, wrapped lines) passes through as a raw message.
package logtail
