// Package upload implements the upload controller: the selected input, the
// idle/in-flight gate and the latest conversion result.
//
// # Lifecycle
//
//	Select(a)            Idle(a)
//	Submit()             Submitting(a)        one request, gate closed
//	  ok                 Succeeded(a, art)
//	  error              Failed(a, message)   Notifier called once
//	Select(b)            Idle(b)              result cleared
//
// Submit is a silent no-op (returns false) without an input or while a request
// is in flight. The gate is released from a deferred settle, so no exit path,
// including a panicking Uploader, leaves the controller stuck in Submitting.
//
// Selecting a new input while a request is in flight records the input at once
// but keeps the gate closed until the request settles. A success for the old
// input is then dropped; a failure is still reported.
//
// There is no retry, timeout or cancellation. The caller's context is passed to
// the Uploader as is.
//
// # Results
//
// An Artifact holds the base64 payload returned by the service. DataURI gives
// data:image/png;base64,<payload>; Download writes the decoded bytes under a
// fixed suggested filename (glyphart.png unless configured).
package upload
