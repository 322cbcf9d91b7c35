package upload

import (
	"encoding/base64"
	"fmt"
)

// Phase is the controller's position in the submit lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// DataURIPrefix prefixes the base64 payload to form a displayable reference.
const DataURIPrefix = "data:image/png;base64,"

// Artifact is the converted image returned by the service.
type Artifact struct {
	// SourceName is the upload name the service echoed back.
	SourceName string
	// Payload is the base64 encoded PNG.
	Payload string
}

// DataURI returns the payload as a data:image/png;base64 URI.
func (a Artifact) DataURI() string {
	return DataURIPrefix + a.Payload
}

// Bytes decodes the payload.
func (a Artifact) Bytes() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(a.Payload)
	if err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	return data, nil
}

// State is a snapshot of the controller. The reachable shapes are
// Idle(input?), Submitting(input), Succeeded(input, artifact) and
// Failed(input, message).
type State struct {
	Phase    Phase
	Input    *Input
	Artifact *Artifact
	Message  string
}

// InFlight reports whether a request is outstanding.
func (s State) InFlight() bool {
	return s.Phase == PhaseSubmitting
}

// CanSubmit reports whether Submit would issue a request.
func (s State) CanSubmit() bool {
	return s.Input != nil && s.Phase != PhaseSubmitting
}

// HasResult reports whether an artifact is available for display or download.
func (s State) HasResult() bool {
	return s.Phase == PhaseSucceeded && s.Artifact != nil
}
