package glyphsvc

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers unreachable services and non-2xx responses.
	ErrTransport = errors.New("transport failure")
	// ErrDecode covers bodies that are not the expected JSON structure.
	ErrDecode = errors.New("decode failure")
)

// ServiceError is returned when the service answers but flags the request as
// failed.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return "service error: " + e.Message
}

// StatusError carries the HTTP status of a non-2xx response. It unwraps to
// ErrTransport.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api returned status %d", e.Code)
	}
	return fmt.Sprintf("api returned status %d: %s", e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrTransport }
