package glyphsvc

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Image is a single file submitted for conversion.
type Image struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Result is a successfully decoded conversion response.
type Result struct {
	// Filename is the upload name echoed back by the service, if any.
	Filename string
	// Payload is the base64 text of the converted PNG.
	Payload string
}

// UploadResponse mirrors the JSON body returned by the upload endpoint.
type UploadResponse struct {
	Filename    string          `json:"filename"`
	Base64Image string          `json:"base64_image"`
	Status      string          `json:"status"`
	Error       json.RawMessage `json:"error,omitempty"`
	Message     string          `json:"message"`
	Detail      json.RawMessage `json:"detail,omitempty"`
}

// HealthResponse is the service root payload, e.g. {"status":"backend running"}.
type HealthResponse struct {
	Status string `json:"status"`
}

const defaultServiceMessage = "the service could not process the image"

// Failed reports whether the body carries an application-level error indicator.
func (r UploadResponse) Failed() bool {
	if strings.EqualFold(strings.TrimSpace(r.Status), "error") {
		return true
	}
	switch v := rawValue(r.Error).(type) {
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return false
	}
}

// ErrorMessage returns the human readable message attached to a failed
// response, preferring message, then error, then detail.
func (r UploadResponse) ErrorMessage() string {
	if msg := strings.TrimSpace(r.Message); msg != "" {
		return msg
	}
	if msg, ok := rawValue(r.Error).(string); ok && strings.TrimSpace(msg) != "" {
		return strings.TrimSpace(msg)
	}
	switch v := rawValue(r.Detail).(type) {
	case string:
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	case []any:
		// FastAPI validation errors: [{"loc": [...], "msg": "...", ...}]
		for _, entry := range v {
			if obj, ok := entry.(map[string]any); ok {
				if msg, ok := obj["msg"].(string); ok && strings.TrimSpace(msg) != "" {
					return strings.TrimSpace(msg)
				}
			}
		}
	}
	return defaultServiceMessage
}

// result validates the payload and converts the response into a Result.
func (r UploadResponse) result() (Result, error) {
	payload := strings.TrimSpace(r.Base64Image)
	if payload == "" {
		return Result{}, fmt.Errorf("%w: response has no base64_image", ErrDecode)
	}
	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return Result{}, fmt.Errorf("%w: base64_image: %v", ErrDecode, err)
	}
	return Result{Filename: r.Filename, Payload: payload}, nil
}

func rawValue(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}
