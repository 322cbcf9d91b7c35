package upload

import (
	"errors"
	"strings"

	"github.com/five82/glyphart/internal/glyphsvc"
)

// User-facing failure texts.
const (
	MsgUploadFailed = "Upload failed"
	MsgGeneric      = "Something went wrong :("
	MsgServiceError = "The service could not process the image"
)

// Notifier delivers a failure message to the user. Notify is called
// synchronously from Submit, once per failed submission.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Notify calls f(message).
func (f NotifierFunc) Notify(message string) { f(message) }

// NotificationText maps a submission error to the text shown to the user.
func NotificationText(err error) string {
	if err == nil {
		return ""
	}
	var svcErr *glyphsvc.ServiceError
	switch {
	case errors.As(err, &svcErr):
		if msg := strings.TrimSpace(svcErr.Message); msg != "" {
			return msg
		}
		return MsgServiceError
	case errors.Is(err, glyphsvc.ErrTransport):
		return MsgUploadFailed
	default:
		return MsgGeneric
	}
}
