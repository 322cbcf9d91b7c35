// Package glyphsvc provides an HTTP client for the character-art conversion
// service.
//
// # Overview
//
// The service is an opaque collaborator: it accepts an image and answers with
// a PNG rendering of it built from rotated glyphs, encoded as base64 text.
// This package owns the wire contract and nothing else.
//
// # Architecture
//
//   - client.go: resty-based client, multipart upload and health probe
//   - types.go: request/response shapes and response validation
//   - errors.go: error classification
//
// # Client Usage
//
//	client, err := glyphsvc.NewClient("http://localhost:8000/upload")
//	if err != nil {
//		return err
//	}
//
//	res, err := client.Upload(ctx, glyphsvc.Image{
//		Name:     "cat.jpg",
//		MIMEType: "image/jpeg",
//		Data:     data,
//	})
//
// # API Endpoints
//
//   - POST <endpoint>: multipart/form-data with a single part named "image".
//     Answers {"filename": "...", "base64_image": "..."}.
//   - GET <endpoint origin>/: liveness, answers {"status": "backend running"}.
//
// # Request Handling
//
// Uploads:
//   - Carry exactly one multipart part; its Content-Type is the input MIME type
//   - Send Accept: application/json and User-Agent: glyphart/0.1
//   - Send X-Request-ID taken from the context (see WithRequestID)
//   - Have no client-side timeout and are never retried
//
// Health probes use a 3 second timeout.
//
// # Error Handling
//
// Every Upload failure falls into exactly one class:
//
//   - ErrTransport: connection failures and non-2xx statuses (*StatusError)
//   - ErrDecode: body is not JSON, or base64_image is missing or not base64
//   - *ServiceError: the body parsed but carries an error indicator
//
// An error indicator is status == "error" or a truthy "error" field. Its
// message is read from "message", then "error", then "detail" (string or a
// FastAPI validation list). The indicator is checked before the payload, so a
// response flagged as failed is never treated as a result.
package glyphsvc
