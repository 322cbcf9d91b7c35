package glyphsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// Converter uploads images to the conversion service.
// This interface is implemented by *Client and can be used for testing.
type Converter interface {
	Upload(ctx context.Context, img Image) (Result, error)
	Health(ctx context.Context) (*HealthResponse, error)
}

// Ensure Client implements Converter at compile time.
var _ Converter = (*Client)(nil)

// FieldName is the multipart field the service reads the image from.
const FieldName = "image"

const (
	defaultEndpoint  = "http://localhost:8000/upload"
	defaultUserAgent = "glyphart/0.1"
	healthTimeout    = 3 * time.Second
	maxErrorBody     = 256
)

// Client talks to the conversion service over HTTP.
type Client struct {
	endpoint *url.URL
	health   *url.URL
	http     *resty.Client
}

// NewClient builds a Client for the given upload endpoint URL. Uploads carry
// no timeout: a conversion runs until the service answers or the context ends.
func NewClient(endpoint string) (*Client, error) {
	u, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	httpClient := resty.New().
		SetDebug(false).
		SetHeaders(map[string]string{
			"Accept":     "application/json",
			"User-Agent": defaultUserAgent,
		})
	return &Client{
		endpoint: u,
		health:   &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"},
		http:     httpClient,
	}, nil
}

// Endpoint returns the upload URL.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Upload posts img as a single multipart part named "image" and decodes the
// JSON response. Errors wrap ErrTransport, ErrDecode or are a *ServiceError.
func (c *Client) Upload(ctx context.Context, img Image) (Result, error) {
	if c == nil {
		return Result{}, fmt.Errorf("client is nil")
	}
	name := strings.TrimSpace(img.Name)
	if name == "" {
		name = "image"
	}
	mimeType := strings.TrimSpace(img.MIMEType)
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", RequestID(ctx)).
		SetMultipartField(FieldName, name, mimeType, bytes.NewReader(img.Data)).
		Post(c.endpoint.String())
	if err != nil {
		return Result{}, fmt.Errorf("%w: execute request: %w", ErrTransport, err)
	}
	if !res.IsSuccess() {
		return Result{}, fmt.Errorf("upload %s: %w", c.endpoint.Path, &StatusError{
			Code: res.StatusCode(),
			Body: truncateBody(res.Body()),
		})
	}

	var payload UploadResponse
	if err := json.Unmarshal(res.Body(), &payload); err != nil {
		return Result{}, fmt.Errorf("%w: decode response: %v", ErrDecode, err)
	}
	if payload.Failed() {
		return Result{}, &ServiceError{Message: payload.ErrorMessage()}
	}
	return payload.result()
}

// Health probes the service root.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	res, err := c.http.R().
		SetContext(ctx).
		Get(c.health.String())
	if err != nil {
		return nil, fmt.Errorf("%w: execute request: %w", ErrTransport, err)
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("health: %w", &StatusError{Code: res.StatusCode()})
	}
	var payload HealthResponse
	if err := json.Unmarshal(res.Body(), &payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrDecode, err)
	}
	return &payload, nil
}

type requestIDKey struct{}

// WithRequestID attaches a request id that Upload sends as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id attached to ctx, generating one when absent.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = defaultEndpoint
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("endpoint %q has no host", endpoint)
	}
	u.Fragment = ""
	return u, nil
}

func truncateBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if runes := []rune(s); len(runes) > maxErrorBody {
		return string(runes[:maxErrorBody]) + "..."
	}
	return s
}
