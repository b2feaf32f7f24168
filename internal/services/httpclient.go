package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/trobanga/ladle/internal/lib"
	"github.com/trobanga/ladle/internal/models"
)

// RequestIDHeader carries a per-request correlation id
const RequestIDHeader = "X-Request-ID"

// FieldError is one entry of a field-level validation error list
type FieldError struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type,omitempty"`
}

// Location joins the loc path with dots, e.g. "body.steel.Fe_g"
func (f FieldError) Location() string {
	parts := make([]string, 0, len(f.Loc))
	for _, p := range f.Loc {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, ".")
}

// RequestError is returned for any failed call to the calculation service:
// a non-success status or a network failure (StatusCode 0).
type RequestError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Details    []FieldError
	Cause      error
}

func (e *RequestError) Error() string {
	return e.Message
}

// Unwrap returns the network-level cause, if any
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// Transient reports whether repeating the same request could succeed
func (e *RequestError) Transient() bool {
	if e.StatusCode == 0 {
		if errors.Is(e.Cause, context.Canceled) {
			return false
		}
		return lib.IsNetworkError(e.Cause)
	}
	return lib.ClassifyHTTPError(e.StatusCode) == lib.ErrorTypeTransient
}

// IsNotFound reports whether the service answered 404
func (e *RequestError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// HTTPClient is the single request/response primitive for the calculation service
type HTTPClient struct {
	client      *http.Client
	baseURL     string
	retryConfig lib.RetryConfig
	logger      *lib.Logger
}

// NewHTTPClient creates a client for the service API rooted at BaseURL+APIPrefix
func NewHTTPClient(service models.ServiceConfig, retry models.RetryConfig, logger *lib.Logger) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout:   time.Duration(service.TimeoutSeconds) * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: strings.TrimRight(service.BaseURL, "/") + strings.TrimRight(service.APIPrefix, "/"),
		retryConfig: lib.RetryConfig{
			MaxAttempts:      retry.MaxAttempts,
			InitialBackoffMs: retry.InitialBackoffMs,
			MaxBackoffMs:     retry.MaxBackoffMs,
		},
		logger: logger,
	}
}

// URL returns the absolute URL of an API path
func (c *HTTPClient) URL(path string) string {
	return c.baseURL + path
}

// Get performs a GET and decodes the JSON response into out
func (c *HTTPClient) Get(ctx context.Context, path string, out any) error {
	return c.Call(ctx, http.MethodGet, path, nil, out)
}

// PostJSON performs a POST with a JSON body and decodes the JSON response into out
func (c *HTTPClient) PostJSON(ctx context.Context, path string, body any, out any) error {
	return c.Call(ctx, http.MethodPost, path, body, out)
}

// Call sends one JSON request and decodes the response into out (which may be nil).
// GET requests are retried on transient failures; other methods are sent once.
func (c *HTTPClient) Call(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	maxAttempts := 1
	if method == http.MethodGet && c.retryConfig.MaxAttempts > 1 {
		maxAttempts = c.retryConfig.MaxAttempts
	}

	for attempt := 0; ; attempt++ {
		raw, err := c.do(ctx, method, path, payload)
		if err == nil {
			if out == nil || len(bytes.TrimSpace(raw)) == 0 {
				return nil
			}
			if err := json.Unmarshal(raw, out); err != nil {
				return fmt.Errorf("failed to parse response from %s %s: %w", method, path, err)
			}
			return nil
		}

		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			return err
		}
		errType := lib.ErrorTypeNonTransient
		if reqErr.Transient() {
			errType = lib.ErrorTypeTransient
		}
		if !lib.ShouldRetry(errType, attempt+1, maxAttempts) {
			return err
		}

		lib.LogRetry(c.logger, method+" "+path, attempt, maxAttempts, err)
		if sleepErr := lib.Sleep(ctx, lib.CalculateBackoff(attempt, c.retryConfig.InitialBackoffMs, c.retryConfig.MaxBackoffMs)); sleepErr != nil {
			return err
		}
	}
}

// Open performs a GET and returns the live response for streaming.
// The caller must close the body. Non-success statuses are returned as *RequestError.
func (c *HTTPClient) Open(ctx context.Context, path string) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	lib.LogServiceCall(c.logger, req.URL.Host, req.URL.Path, req.Method)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.networkError(http.MethodGet, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer func() { _ = resp.Body.Close() }()
		raw, _ := io.ReadAll(resp.Body)
		return nil, c.parseErrorResponse(http.MethodGet, path, resp, raw)
	}

	return resp, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, payload []byte) (*http.Request, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	return req, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	resp, err := c.client.Do(req)
	lib.LogServiceCall(c.logger, req.URL.Host, req.URL.Path, req.Method)
	if err != nil {
		return nil, c.networkError(method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	lib.LogServiceResponse(c.logger, req.URL.Host, resp.StatusCode, time.Since(startTime))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.networkError(method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.parseErrorResponse(method, path, resp, raw)
	}

	return raw, nil
}

func (c *HTTPClient) networkError(method, path string, err error) *RequestError {
	return &RequestError{
		Method:  method,
		Path:    path,
		Message: err.Error(),
		Cause:   err,
	}
}

// parseErrorResponse turns an error body into a single readable message.
// A {"detail": [{loc, msg}, ...]} list becomes "loc: msg; loc: msg"; a
// {"detail": "..."} string is used as is; anything else, including a null or
// empty detail, falls back to the HTTP status text.
func (c *HTTPClient) parseErrorResponse(method, path string, resp *http.Response, raw []byte) *RequestError {
	reqErr := &RequestError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Detail) > 0 {
		var details []FieldError
		var detailText string
		switch {
		case json.Unmarshal(envelope.Detail, &details) == nil && len(details) > 0:
			c.logger.Error("Service validation error",
				"method", method,
				"path", path,
				"status", resp.StatusCode,
				"detail", string(envelope.Detail))
			msgs := make([]string, 0, len(details))
			for _, d := range details {
				msgs = append(msgs, fmt.Sprintf("%s: %s", d.Location(), d.Msg))
			}
			reqErr.Details = details
			reqErr.Message = strings.Join(msgs, "; ")
		case json.Unmarshal(envelope.Detail, &detailText) == nil:
			reqErr.Message = detailText
		}
	}

	if reqErr.Message == "" {
		reqErr.Message = statusText(resp)
	}

	return reqErr
}

func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}
