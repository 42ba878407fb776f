// Package clubapi is a typed client for the ClubSync REST API.
//
// Every method is a single pass-through HTTP call; there is no retry,
// caching or local state.
package clubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"clubsync/internal/platform/requestid"
)

// DefaultTimeout bounds each API call when the caller's context has no deadline.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// RequestIDHeader carries the id the API server logs. Calls made while serving
// a web request reuse that request's id; others get a fresh one.
const RequestIDHeader = requestid.Header

// ErrNotFound is returned (wrapped in *APIError) for 404 responses.
var ErrNotFound = errors.New("not found")

var tracer = otel.Tracer("clubsync/clubapi")

// Client talks to the REST API rooted at BaseURL.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-call timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a client for the API at baseURL (e.g. "http://localhost:8000").
// PRE: baseURL is an absolute http(s) URL
// POST: Returns a ready-to-use client
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api base url must be http or https, got %q", baseURL)
	}
	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// do performs one API call. in (if non-nil) is sent as JSON; out (if non-nil)
// receives the decoded JSON response.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	ctx, span := tracer.Start(ctx, "clubapi "+method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	target := c.baseURL.JoinPath(path)
	// Keep the trailing slash the API routes require.
	if strings.HasSuffix(path, "/") && !strings.HasSuffix(target.Path, "/") {
		target.Path += "/"
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := requestid.From(ctx)
	if reqID == "" {
		reqID = requestid.New()
	}
	req.Header.Set(RequestIDHeader, reqID)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	slog.Debug("api_call",
		"request_id", reqID,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := parseAPIError(resp.StatusCode, raw)
		span.SetStatus(codes.Error, apiErr.Error())
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %w", ErrNotFound, apiErr)
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.RecordError(err)
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// ErrorMessage extracts the user-facing message of an API error, or "" if err
// is not an API error or carries no message.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return ""
}
