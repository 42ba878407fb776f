package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"clubsync/internal/adapters/http/perf"
	"clubsync/internal/platform/requestid"
)

// DefaultSlowRequest is used when no slow-request threshold is configured.
const DefaultSlowRequest = 200 * time.Millisecond

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = requestid.Header

// Unmetered reports whether path is plumbing that is neither timed nor rate
// limited: embedded assets and the health check.
func Unmetered(path string) bool {
	return strings.HasPrefix(path, "/static/") || path == "/healthz"
}

// routeLabel groups requests per route by replacing numeric path segments,
// so "/api/events/17/" and "/calendar/events/3/delete" aggregate as
// "/api/events/{id}/" and "/calendar/events/{id}/delete".
func routeLabel(method, path string) string {
	segs := strings.Split(path, "/")
	for i, s := range segs {
		if s != "" && strings.Trim(s, "0123456789") == "" {
			segs[i] = "{id}"
		}
	}
	return method + " " + strings.Join(segs, "/")
}

// statusRecorder remembers the status written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

// Timing returns the outermost middleware of both servers. It adopts the
// caller's X-Request-ID (the web client forwards its own to the API) or issues
// one, puts it in the request context for API calls and SQL logging, echoes it
// in the response, logs the request and records it for /admin/perf.
// Requests at or above slow log at WARN; slow <= 0 means DefaultSlowRequest.
func Timing(collector *perf.Collector, slow time.Duration) func(http.Handler) http.Handler {
	if slow <= 0 {
		slow = DefaultSlowRequest
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if Unmetered(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			reqID := requestid.Accept(r.Header.Get(requestid.Header))
			w.Header().Set(requestid.Header, reqID)
			r = r.WithContext(requestid.With(r.Context(), reqID))

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			defer func() {
				elapsed := time.Since(start)
				attrs := []any{
					"request_id", reqID,
					"method", r.Method,
					"path", r.URL.Path,
					"status", rec.status,
					"duration_ms", float64(elapsed.Microseconds()) / 1000.0,
				}
				if elapsed >= slow {
					slog.Warn("slow_request", attrs...)
				} else {
					slog.Debug("request", attrs...)
				}
				if collector != nil {
					collector.Record(perf.Entry{
						Kind:       perf.KindRequest,
						Path:       routeLabel(r.Method, r.URL.Path),
						StatusCode: rec.status,
						RequestID:  reqID,
						DurationMs: float64(elapsed.Microseconds()) / 1000.0,
						Timestamp:  start,
					})
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
