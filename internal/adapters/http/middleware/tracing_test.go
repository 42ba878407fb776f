package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// TestTracing_RecordsServerSpan verifies one server span per request with the status code.
func TestTracing_RecordsServerSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	var inner trace.SpanContext
	handler := Tracing("clubsync-test")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = trace.SpanContextFromContext(r.Context())
		w.WriteHeader(http.StatusInternalServerError)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/events/", nil))

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	s := spans[0]
	if s.Name() != "GET /api/events/" || s.SpanKind() != trace.SpanKindServer {
		t.Errorf("span = %s kind=%v", s.Name(), s.SpanKind())
	}
	if !inner.IsValid() || inner.SpanID() != s.SpanContext().SpanID() {
		t.Error("handler context should carry the server span")
	}
	if s.Status().Code.String() != "Error" {
		t.Errorf("status = %v, want Error", s.Status().Code)
	}
}
