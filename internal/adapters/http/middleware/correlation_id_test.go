package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCorrelationID_ReusesIncoming(t *testing.T) {
	t.Parallel()

	var ctxID string
	handler := CorrelationID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ctxID = CorrelationIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-ID", "corr-123")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if ctxID != "corr-123" {
		t.Errorf("context correlation ID = %q, want corr-123", ctxID)
	}
	if got := rec.Header().Get("X-Correlation-ID"); got != "corr-123" {
		t.Errorf("response header = %q, want corr-123", got)
	}
}

func TestCorrelationID_FallsBackToRequestID(t *testing.T) {
	t.Parallel()

	var ctxID string
	handler := Chain(RequestID(), CorrelationID())(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ctxID = CorrelationIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-789")

	handler.ServeHTTP(httptest.NewRecorder(), req)

	if ctxID != "req-789" {
		t.Errorf("correlation ID = %q, want request ID fallback req-789", ctxID)
	}
}
