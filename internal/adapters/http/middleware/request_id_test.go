package middleware

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
)

var uuidV4Pattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestRequestID_Generates(t *testing.T) {
	t.Parallel()

	var ctxID string
	handler := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ctxID = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !uuidV4Pattern.MatchString(ctxID) {
		t.Errorf("generated request ID %q is not a UUID v4", ctxID)
	}
	if got := rec.Header().Get("X-Request-ID"); got != ctxID {
		t.Errorf("response header = %q, want %q", got, ctxID)
	}
}

func TestRequestID_ReusesIncoming(t *testing.T) {
	t.Parallel()

	var ctxID string
	handler := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ctxID = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "incoming-id")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if ctxID != "incoming-id" {
		t.Errorf("context request ID = %q, want incoming-id", ctxID)
	}
	if got := rec.Header().Get("X-Request-ID"); got != "incoming-id" {
		t.Errorf("response header = %q, want incoming-id", got)
	}
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := RequestIDFromContext(req.Context()); got != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty", got)
	}
}
