package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	adapthttp "github.com/nholloway4/followd/internal/adapters/http"
	"github.com/nholloway4/followd/internal/adapters/http/handlers"
	"github.com/nholloway4/followd/internal/app"
	"github.com/nholloway4/followd/internal/platform/health"
)

// The router tests only need routing metadata, so the service is backed by
// the real app layer with a client that is never called.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	svc := app.NewFollowerService(nil, nil, nil)
	fh := handlers.NewFollowerHandler(svc)
	hh := handlers.NewHealthHandler(health.New())

	return adapthttp.NewRouter(fh, hh)
}

func TestRouter_AllRoutesRegistered(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	expectedRoutes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/health/live"},
		{http.MethodGet, "/health/ready"},
		{http.MethodGet, "/api/v1/users/{login}/followers"},
		{http.MethodPost, "/api/v1/users/{login}/refresh"},
		{http.MethodPost, "/api/v1/users/{login}/sync"},
		{http.MethodGet, "/api/v1/users/{login}/profile"},
		{http.MethodGet, "/api/v1/actions"},
	}

	chiRouter, ok := router.(*chi.Mux)
	if !ok {
		t.Fatal("router is not *chi.Mux")
	}

	registered := make(map[string]bool)
	err := chi.Walk(chiRouter, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	})
	if err != nil {
		t.Fatalf("chi.Walk: %v", err)
	}

	for _, want := range expectedRoutes {
		if !registered[want.method+" "+want.path] {
			t.Errorf("route %s %s not registered", want.method, want.path)
		}
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRouter_HealthLive(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
