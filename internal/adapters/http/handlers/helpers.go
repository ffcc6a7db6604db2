package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nholloway4/followd/internal/domain"
)

// loginParam extracts the login path parameter from the chi URL params.
// Syntactic validation happens in the service layer; here we only reject
// the degenerate empty case.
func loginParam(r *http.Request) (string, error) {
	login := chi.URLParam(r, "login")
	if login == "" {
		return "", &domain.ValidationError{
			Fields: map[string]string{"login": "must not be empty"},
		}
	}
	return login, nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}
