// Package acl implements the Anti-Corruption Layer that translates between
// the GitHub REST API's representations and domain types: wire DTOs, error
// mapping, and pagination handling.
package acl

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nholloway4/followd/internal/domain"
)

// maxErrorBodySize limits how much of an error response body we read.
const maxErrorBodySize = 1 << 20 // 1 MB

// apiError represents GitHub's error response body.
type apiError struct {
	Message string       `json:"message"`
	Errors  []fieldError `json:"errors"`
}

// fieldError represents a single entry of GitHub's 422 errors array.
type fieldError struct {
	Resource string `json:"resource"`
	Field    string `json:"field"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// TranslateHTTPError maps a GitHub error response to a domain error. The
// response body's message field, when present, becomes the error context.
//
// GitHub signals both primary and secondary rate limits as 403 with an
// x-ratelimit-remaining of 0 or a Retry-After header; those map to
// domain.ErrUnavailable rather than ErrForbidden because the caller can
// succeed later without changing credentials.
func TranslateHTTPError(resp *http.Response) error {
	ae := parseAPIError(resp)

	detail := ae.Message
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", detail, domain.ErrNotFound)

	case resp.StatusCode == http.StatusUnprocessableEntity:
		if len(ae.Errors) > 0 {
			return toValidationError(ae.Errors)
		}
		return fmt.Errorf("%s: %w", detail, domain.ErrValidation)

	case resp.StatusCode == http.StatusForbidden && isRateLimited(resp):
		return fmt.Errorf("%s: %w", detail, domain.ErrUnavailable)

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w", detail, domain.ErrForbidden)

	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w", detail, domain.ErrUnavailable)

	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%s: %w", detail, domain.ErrUnavailable)

	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, detail)
	}
}

// isRateLimited reports whether a 403 response carries GitHub's rate limit
// markers.
func isRateLimited(resp *http.Response) bool {
	if resp.Header.Get("Retry-After") != "" {
		return true
	}
	return resp.Header.Get("X-Ratelimit-Remaining") == "0"
}

// parseAPIError attempts to read and parse a GitHub error body from the
// response. Returns an empty apiError if parsing fails.
func parseAPIError(resp *http.Response) apiError {
	if resp.Body == nil {
		return apiError{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return apiError{}
	}

	var ae apiError
	if err := json.Unmarshal(body, &ae); err != nil {
		return apiError{}
	}
	return ae
}

// toValidationError converts GitHub's 422 errors array to a domain
// ValidationError keyed by field name.
func toValidationError(details []fieldError) *domain.ValidationError {
	fields := make(map[string]string, len(details))
	for _, d := range details {
		name := d.Field
		if name == "" {
			name = d.Resource
		}
		msg := d.Message
		if msg == "" {
			msg = strings.ReplaceAll(d.Code, "_", " ")
		}
		fields[name] = msg
	}
	return &domain.ValidationError{Fields: fields}
}
