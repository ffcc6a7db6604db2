package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/nholloway4/followd/internal/platform/httpclient"
)

// Requester centralizes the HTTP request lifecycle for the GitHub adapter:
// request creation, execution via httpclient.Client, response body cleanup,
// status code validation, error translation, and JSON decoding. The GitHub
// surface this service consumes is read-only, so the Requester only issues
// GETs.
type Requester struct {
	client *httpclient.Client
	logger *slog.Logger
}

// NewRequester creates a Requester backed by the given HTTP client and logger.
func NewRequester(client *httpclient.Client, logger *slog.Logger) *Requester {
	return &Requester{client: client, logger: logger}
}

// Get executes a GET against the configured base URL. A 200 response is
// decoded into out (if non-nil); any other status is passed to
// TranslateHTTPError. The returned header is the response header of the
// successful request, which callers use to read pagination links.
func (r *Requester) Get(ctx context.Context, path string, out any) (http.Header, error) {
	url := r.client.BaseURL() + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating GET request for %s: %w", path, err)
	}

	resp, err := r.client.Do(ctx, req)
	if err != nil {
		// httpclient.Do can return both resp and err when retries are
		// exhausted on a retryable status. In that case, translate the HTTP
		// response into a domain error rather than returning the raw retry
		// error.
		if resp != nil {
			defer r.closeBody(ctx, resp)
			if resp.StatusCode != http.StatusOK {
				return nil, TranslateHTTPError(resp)
			}
		}
		r.logger.ErrorContext(ctx, "request failed",
			slog.String("method", http.MethodGet),
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer r.closeBody(ctx, resp)

	if resp.StatusCode != http.StatusOK {
		translateErr := TranslateHTTPError(resp)
		r.logger.ErrorContext(ctx, "unexpected status",
			slog.String("method", http.MethodGet),
			slog.String("url", url),
			slog.Int("status", resp.StatusCode),
		)
		return nil, translateErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("decoding response from GET %s: %w", path, err)
		}
	}

	return resp.Header, nil
}

// BaseURL returns the base URL from the underlying HTTP client.
func (r *Requester) BaseURL() string {
	return r.client.BaseURL()
}

// CircuitBreakerState returns the circuit breaker state from the underlying
// HTTP client.
func (r *Requester) CircuitBreakerState() string {
	return r.client.CircuitBreakerState()
}

// closeBody closes an HTTP response body and logs on failure.
func (r *Requester) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		r.logger.WarnContext(ctx, "failed to close response body",
			slog.String("error", err.Error()),
		)
	}
}
