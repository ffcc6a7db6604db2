package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestBackoffBounds(t *testing.T) {
	t.Parallel()

	cfg := retryConfig{
		maxAttempts:     5,
		initialInterval: 100 * time.Millisecond,
		maxInterval:     time.Second,
		multiplier:      2.0,
	}

	for attempt := 1; attempt < cfg.maxAttempts; attempt++ {
		delay := backoff(attempt, cfg)
		if delay < 0 {
			t.Errorf("backoff(%d) = %v, want >= 0", attempt, delay)
		}
		// Max interval plus full jitter is the hard ceiling.
		ceiling := time.Duration(float64(cfg.maxInterval) * (1 + jitterFraction))
		if delay > ceiling {
			t.Errorf("backoff(%d) = %v, want <= %v", attempt, delay, ceiling)
		}
	}
}

func TestBackoffGrowsWithAttempts(t *testing.T) {
	t.Parallel()

	cfg := retryConfig{
		maxAttempts:     4,
		initialInterval: 10 * time.Millisecond,
		maxInterval:     time.Hour,
		multiplier:      10.0,
	}

	// With a 10x multiplier, even worst-case jitter cannot make a later
	// attempt shorter than an earlier one.
	first := backoff(1, cfg)
	third := backoff(3, cfg)
	if third <= first {
		t.Errorf("backoff(3) = %v, want > backoff(1) = %v", third, first)
	}
}

func TestIsRetryableStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		retryAfter string
		want       bool
	}{
		{"ok", http.StatusOK, "", false},
		{"not found", http.StatusNotFound, "", false},
		{"forbidden without retry-after", http.StatusForbidden, "", false},
		{"forbidden with retry-after", http.StatusForbidden, "1", true},
		{"too many requests", http.StatusTooManyRequests, "", true},
		{"internal server error", http.StatusInternalServerError, "", true},
		{"bad gateway", http.StatusBadGateway, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := &http.Response{StatusCode: tt.status, Header: http.Header{}}
			if tt.retryAfter != "" {
				resp.Header.Set("Retry-After", tt.retryAfter)
			}
			if got := isRetryableStatus(resp); got != tt.want {
				t.Errorf("isRetryableStatus(%d) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestRetryAfterParsing(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rec.Header().Set("Retry-After", "30")
	resp := rec.Result()
	defer resp.Body.Close()

	if got := retryAfter(resp); got != 30*time.Second {
		t.Errorf("retryAfter() = %v, want 30s", got)
	}

	resp.Header.Set("Retry-After", "not-a-number")
	if got := retryAfter(resp); got != 0 {
		t.Errorf("retryAfter() malformed = %v, want 0", got)
	}
}
