package config

const (
	defaultServerPort = 8080

	defaultPerPage     = 100
	defaultMaxPages    = 10
	defaultPageWorkers = 4

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultRateLimitRPS   = 5.0
	defaultRateLimitBurst = 10
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, the profile
// YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "30s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "json",

		"github.base_url":                        "https://api.github.com",
		"github.token":                           "",
		"github.timeout":                         "30s",
		"github.per_page":                        defaultPerPage,
		"github.max_pages":                       defaultMaxPages,
		"github.page_workers":                    defaultPageWorkers,
		"github.retry.max_attempts":              defaultRetryMaxAttempts,
		"github.retry.initial_interval":          "100ms",
		"github.retry.max_interval":              "10s",
		"github.retry.multiplier":                defaultRetryMultiplier,
		"github.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"github.circuit_breaker.timeout":         "30s",
		"github.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"github.rate_limit.requests_per_second":  defaultRateLimitRPS,
		"github.rate_limit.burst_size":           defaultRateLimitBurst,

		"telemetry.enabled":  false,
		"telemetry.exporter": "stdout",
		"telemetry.endpoint": "",
	}
}
