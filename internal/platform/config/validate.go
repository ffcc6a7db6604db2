package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.GitHub.validate(),
		c.Telemetry.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (g *GitHubConfig) validate() error {
	var errs []error

	if g.BaseURL == "" {
		errs = append(errs, errors.New("github.base_url must not be empty"))
	} else if _, err := url.Parse(g.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("github.base_url is not a valid URL: %w", err))
	}
	if g.Timeout <= 0 {
		errs = append(errs, errors.New("github.timeout must be positive"))
	}
	if g.PerPage < 1 || g.PerPage > 100 {
		errs = append(errs, fmt.Errorf("github.per_page must be between 1 and 100, got %d", g.PerPage))
	}
	if g.MaxPages < 1 {
		errs = append(errs, fmt.Errorf("github.max_pages must be >= 1, got %d", g.MaxPages))
	}
	if g.PageWorkers < 1 {
		errs = append(errs, fmt.Errorf("github.page_workers must be >= 1, got %d", g.PageWorkers))
	}
	if g.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("github.retry.max_attempts must be >= 1, got %d", g.Retry.MaxAttempts))
	}
	if g.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("github.retry.multiplier must be positive, got %f", g.Retry.Multiplier))
	}
	if g.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("github.circuit_breaker.max_failures must be >= 1, got %d",
			g.CircuitBreaker.MaxFailures))
	}
	if g.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("github.rate_limit.requests_per_second must not be negative, got %f",
			g.RateLimit.RequestsPerSecond))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}
