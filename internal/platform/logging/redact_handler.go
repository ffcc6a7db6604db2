package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders is the canonical set of HTTP header names (lowercase)
// that carry credentials and must be redacted before logging. Shared with
// the HTTP middleware's RedactHeaders utility so the two sets cannot drift.
var SensitiveHeaders = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"x-api-key":           true,
	"cookie":              true,
}

// bearerPattern matches "Bearer <token>" strings that appear as raw values.
var bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`)

// githubTokenPattern matches GitHub personal access tokens in both the
// classic (ghp_, gho_, ghs_, ghr_) and fine-grained (github_pat_) formats.
var githubTokenPattern = regexp.MustCompile(`\b(gh[oprs]_[A-Za-z0-9]{36,}|github_pat_[A-Za-z0-9_]{22,})\b`)

// apiKeyInlinePattern matches inline "api_key=<value>" or "apikey:<value>"
// patterns that may appear in arbitrary string fields.
var apiKeyInlinePattern = regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`)

// fixedRedactOptions is the number of masq options beyond the dynamic
// SensitiveHeaders set (3 field names + 2 prefixes + 3 regexes).
const fixedRedactOptions = 8

// newRedactAttr returns a masq-powered ReplaceAttr function for use in
// slog.HandlerOptions. It redacts by field name for known sensitive fields
// and by regex for values that escape call-site redaction. The regex layer
// is what keeps a GitHub token out of the logs when it leaks through an
// error string or a dumped URL.
func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	opts := make([]masq.Option, 0, fixedRedactOptions+len(SensitiveHeaders))

	for name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}

	opts = append(opts,
		masq.WithFieldName("password"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),

		// Prefix-based redaction for variations like "token_v2", "secret_key".
		masq.WithFieldPrefix("secret_"),
		masq.WithFieldPrefix("api_key"),

		masq.WithRegex(bearerPattern),
		masq.WithRegex(githubTokenPattern),
		masq.WithRegex(apiKeyInlinePattern),
	)

	return masq.New(opts...)
}
