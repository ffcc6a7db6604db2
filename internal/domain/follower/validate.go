package follower

import (
	"fmt"
	"strings"

	"github.com/nholloway4/followd/internal/domain"
)

// maxLoginLength is the upstream limit on account login length.
const maxLoginLength = 39

// ValidateLogin checks that login is a plausible GitHub username: 1-39
// characters, alphanumeric or hyphen, no leading/trailing hyphen and no
// consecutive hyphens. Returns a *domain.ValidationError on failure.
func ValidateLogin(login string) error {
	msg := loginProblem(login)
	if msg == "" {
		return nil
	}
	return &domain.ValidationError{
		Fields: map[string]string{"login": msg},
	}
}

func loginProblem(login string) string {
	if login == "" {
		return "must not be empty"
	}
	if len(login) > maxLoginLength {
		return fmt.Sprintf("must be at most %d characters", maxLoginLength)
	}
	if strings.HasPrefix(login, "-") || strings.HasSuffix(login, "-") {
		return "must not start or end with a hyphen"
	}
	if strings.Contains(login, "--") {
		return "must not contain consecutive hyphens"
	}
	for _, r := range login {
		if !isLoginRune(r) {
			return fmt.Sprintf("contains invalid character %q", r)
		}
	}
	return ""
}

func isLoginRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '-':
		return true
	default:
		return false
	}
}
