package follower_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/nholloway4/followd/internal/domain"
	"github.com/nholloway4/followd/internal/domain/follower"
)

func TestValidateLogin_Valid(t *testing.T) {
	t.Parallel()

	valid := []string{
		"octocat",
		"a",
		"mona-lisa",
		"User123",
		strings.Repeat("x", 39),
	}

	for _, login := range valid {
		if err := follower.ValidateLogin(login); err != nil {
			t.Errorf("ValidateLogin(%q) = %v, want nil", login, err)
		}
	}
}

func TestValidateLogin_Invalid(t *testing.T) {
	t.Parallel()

	invalid := []string{
		"",
		"-octocat",
		"octocat-",
		"mona--lisa",
		"oct cat",
		"oct/cat",
		strings.Repeat("x", 40),
	}

	for _, login := range invalid {
		err := follower.ValidateLogin(login)
		if err == nil {
			t.Errorf("ValidateLogin(%q) = nil, want error", login)
			continue
		}
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("ValidateLogin(%q) = %v, want ErrValidation", login, err)
		}
	}
}

func TestValidateLogin_FieldDetail(t *testing.T) {
	t.Parallel()

	var verr *domain.ValidationError
	err := follower.ValidateLogin("")
	if !errors.As(err, &verr) {
		t.Fatalf("expected *domain.ValidationError, got %T", err)
	}
	if verr.Fields["login"] == "" {
		t.Error("expected a login field message")
	}
}
