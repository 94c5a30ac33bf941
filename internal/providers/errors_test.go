package providers

import (
	"testing"

	crerr "github.com/cockroachdb/errors"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Provider:   "p",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got == "" || got == "rate limited" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	rl, ok := AsRateLimitError(crerr.Wrap(err, "fetch ranges"))
	if !ok || rl == nil {
		t.Fatalf("expected to unwrap wrapped rate limit error")
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got == "" {
		t.Fatalf("expected fallback message")
	}
}

func TestIsConfigError(t *testing.T) {
	if !IsConfigError(crerr.Wrap(ErrMissingCredentials, "googlesheets")) {
		t.Fatalf("expected wrapped missing credentials to be a config error")
	}
	if IsConfigError(ErrUnauthorized) {
		t.Fatalf("expected unauthorized not to be a config error")
	}
}
