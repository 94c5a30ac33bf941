package providers

import (
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"
)

var (
	// ErrMissingCredentials is a configuration error detected before any network call.
	ErrMissingCredentials = crerr.New("source credentials not configured")
	// ErrUnauthorized means the source rejected the credentials.
	ErrUnauthorized = crerr.New("source rejected credentials")
	// ErrProviderUnavailable is returned when no usable provider is wired.
	ErrProviderUnavailable = crerr.New("provider unavailable")
)

// RateLimitError captures rate limit responses from upstream sources.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if crerr.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// IsConfigError reports whether err stems from missing or invalid configuration.
// Such errors are not retried.
func IsConfigError(err error) bool {
	return crerr.Is(err, ErrMissingCredentials)
}
