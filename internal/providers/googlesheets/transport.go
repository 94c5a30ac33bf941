package googlesheets

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/jwt"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// resolveHTTPClient returns the injected client, or a service-account client that
// signs a JWT assertion and refreshes tokens as needed.
func resolveHTTPClient(cfg Config) httpDoer {
	if cfg.HTTPClient != nil {
		return cfg.HTTPClient
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	conf := &jwt.Config{
		Email:      cfg.ClientEmail,
		PrivateKey: []byte(cfg.PrivateKey),
		Scopes:     []string{scopeSheetsReadOnly, scopeDriveReadOnly},
		TokenURL:   tokenURL,
	}
	base := &http.Client{Timeout: defaultHTTPTimeout}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	client := conf.Client(ctx)
	client.Timeout = defaultHTTPTimeout
	return client
}

func normalizeBaseURL(raw, fallback string) string {
	if raw == "" {
		raw = fallback
	}
	return strings.TrimSuffix(raw, "/")
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
