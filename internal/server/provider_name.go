package server

import (
	"strings"

	"github.com/housefest/board-service/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving it from the instance
// when not explicitly configured. Logs and metrics share this name.
func normalizeProviderName(raw string, provider providers.SourceProvider) string {
	if name := strings.ToLower(strings.TrimSpace(raw)); name != "" {
		return name
	}
	if provider != nil {
		return strings.ToLower(providers.NameOf(provider, "provider"))
	}
	return "provider"
}
