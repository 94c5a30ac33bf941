package config

import "time"

const (
	envPort              = "PORT"
	envPollInterval      = "POLL_INTERVAL"
	envCycleTimeout      = "CYCLE_TIMEOUT"
	envProvider          = "PROVIDER"
	envSourceMinInterval = "SOURCE_MIN_INTERVAL"
	envLayoutFile        = "LAYOUT_FILE"
	envTimezone          = "TIMEZONE"
	envMetricsPort       = "METRICS_PORT"
	envMetricsOn         = "METRICS_ENABLED"
	envOtelEndpoint      = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService       = "OTEL_SERVICE_NAME"
	envOtelInsecure      = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken        = "ADMIN_TOKEN"

	defaultPort = "4000"
	// The public board refreshes every 30 seconds.
	defaultPollInterval = 30 * Duration(time.Second)
	// Must stay under the poll interval so a slow cycle never eats the next tick.
	defaultCycleTimeout = 20 * Duration(time.Second)
	defaultProvider     = ProviderFixture
	// Sheets API read quota is per minute per user; five reads per cycle leaves headroom.
	defaultSourceMinInterval = 5 * Duration(time.Second)
	defaultTimezone          = "Asia/Manila"
	defaultMetricsPort       = "9090"
	defaultServiceName       = "housefest-board"
)

// Provider names accepted by PROVIDER.
const (
	ProviderFixture      = "fixture"
	ProviderGoogleSheets = "googlesheets"
	ProviderWorkbook     = "workbook"
)
