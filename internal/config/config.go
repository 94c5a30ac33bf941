package config

// Config holds runtime configuration for the server.
type Config struct {
	Port              string
	PollInterval      Duration
	CycleTimeout      Duration
	Provider          string
	SourceMinInterval Duration
	LayoutFile        string
	Timezone          string
	AdminToken        string
	Google            GoogleConfig
	Workbook          WorkbookConfig
	Redis             RedisConfig
	Metrics           MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:              envOrDefault(envPort, defaultPort),
		PollInterval:      durationEnvOrDefault(envPollInterval, defaultPollInterval),
		CycleTimeout:      durationEnvOrDefault(envCycleTimeout, defaultCycleTimeout),
		Provider:          envOrDefault(envProvider, defaultProvider),
		SourceMinInterval: durationEnvOrDefault(envSourceMinInterval, defaultSourceMinInterval),
		LayoutFile:        envOrDefault(envLayoutFile, ""),
		Timezone:          envOrDefault(envTimezone, defaultTimezone),
		AdminToken:        envOrDefault(envAdminToken, ""),
		Google:            loadGoogle(),
		Workbook:          loadWorkbook(),
		Redis:             loadRedis(),
		Metrics:           loadMetrics(),
	}
}
