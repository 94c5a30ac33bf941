package config

const (
	envWorkbookPath = "WORKBOOK_PATH"
	envRedisURL     = "REDIS_URL"
	envRedisChannel = "REDIS_CHANNEL"

	defaultRedisChannel = "housefest:board"
)

// WorkbookConfig points the workbook provider at a local spreadsheet export.
type WorkbookConfig struct {
	Path string
}

// RedisConfig enables snapshot notifications when URL is set.
type RedisConfig struct {
	URL     string
	Channel string
}

// Enabled reports whether notifications should be published.
func (r RedisConfig) Enabled() bool {
	return r.URL != ""
}

func loadWorkbook() WorkbookConfig {
	return WorkbookConfig{Path: envOrDefault(envWorkbookPath, "")}
}

func loadRedis() RedisConfig {
	return RedisConfig{
		URL:     envOrDefault(envRedisURL, ""),
		Channel: envOrDefault(envRedisChannel, defaultRedisChannel),
	}
}
