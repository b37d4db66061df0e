// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB
	MongoURI string
	MongoDB  string

	// PostgreSQL (sync run journal)
	PostgresURI string

	// Directory API
	DirectoryBaseURL string
	DirectoryToken   string
	DirectoryTimeout time.Duration

	// Push gateway
	PushEndpoint     string
	PushToken        string
	NotifyPermission string

	// Sync engine
	SyncInterval      time.Duration // minimum gap between scheduled runs
	SyncStaleAfter    time.Duration // record age before it is sync-eligible
	DisplayStaleAfter time.Duration // record age before the UI staleness badge
	ClosingSoonWindow time.Duration // "closing soon" lead time
	FetchInterval     time.Duration // minimum delay between remote calls in a batch
	RunBudget         time.Duration // execution budget per scheduled run
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars. The sync-eligibility and
	// display staleness thresholds are two independent knobs, not one.
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "placewatch"),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		DirectoryBaseURL: getEnv("DIRECTORY_BASE_URL", "https://directory.placewatch.dev"),
		DirectoryToken:   getEnv("DIRECTORY_TOKEN", ""),
		DirectoryTimeout: time.Duration(getEnvAsInt("DIRECTORY_TIMEOUT", 30)) * time.Second,

		PushEndpoint:     getEnv("PUSH_ENDPOINT", ""),
		PushToken:        getEnv("PUSH_TOKEN", ""),
		NotifyPermission: getEnv("NOTIFY_PERMISSION", "granted"),

		SyncInterval:      time.Duration(getEnvAsInt("SYNC_INTERVAL_HOURS", 12)) * time.Hour,
		SyncStaleAfter:    time.Duration(getEnvAsInt("SYNC_STALE_AFTER_HOURS", 24)) * time.Hour,
		DisplayStaleAfter: time.Duration(getEnvAsInt("DISPLAY_STALE_AFTER_DAYS", 7)) * 24 * time.Hour,
		ClosingSoonWindow: time.Duration(getEnvAsInt("CLOSING_SOON_MINUTES", 60)) * time.Minute,
		FetchInterval:     time.Duration(getEnvAsInt("FETCH_INTERVAL_MS", 1000)) * time.Millisecond,
		RunBudget:         time.Duration(getEnvAsInt("RUN_BUDGET_SECONDS", 25)) * time.Second,
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
