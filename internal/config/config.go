package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// APIToken is the static bearer token required on every API request.
	APIToken string

	// TrustedProxies lists proxy IPs whose X-Forwarded-For header is
	// honored when attributing requests to a client.
	TrustedProxies []string

	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	// EventLogRetentionDays bounds the event audit table. Cleanup runs
	// periodically in the background.
	EventLogRetentionDays   int
	EventLogCleanupInterval time.Duration

	// SkillPointsPerLevel is the number of skill points granted per level
	// gained. The curve itself never exposes this; it is a tuning knob.
	SkillPointsPerLevel int

	// ContentDir holds designer JSON content synced to the database at boot.
	ContentDir string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		ServiceName: getEnv("SERVICE_NAME", "gamecore"),
		Version:     getEnv("VERSION", "dev"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "gamecore"),
		APIToken:    getEnv("API_TOKEN", ""),
		ContentDir:  getEnv("CONTENT_DIR", "configs"),

		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", "logs/event_deadletter.jsonl"),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	points, err := strconv.Atoi(getEnv("SKILL_POINTS_PER_LEVEL", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid SKILL_POINTS_PER_LEVEL value: %w", err)
	}
	if points < 0 {
		return nil, fmt.Errorf("SKILL_POINTS_PER_LEVEL must be non-negative, got %d", points)
	}
	cfg.SkillPointsPerLevel = points

	retries, err := strconv.Atoi(getEnv("EVENT_MAX_RETRIES", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_MAX_RETRIES value: %w", err)
	}
	cfg.EventMaxRetries = retries

	retryDelay, err := time.ParseDuration(getEnv("EVENT_RETRY_DELAY", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_RETRY_DELAY value: %w", err)
	}
	cfg.EventRetryDelay = retryDelay

	retention, err := strconv.Atoi(getEnv("EVENT_LOG_RETENTION_DAYS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_LOG_RETENTION_DAYS value: %w", err)
	}
	if retention < 1 {
		return nil, fmt.Errorf("EVENT_LOG_RETENTION_DAYS must be positive, got %d", retention)
	}
	cfg.EventLogRetentionDays = retention

	cleanupInterval, err := time.ParseDuration(getEnv("EVENT_LOG_CLEANUP_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_LOG_CLEANUP_INTERVAL value: %w", err)
	}
	cfg.EventLogCleanupInterval = cleanupInterval

	if cfg.APIToken == "" {
		return nil, fmt.Errorf("API_TOKEN environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
