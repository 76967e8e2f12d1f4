package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	AppEnv      string
	AppURL      string
	CORSOrigins string

	// Storage
	StoreDriver  string // memory | postgres
	SettingsPath string
	SeedDemoData bool

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Session token
	JWTSecret string
	JWTExpiry time.Duration

	// Admin
	AdminEmails string
	AdminToken  string

	// Observability
	SentryDSN          string
	LogRetentionDays   int
	LogCleanupSchedule string

	// Notifications
	RedisURL        string
	NotificationTTL time.Duration

	// Chat. A zero delay turns the demo auto-reply off.
	ChatAutoReplyDelay time.Duration

	// AI Providers
	GeminiAPIKey string
	GeminiModels string

	GLMAPIKey string
	GLMAPIURL string
	GLMModel  string

	AITimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real env vars win over it.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "development"),
		AppURL:      getEnv("APP_URL", "http://localhost:5173"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		StoreDriver:  getEnv("STORE_DRIVER", "memory"),
		SettingsPath: getEnv("SETTINGS_PATH", "data/settings.json"),
		SeedDemoData: parseBool(getEnv("SEED_DEMO_DATA", "true")),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "lovemypet"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "168h")),

		AdminEmails: getEnv("ADMIN_EMAILS", ""),
		AdminToken:  getEnv("ADMIN_TOKEN", ""),

		SentryDSN:          getEnv("SENTRY_DSN", ""),
		LogRetentionDays:   parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),
		LogCleanupSchedule: getEnv("LOG_CLEANUP_SCHEDULE", "@daily"),

		RedisURL:        getEnv("REDIS_URL", ""),
		NotificationTTL: parseDuration(getEnv("NOTIFICATION_TTL", "5s")),

		ChatAutoReplyDelay: parseDuration(getEnv("CHAT_AUTO_REPLY_DELAY", "2s")),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModels: getEnv("GEMINI_MODELS", "gemini-2.5-flash,gemini-2.5-flash-lite"),

		GLMAPIKey: getEnv("GLM_API_KEY", ""),
		GLMAPIURL: getEnv("GLM_API_URL", "https://api.z.ai/api/paas/v4/chat/completions"),
		GLMModel:  getEnv("GLM_MODEL", "glm-4-flash"),

		AITimeout: parseDuration(getEnv("AI_TIMEOUT", "30s")),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) UsePostgres() bool {
	return c.StoreDriver == "postgres"
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
