package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/promedhq/promed/internal/logger"
)

type Config struct {
	SecretKey string
	BaseURL   string
	Port      string
	QRDir     string
	DB        DBConfig
	Mail      MailConfig
	Alerts    AlertConfig
	Session   SessionConfig
	Logger    LoggerConfig
}

type DBConfig struct {
	Driver   string // "sqlite" or "postgres"
	Path     string // sqlite file path
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// TimeoutSeconds bounds a single send so a hung SMTP dial cannot
	// block the next scheduled scan.
	TimeoutSeconds int
}

type AlertConfig struct {
	// Hour is the local hour (0-23) at which the daily expiry scan runs.
	Hour int
	// SchedulerEnabled runs the scan in-process via cron. Leave it off
	// when an external scheduler invokes cmd/alertscan instead.
	SchedulerEnabled bool
}

type SessionConfig struct {
	Store     string // "memory" or "redis"
	RedisHost string
	RedisPort string
	TTLHours  int
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func Load() (*Config, error) {
	cfg := &Config{
		SecretKey: os.Getenv("SECRET_KEY"),
		BaseURL:   getEnvOrDefault("BASE_URL", "http://localhost:8080"),
		Port:      getEnvOrDefault("PORT", "8080"),
		QRDir:     getEnvOrDefault("QR_DIR", "static/qrcodes"),
		DB: DBConfig{
			Driver:   getEnvOrDefault("DB_DRIVER", "sqlite"),
			Path:     getEnvOrDefault("DB_PATH", "promed.db"),
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "promed"),
		},
		Mail: MailConfig{
			Host:           getEnvOrDefault("MAIL_HOST", "smtp.gmail.com"),
			Port:           getEnvInt("MAIL_PORT", 587),
			Username:       os.Getenv("MAIL_USERNAME"),
			Password:       os.Getenv("MAIL_PASSWORD"),
			From:           getEnvOrDefault("MAIL_FROM", os.Getenv("MAIL_USERNAME")),
			TimeoutSeconds: getEnvInt("MAIL_TIMEOUT_SECONDS", 30),
		},
		Alerts: AlertConfig{
			Hour:             getEnvInt("ALERT_HOUR", 8),
			SchedulerEnabled: getEnvBool("SCHEDULER_ENABLED", true),
		},
		Session: SessionConfig{
			Store:     getEnvOrDefault("SESSION_STORE", "memory"),
			RedisHost: getEnvOrDefault("REDIS_HOST", "localhost"),
			RedisPort: getEnvOrDefault("REDIS_PORT", "6379"),
			TTLHours:  getEnvInt("SESSION_TTL_HOURS", 24),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY is required")
	}
	if cfg.DB.Driver != "sqlite" && cfg.DB.Driver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}
	if cfg.Alerts.Hour < 0 || cfg.Alerts.Hour > 23 {
		return nil, fmt.Errorf("ALERT_HOUR must be between 0 and 23, got %d", cfg.Alerts.Hour)
	}
	if cfg.Session.Store != "memory" && cfg.Session.Store != "redis" {
		return nil, fmt.Errorf("unsupported SESSION_STORE %q", cfg.Session.Store)
	}

	return cfg, nil
}
