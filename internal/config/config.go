package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shenikar/crowd_alert_system/internal/geo"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"

	NotifierDriverRedis = "redis"
	NotifierDriverNATS  = "nats"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Store Config
	StoreDriver  string        `env:"STORE_DRIVER" envDefault:"postgres"`
	DatabaseURL  string        `env:"DATABASE_URL"`
	SQLitePath   string        `env:"SQLITE_PATH" envDefault:"crowd.db"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"3s"`

	// Redis Config
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass     string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	// Participant cache
	ParticipantCacheTTL time.Duration `env:"PARTICIPANT_CACHE_TTL" envDefault:"5m"`

	// Crowd Config
	CrowdRadiusKm        float64       `env:"CROWD_RADIUS_KM" envDefault:"0.1"`
	CrowdThreshold       int           `env:"CROWD_THRESHOLD" envDefault:"5"`
	AlertActiveWindow    time.Duration `env:"ALERT_ACTIVE_WINDOW" envDefault:"1m"`
	SnapshotActiveWindow time.Duration `env:"SNAPSHOT_ACTIVE_WINDOW" envDefault:"2m"`
	AlertCountSelf       bool          `env:"ALERT_COUNT_SELF" envDefault:"true"`
	SnapshotCountSelf    bool          `env:"SNAPSHOT_COUNT_SELF" envDefault:"true"`

	// Exit route, optional. Both coordinates must be set.
	ExitLatitude  *float64 `env:"EXIT_LATITUDE"`
	ExitLongitude *float64 `env:"EXIT_LONGITUDE"`

	// Alert Config
	DefaultCountryPrefix string        `env:"DEFAULT_COUNTRY_PREFIX" envDefault:"+91"`
	AlertMessage         string        `env:"ALERT_MESSAGE"`
	AlertRecipientPolicy string        `env:"ALERT_RECIPIENT_POLICY" envDefault:"all_neighbors"`
	AlertCooldown        time.Duration `env:"ALERT_COOLDOWN" envDefault:"0"`
	NotifyConcurrency    int           `env:"NOTIFY_CONCURRENCY" envDefault:"4"`
	NotifyTimeout        time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"2s"`

	// Notifier transport
	NotifierDriver string `env:"NOTIFIER_DRIVER" envDefault:"redis"`
	NatsURL        string `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	NatsSubject    string `env:"NATS_SUBJECT" envDefault:"crowd.alerts.sms"`

	// SMS Gateway Config
	SMSGatewayURL     string        `env:"SMS_GATEWAY_URL"`
	SMSGatewaySecret  string        `env:"SMS_GATEWAY_SECRET"`
	SMSGatewayTimeout time.Duration `env:"SMS_GATEWAY_TIMEOUT" envDefault:"5s"`
	SMSMaxRetries     int           `env:"SMS_MAX_RETRIES" envDefault:"3"`
	SMSBaseDelay      time.Duration `env:"SMS_BASE_DELAY" envDefault:"500ms"`
	SMSRatePerSecond  float64       `env:"SMS_RATE_PER_SECOND" envDefault:"10"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// DefaultAlertMessage - текст оповещения по умолчанию
const DefaultAlertMessage = "Heavy crowd detected near you. Please move to a safer area."

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            strings.ToLower(getEnv("LOG_FORMAT", "json")),
		StoreDriver:          strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		SQLitePath:           getEnv("SQLITE_PATH", "crowd.db"),
		StoreTimeout:         getEnvAsDuration("STORE_TIMEOUT", 3*time.Second),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:            os.Getenv("REDIS_PASSWORD"),
		RedisDB:              getEnvAsInt("REDIS_DB", 0),
		RedisPoolSize:        getEnvAsInt("REDIS_POOL_SIZE", 10),
		ParticipantCacheTTL:  getEnvAsDuration("PARTICIPANT_CACHE_TTL", 5*time.Minute),
		CrowdRadiusKm:        getEnvAsFloat("CROWD_RADIUS_KM", 0.1),
		CrowdThreshold:       getEnvAsInt("CROWD_THRESHOLD", 5),
		AlertActiveWindow:    getEnvAsDuration("ALERT_ACTIVE_WINDOW", time.Minute),
		SnapshotActiveWindow: getEnvAsDuration("SNAPSHOT_ACTIVE_WINDOW", 2*time.Minute),
		AlertCountSelf:       getEnvAsBool("ALERT_COUNT_SELF", true),
		SnapshotCountSelf:    getEnvAsBool("SNAPSHOT_COUNT_SELF", true),
		ExitLatitude:         getEnvAsFloatPtr("EXIT_LATITUDE"),
		ExitLongitude:        getEnvAsFloatPtr("EXIT_LONGITUDE"),
		DefaultCountryPrefix: getEnv("DEFAULT_COUNTRY_PREFIX", "+91"),
		AlertMessage:         getEnv("ALERT_MESSAGE", DefaultAlertMessage),
		AlertRecipientPolicy: getEnv("ALERT_RECIPIENT_POLICY", "all_neighbors"),
		AlertCooldown:        getEnvAsDuration("ALERT_COOLDOWN", 0),
		NotifyConcurrency:    getEnvAsInt("NOTIFY_CONCURRENCY", 4),
		NotifyTimeout:        getEnvAsDuration("NOTIFY_TIMEOUT", 2*time.Second),
		NotifierDriver:       strings.ToLower(getEnv("NOTIFIER_DRIVER", NotifierDriverRedis)),
		NatsURL:              getEnv("NATS_URL", "nats://localhost:4222"),
		NatsSubject:          getEnv("NATS_SUBJECT", "crowd.alerts.sms"),
		SMSGatewayURL:        os.Getenv("SMS_GATEWAY_URL"),
		SMSGatewaySecret:     os.Getenv("SMS_GATEWAY_SECRET"),
		SMSGatewayTimeout:    getEnvAsDuration("SMS_GATEWAY_TIMEOUT", 5*time.Second),
		SMSMaxRetries:        getEnvAsInt("SMS_MAX_RETRIES", 3),
		SMSBaseDelay:         getEnvAsDuration("SMS_BASE_DELAY", 500*time.Millisecond),
		SMSRatePerSecond:     getEnvAsFloat("SMS_RATE_PER_SECOND", 10),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность параметров
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required")
		}
	case StoreDriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH environment variable is required")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}

	if c.LogFormat != "" && c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("unsupported LOG_FORMAT %q", c.LogFormat)
	}
	if c.RedisPoolSize < 0 {
		return fmt.Errorf("REDIS_POOL_SIZE must not be negative, got %d", c.RedisPoolSize)
	}

	switch c.NotifierDriver {
	case NotifierDriverRedis, NotifierDriverNATS:
	default:
		return fmt.Errorf("unsupported NOTIFIER_DRIVER %q", c.NotifierDriver)
	}

	// NaN проходит любое сравнение как false, поэтому проверяется отдельно
	if math.IsNaN(c.CrowdRadiusKm) || math.IsInf(c.CrowdRadiusKm, 0) || c.CrowdRadiusKm <= 0 {
		return fmt.Errorf("CROWD_RADIUS_KM must be positive, got %v", c.CrowdRadiusKm)
	}
	if c.CrowdThreshold < 1 {
		return fmt.Errorf("CROWD_THRESHOLD must be at least 1, got %d", c.CrowdThreshold)
	}
	if c.AlertActiveWindow <= 0 || c.SnapshotActiveWindow <= 0 {
		return fmt.Errorf("active windows must be positive")
	}
	if !strings.HasPrefix(c.DefaultCountryPrefix, "+") {
		return fmt.Errorf("DEFAULT_COUNTRY_PREFIX must start with '+', got %q", c.DefaultCountryPrefix)
	}
	if c.AlertRecipientPolicy != "all_neighbors" && c.AlertRecipientPolicy != "unprefixed_only" {
		return fmt.Errorf("unsupported ALERT_RECIPIENT_POLICY %q", c.AlertRecipientPolicy)
	}
	if (c.ExitLatitude == nil) != (c.ExitLongitude == nil) {
		return fmt.Errorf("EXIT_LATITUDE and EXIT_LONGITUDE must be set together")
	}
	if c.HasExit() && !geo.ValidCoordinates(*c.ExitLatitude, *c.ExitLongitude) {
		return fmt.Errorf("EXIT_LATITUDE/EXIT_LONGITUDE out of range: %v, %v", *c.ExitLatitude, *c.ExitLongitude)
	}
	return nil
}

// HasExit сообщает, задана ли точка выхода
func (c *Config) HasExit() bool {
	return c.ExitLatitude != nil && c.ExitLongitude != nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsFloatPtr возвращает nil, если переменная не задана или некорректна
func getEnvAsFloatPtr(key string) *float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &floatValue
}

// getEnvAsBool возвращает значение переменной окружения как bool или значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
