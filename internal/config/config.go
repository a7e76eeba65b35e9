package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Auth Config
	JWTSecret              string        `env:"JWT_SECRET"`
	TokenTTL               time.Duration `env:"TOKEN_TTL" envDefault:"12h"`
	BootstrapAdminUsername string        `env:"BOOTSTRAP_ADMIN_USERNAME"`
	BootstrapAdminPassword string        `env:"BOOTSTRAP_ADMIN_PASSWORD"`

	// API Keys для канала приема сообщений из мобильного приложения
	APIKeys []string `env:"API_KEYS"`

	// Geocoder Config
	GeocoderURL        string        `env:"GEOCODER_URL" envDefault:"https://nominatim.openstreetmap.org"`
	GeocoderUserAgent  string        `env:"GEOCODER_USER_AGENT" envDefault:"resqalert-console/1.0"`
	GeocodeDelay       time.Duration `env:"GEOCODE_DELAY" envDefault:"150ms"`
	GeocodeConcurrency int           `env:"GEOCODE_CONCURRENCY" envDefault:"4"`
	GeocodeTimeout     time.Duration `env:"GEOCODE_TIMEOUT" envDefault:"5s"`
	LocalityCacheTTL   time.Duration `env:"LOCALITY_CACHE_TTL" envDefault:"0"`

	// SMS Gateway Config
	SMSGatewayURL     string        `env:"SMS_GATEWAY_URL"`
	SMSGatewaySecret  string        `env:"SMS_GATEWAY_SECRET"`
	SMSGatewayTimeout time.Duration `env:"SMS_GATEWAY_TIMEOUT" envDefault:"5s"`
	NewReportScanSpec string        `env:"NEW_REPORT_SCAN_SPEC" envDefault:"@every 30s"`
	NewReportScanSize int           `env:"NEW_REPORT_SCAN_SIZE" envDefault:"50"`

	// Dashboard Config
	DashboardPushInterval time.Duration `env:"DASHBOARD_PUSH_INTERVAL" envDefault:"10s"`
	FeedbackPageSize      int           `env:"FEEDBACK_PAGE_SIZE" envDefault:"10"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogFormat:              getEnv("LOG_FORMAT", "json"),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:              os.Getenv("REDIS_PASSWORD"),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		TokenTTL:               getEnvAsDuration("TOKEN_TTL", 12*time.Hour),
		BootstrapAdminUsername: os.Getenv("BOOTSTRAP_ADMIN_USERNAME"),
		BootstrapAdminPassword: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
		GeocoderURL:            getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent:      getEnv("GEOCODER_USER_AGENT", "resqalert-console/1.0"),
		GeocodeDelay:           getEnvAsDuration("GEOCODE_DELAY", 150*time.Millisecond),
		GeocodeConcurrency:     getEnvAsInt("GEOCODE_CONCURRENCY", 4),
		GeocodeTimeout:         getEnvAsDuration("GEOCODE_TIMEOUT", 5*time.Second),
		LocalityCacheTTL:       getEnvAsDuration("LOCALITY_CACHE_TTL", 0),
		SMSGatewayURL:          os.Getenv("SMS_GATEWAY_URL"),
		SMSGatewaySecret:       os.Getenv("SMS_GATEWAY_SECRET"),
		SMSGatewayTimeout:      getEnvAsDuration("SMS_GATEWAY_TIMEOUT", 5*time.Second),
		NewReportScanSpec:      getEnv("NEW_REPORT_SCAN_SPEC", "@every 30s"),
		NewReportScanSize:      getEnvAsInt("NEW_REPORT_SCAN_SIZE", 50),
		DashboardPushInterval:  getEnvAsDuration("DASHBOARD_PUSH_INTERVAL", 10*time.Second),
		FeedbackPageSize:       getEnvAsInt("FEEDBACK_PAGE_SIZE", 10),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if cfg.GeocodeConcurrency < 1 {
		cfg.GeocodeConcurrency = 1
	}

	return cfg, nil
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

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
