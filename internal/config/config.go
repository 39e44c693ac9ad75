package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from an optional .env file and the environment.
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	ServerPort  string `mapstructure:"SERVER_PORT"`
	SwaggerHost string `mapstructure:"SWAGGER_HOST"`

	// Key-value store: redis, sqlite, mysql or memory.
	StoreDriver string `mapstructure:"STORE_DRIVER"`
	SQLitePath  string `mapstructure:"SQLITE_PATH"`
	MySQLDSN    string `mapstructure:"MYSQL_DSN"`
	RedisAddr   string `mapstructure:"REDIS_ADDR"`
	RedisDB     int    `mapstructure:"REDIS_DB"`
	RedisPass   string `mapstructure:"REDIS_PASSWORD"`

	JWTSecret       string        `mapstructure:"JWT_SECRET"`
	SessionTokenTTL time.Duration `mapstructure:"SESSION_TOKEN_TTL"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogFile  string `mapstructure:"LOG_FILE"`

	GuidanceAPIKey     string        `mapstructure:"GUIDANCE_API_KEY"`
	GuidanceBaseURL    string        `mapstructure:"GUIDANCE_BASE_URL"`
	GuidanceModel      string        `mapstructure:"GUIDANCE_MODEL"`
	GuidanceTimeout    time.Duration `mapstructure:"GUIDANCE_TIMEOUT"`
	GuidanceMaxRetries int           `mapstructure:"GUIDANCE_MAX_RETRIES"`
	GuidanceBackoff    time.Duration `mapstructure:"GUIDANCE_BACKOFF"`

	DefaultAcademicContext string `mapstructure:"DEFAULT_ACADEMIC_CONTEXT"`
	HistoryWarnThreshold   int    `mapstructure:"HISTORY_WARN_THRESHOLD"`

	CaptureQueueSize         int           `mapstructure:"CAPTURE_QUEUE_SIZE"`
	CaptureSimulator         bool          `mapstructure:"CAPTURE_SIMULATOR"`
	CaptureSimulatorProfile  string        `mapstructure:"CAPTURE_SIMULATOR_PROFILE"`
	CaptureSimulatorInterval time.Duration `mapstructure:"CAPTURE_SIMULATOR_INTERVAL"`
}

var defaults = map[string]any{
	"ENVIRONMENT":                "development",
	"SERVER_PORT":                "8080",
	"SWAGGER_HOST":               "",
	"STORE_DRIVER":               "sqlite",
	"SQLITE_PATH":                "emotiguide.db",
	"MYSQL_DSN":                  "user:password@tcp(localhost:3306)/emotiguide?charset=utf8mb4&parseTime=True&loc=Local",
	"REDIS_ADDR":                 "localhost:6379",
	"REDIS_DB":                   0,
	"REDIS_PASSWORD":             "",
	"JWT_SECRET":                 "change-me",
	"SESSION_TOKEN_TTL":          "24h",
	"LOG_LEVEL":                  "info",
	"LOG_FILE":                   "",
	"GUIDANCE_API_KEY":           "",
	"GUIDANCE_BASE_URL":          "https://generativelanguage.googleapis.com/v1beta/openai/",
	"GUIDANCE_MODEL":             "gemini-2.0-flash",
	"GUIDANCE_TIMEOUT":           "20s",
	"GUIDANCE_MAX_RETRIES":       2,
	"GUIDANCE_BACKOFF":           "500ms",
	"DEFAULT_ACADEMIC_CONTEXT":   "BCA Student",
	"HISTORY_WARN_THRESHOLD":     5000,
	"CAPTURE_QUEUE_SIZE":         256,
	"CAPTURE_SIMULATOR":          false,
	"CAPTURE_SIMULATOR_PROFILE":  "default",
	"CAPTURE_SIMULATOR_INTERVAL": "5s",
}

// Load builds Config from an optional .env file in dir, the environment and defaults.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing .env file is fine, the environment and defaults still apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case "redis", "sqlite", "mysql", "memory":
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.StoreDriver)
	}
	if c.GuidanceMaxRetries < 0 {
		return fmt.Errorf("GUIDANCE_MAX_RETRIES must not be negative")
	}
	if c.CaptureQueueSize <= 0 {
		return fmt.Errorf("CAPTURE_QUEUE_SIZE must be positive")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
