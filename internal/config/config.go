package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	BaseURL string `yaml:"base_url"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	HTTPTimeoutSeconds   int     `yaml:"http_timeout_seconds"`
	ClientRateLimitRPS   float64 `yaml:"client_rate_limit_rps"`
	ClientRateLimitBurst int     `yaml:"client_rate_limit_burst"`

	BreakerEnabled         bool `yaml:"breaker_enabled"`
	BreakerMinRequests     int  `yaml:"breaker_min_requests"`
	BreakerOpenTimeoutSecs int  `yaml:"breaker_open_timeout_seconds"`
	BreakerIntervalSecs    int  `yaml:"breaker_interval_seconds"`

	MetricsAddr string `yaml:"metrics_addr"`
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first without overriding existing values.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		BaseURL: mustEnv("DOCCHAT_BASE_URL", "http://localhost:5000"),

		LogLevel: mustEnv("LOG_LEVEL", "info"),
		LogFile:  mustEnv("LOG_FILE", "docchat.log"),

		HTTPTimeoutSeconds:   mustEnvInt("HTTP_TIMEOUT_SECONDS", 120),
		ClientRateLimitRPS:   mustEnvFloat("CLIENT_RATE_LIMIT_RPS", 2),
		ClientRateLimitBurst: mustEnvInt("CLIENT_RATE_LIMIT_BURST", 4),

		BreakerEnabled:         mustEnvBool("BREAKER_ENABLED", true),
		BreakerMinRequests:     mustEnvInt("BREAKER_MIN_REQUESTS", 5),
		BreakerOpenTimeoutSecs: mustEnvInt("BREAKER_OPEN_TIMEOUT_SECONDS", 15),
		BreakerIntervalSecs:    mustEnvInt("BREAKER_INTERVAL_SECONDS", 60),

		MetricsAddr: mustEnv("METRICS_ADDR", ""),
	}
}

// LoadFile overlays a YAML file on top of cfg. Keys absent from the file
// keep their current values.
func LoadFile(cfg Config, path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func (c Config) BreakerOpenTimeout() time.Duration {
	return time.Duration(c.BreakerOpenTimeoutSecs) * time.Second
}

func (c Config) BreakerInterval() time.Duration {
	return time.Duration(c.BreakerIntervalSecs) * time.Second
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
