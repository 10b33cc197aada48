package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	FetchModeHTTP     = "http"
	FetchModeHeadless = "headless"

	JobStoreMemory   = "memory"
	JobStoreRedis    = "redis"
	JobStorePostgres = "postgres"
)

// RateLimitConfig indicates how many requests are allowed within a given
// interval. A zero value disables limiting.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Enabled reports whether a limit is configured.
func (r RateLimitConfig) Enabled() bool {
	return r.Requests > 0 && r.Interval > 0
}

// Config stores all configuration for the application.
type Config struct {
	ServerPort      string        `mapstructure:"SERVER_PORT"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	LogFormat       string        `mapstructure:"LOG_FORMAT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	FetchMode          string        `mapstructure:"FETCH_MODE"`
	FetchProxies       []string      `mapstructure:"FETCH_PROXIES"`
	HomepageTimeout    time.Duration `mapstructure:"HOMEPAGE_TIMEOUT"`
	SubpageTimeout     time.Duration `mapstructure:"SUBPAGE_TIMEOUT"`
	SubpageConcurrency int           `mapstructure:"SUBPAGE_CONCURRENCY"`

	JobStore      string        `mapstructure:"JOB_STORE"`
	JobTTL        time.Duration `mapstructure:"JOB_TTL"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	PostgresURL   string        `mapstructure:"POSTGRES_URL"`

	GeminiAPIKey      string        `mapstructure:"GEMINI_API_KEY"`
	GoogleAPIKey      string        `mapstructure:"GOOGLE_API_KEY"`
	SummarizerBaseURL string        `mapstructure:"SUMMARIZER_BASE_URL"`
	SummarizerModel   string        `mapstructure:"SUMMARIZER_MODEL"`
	SummarizerTimeout time.Duration `mapstructure:"SUMMARIZER_TIMEOUT"`

	SubmitRateLimit    string   `mapstructure:"SUBMIT_RATE_LIMIT"`
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	RateLimit RateLimitConfig `mapstructure:"-"`
}

var defaults = map[string]any{
	"SERVER_PORT":          "8080",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "json",
	"SHUTDOWN_TIMEOUT":     "30s",
	"FETCH_MODE":           FetchModeHTTP,
	"FETCH_PROXIES":        "",
	"HOMEPAGE_TIMEOUT":     "30s",
	"SUBPAGE_TIMEOUT":      "15s",
	"SUBPAGE_CONCURRENCY":  1,
	"JOB_STORE":            JobStoreMemory,
	"JOB_TTL":              "0s",
	"REDIS_ADDR":           "localhost:6379",
	"REDIS_PASSWORD":       "",
	"REDIS_DB":             0,
	"POSTGRES_URL":         "",
	"GEMINI_API_KEY":       "",
	"GOOGLE_API_KEY":       "",
	"SUMMARIZER_BASE_URL":  "https://generativelanguage.googleapis.com/v1beta/openai/",
	"SUMMARIZER_MODEL":     "gemini-2.0-flash",
	"SUMMARIZER_TIMEOUT":   "30s",
	"SUBMIT_RATE_LIMIT":    "30/min",
	"CORS_ALLOWED_ORIGINS": "*",
}

// Load reads configuration from the .env file in the working directory, if
// any, and the environment. Environment variables win.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file path.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Attempt to read the env file, but don't fail if it's not present
	_ = v.ReadInConfig()

	// Every key needs a default so Unmarshal picks up environment overrides
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	rl, err := parseRateLimit(cfg.SubmitRateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid SUBMIT_RATE_LIMIT: %w", err)
	}
	cfg.RateLimit = rl

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SummarizerAPIKey returns the first configured summarization credential.
func (c *Config) SummarizerAPIKey() string {
	if c.GeminiAPIKey != "" {
		return c.GeminiAPIKey
	}
	return c.GoogleAPIKey
}

func (c *Config) validate() error {
	switch c.FetchMode {
	case FetchModeHTTP, FetchModeHeadless:
	default:
		return fmt.Errorf("unsupported FETCH_MODE %q", c.FetchMode)
	}

	switch c.JobStore {
	case JobStoreMemory, JobStoreRedis:
	case JobStorePostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL is required when JOB_STORE=%s", JobStorePostgres)
		}
	default:
		return fmt.Errorf("unsupported JOB_STORE %q", c.JobStore)
	}

	if c.SubpageConcurrency < 1 {
		return fmt.Errorf("SUBPAGE_CONCURRENCY must be at least 1, got %d", c.SubpageConcurrency)
	}
	return nil
}

// parseRateLimit reads "<requests>/<unit>". An empty value or "0" disables limiting.
func parseRateLimit(value string) (RateLimitConfig, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "0" {
		return RateLimitConfig{}, nil
	}

	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}
