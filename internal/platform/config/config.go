// Package config loads the ingest configuration from an optional YAML file,
// environment variables, and built-in defaults, in that order of increasing
// precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full configuration for one ingest invocation.
type Config struct {
	Provider ProviderConfig `yaml:"provider"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// ProviderConfig configures the market-data API client.
type ProviderConfig struct {
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"api_key"`
	Function   string        `yaml:"function"`
	Interval   string        `yaml:"interval"`
	OutputSize string        `yaml:"output_size"`
	Timeout    time.Duration `yaml:"timeout"`
}

// DatabaseConfig configures the Postgres connection.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
}

// DSN builds the connection string for the gorm Postgres driver.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

// RedisConfig configures the optional latest-quote cache. An empty host
// disables caching entirely.
type RedisConfig struct {
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	Password string        `yaml:"password"`
	TTL      time.Duration `yaml:"ttl"`
}

// Enabled reports whether a Redis host is configured.
func (r RedisConfig) Enabled() bool { return r.Host != "" }

// Addr returns the host:port address for the Redis client.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// PipelineConfig configures the run itself: which symbols, how fast, and how
// persistent to be about transient failures.
type PipelineConfig struct {
	Symbols        []string      `yaml:"symbols"`
	CallsPerMinute int           `yaml:"calls_per_minute"`
	MaxAttempts    int           `yaml:"max_attempts"`
	RetryBaseDelay time.Duration `yaml:"retry_base_delay"`
	RetryMaxDelay  time.Duration `yaml:"retry_max_delay"`
	RunTimeout     time.Duration `yaml:"run_timeout"`
	AutoMigrate    bool          `yaml:"automigrate"`
}

// Load reads the configuration: defaults first, then the YAML file at path
// (skipped when path is empty or the file does not exist), then environment
// variables. The result is validated before it is returned.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Optional file: fall through to env + defaults.
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			expanded := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Provider: ProviderConfig{
			BaseURL:    "https://www.alphavantage.co",
			Function:   "TIME_SERIES_INTRADAY",
			Interval:   "60min",
			OutputSize: "compact",
			Timeout:    30 * time.Second,
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			Name:    "stock_data",
			User:    "postgres",
			SSLMode: "disable",
		},
		Redis: RedisConfig{
			Port: 6379,
			TTL:  15 * time.Minute,
		},
		Pipeline: PipelineConfig{
			CallsPerMinute: 5,
			MaxAttempts:    3,
			RetryBaseDelay: 2 * time.Second,
			RetryMaxDelay:  30 * time.Second,
			RunTimeout:     30 * time.Minute,
		},
	}
}

// applyEnv overlays environment variables onto cfg. Variable names follow
// the original deployment: ALPHA_VANTAGE_API_KEY, STOCK_SYMBOLS, DB_*,
// REDIS_*.
func applyEnv(cfg *Config) {
	setString(&cfg.Provider.APIKey, "ALPHA_VANTAGE_API_KEY")
	setString(&cfg.Provider.BaseURL, "ALPHA_VANTAGE_BASE_URL")
	setString(&cfg.Provider.Function, "ALPHA_VANTAGE_FUNCTION")
	setString(&cfg.Provider.Interval, "ALPHA_VANTAGE_INTERVAL")
	setString(&cfg.Provider.OutputSize, "ALPHA_VANTAGE_OUTPUT_SIZE")

	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.SSLMode, "DB_SSLMODE")

	setString(&cfg.Redis.Host, "REDIS_HOST")
	setInt(&cfg.Redis.Port, "REDIS_PORT")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")

	if v := os.Getenv("STOCK_SYMBOLS"); v != "" {
		var symbols []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				symbols = append(symbols, s)
			}
		}
		cfg.Pipeline.Symbols = symbols
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// Validate checks that the configuration is usable for a run.
func (c *Config) Validate() error {
	if c.Provider.APIKey == "" {
		return fmt.Errorf("provider.api_key is required (set ALPHA_VANTAGE_API_KEY)")
	}
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url is required")
	}
	switch c.Provider.Function {
	case "TIME_SERIES_INTRADAY", "TIME_SERIES_DAILY":
	default:
		return fmt.Errorf("provider.function %q is not supported", c.Provider.Function)
	}
	if c.Provider.Function == "TIME_SERIES_INTRADAY" && c.Provider.Interval == "" {
		return fmt.Errorf("provider.interval is required for intraday series")
	}
	if c.Database.Host == "" || c.Database.Name == "" {
		return fmt.Errorf("database.host and database.name are required")
	}
	if c.Pipeline.CallsPerMinute <= 0 {
		return fmt.Errorf("pipeline.calls_per_minute must be positive, got %d", c.Pipeline.CallsPerMinute)
	}
	if c.Pipeline.MaxAttempts < 1 {
		return fmt.Errorf("pipeline.max_attempts must be at least 1, got %d", c.Pipeline.MaxAttempts)
	}
	return nil
}
