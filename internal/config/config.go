// Package config provides configuration loading and validation for the CLI and HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Defaults applied by MergeWithDefaults
const (
	DefaultPort        = 8080
	DefaultConcurrency = 8
	DefaultCacheTTL    = 10 * time.Minute
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Profile      string `json:"profile,omitempty"`      // Path to ResumeProfile JSON file
	Requirements string `json:"requirements,omitempty"` // Path to JobRequirements JSON file
	Out          string `json:"out,omitempty"`          // Path to output MatchResult JSON file

	// Matching
	EliteEmployers []string `json:"elite_employers,omitempty"` // Replaces the default elite-employer tokens
	Concurrency    int      `json:"concurrency,omitempty"`     // Parallel matches for batch runs

	// Backing services
	DatabaseURL   string `json:"database_url,omitempty"`   // PostgreSQL connection URL
	RedisAddr     string `json:"redis_addr,omitempty"`     // host:port of the result cache
	RedisPassword string `json:"redis_password,omitempty"` // Redis AUTH password
	CacheTTL      string `json:"cache_ttl,omitempty"`      // Go duration, e.g. "10m"

	// Server
	Port int `json:"port,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print a boxed summary of each result
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Call godotenv.Load first
// to pick up a .env file.
func FromEnv() Config {
	cfg := Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      os.Getenv("CACHE_TTL"),
	}

	if raw := os.Getenv("ELITE_EMPLOYERS"); raw != "" {
		cfg.EliteEmployers = SplitList(raw)
	}
	if raw := os.Getenv("PORT"); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil {
			cfg.Port = port
		}
	}
	if raw := os.Getenv("MATCH_CONCURRENCY"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			cfg.Concurrency = n
		}
	}

	return cfg
}

// SplitList parses a comma-separated list, dropping blank entries
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.CacheTTL != "" {
		ttl, err := time.ParseDuration(c.CacheTTL)
		if err != nil {
			return fmt.Errorf("config error: 'cache_ttl' is not a duration: %w", err)
		}
		if ttl < 0 {
			return fmt.Errorf("config error: 'cache_ttl' must be non-negative")
		}
	}
	for i, token := range c.EliteEmployers {
		if strings.TrimSpace(token) == "" {
			return fmt.Errorf("config error: 'elite_employers[%d]' is blank", i)
		}
	}

	// Validate file paths exist (if specified)
	if c.Profile != "" {
		if _, err := os.Stat(c.Profile); os.IsNotExist(err) {
			return fmt.Errorf("config error: profile file not found: %s", c.Profile)
		}
	}
	if c.Requirements != "" {
		if _, err := os.Stat(c.Requirements); os.IsNotExist(err) {
			return fmt.Errorf("config error: requirements file not found: %s", c.Requirements)
		}
	}

	return nil
}

// CacheTTLDuration returns the parsed cache TTL, or DefaultCacheTTL when unset or invalid
func (c *Config) CacheTTLDuration() time.Duration {
	if c.CacheTTL == "" {
		return DefaultCacheTTL
	}
	ttl, err := time.ParseDuration(c.CacheTTL)
	if err != nil || ttl <= 0 {
		return DefaultCacheTTL
	}
	return ttl
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file and environment values beneath CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Profile == "" {
		result.Profile = defaults.Profile
	}
	if result.Requirements == "" {
		result.Requirements = defaults.Requirements
	}
	if result.Out == "" {
		result.Out = defaults.Out
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.RedisPassword == "" {
		result.RedisPassword = defaults.RedisPassword
	}
	if result.CacheTTL == "" {
		result.CacheTTL = defaults.CacheTTL
	}

	// Slice fields: nil means unset, an explicit empty list is kept
	if result.EliteEmployers == nil {
		result.EliteEmployers = defaults.EliteEmployers
	}

	// Int fields: use default if zero
	if result.Concurrency == 0 {
		if defaults.Concurrency > 0 {
			result.Concurrency = defaults.Concurrency
		} else {
			result.Concurrency = DefaultConcurrency
		}
	}
	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = DefaultPort
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
