package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Mode selects how the server answers requests.
type Mode string

const (
	// ModeStateless serves fixed responses drawn from OpenAPI examples.
	ModeStateless Mode = "stateless"
	// ModeStateful maintains in-memory resource state.
	ModeStateful Mode = "stateful"
)

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "stateless":
		return ModeStateless, nil
	case "stateful":
		return ModeStateful, nil
	default:
		return "", fmt.Errorf("invalid mode: %s (use 'stateless' or 'stateful')", s)
	}
}

// Config holds all mock server configuration.
type Config struct {
	Mode       Mode
	Host       string
	Port       string
	OpenAPIDir string
	StateFile  string
	Watch      bool
	LogLevel   string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults,
// and validates the result.
func Load() (*Config, error) {
	mode, err := ParseMode(getEnv("MOCKAPS_MODE", string(ModeStateful)))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Mode:            mode,
		Host:            getEnv("MOCKAPS_HOST", "0.0.0.0"),
		Port:            getEnv("MOCKAPS_PORT", "3000"),
		OpenAPIDir:      getEnv("MOCKAPS_OPENAPI_DIR", "./specs"),
		StateFile:       getEnv("MOCKAPS_STATE_FILE", ""),
		Watch:           getEnvBool("MOCKAPS_WATCH", false),
		LogLevel:        getEnv("MOCKAPS_LOG_LEVEL", "info"),
		ReadTimeout:     getEnvDuration("MOCKAPS_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("MOCKAPS_WRITE_TIMEOUT", 15*time.Second),
		ShutdownTimeout: getEnvDuration("MOCKAPS_SHUTDOWN_TIMEOUT", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Mode != ModeStateless && c.Mode != ModeStateful {
		return fmt.Errorf("invalid mode: %s", c.Mode)
	}
	if c.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if port, err := strconv.Atoi(c.Port); err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if c.OpenAPIDir == "" {
		return fmt.Errorf("OpenAPI directory is required")
	}
	return nil
}

// Addr returns the host:port bind address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
