package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	// Backend API
	APIBaseURL     string
	RequestTimeout time.Duration

	// Preference storage
	PrefsBackend string
	PrefsDBPath  string

	// Logging
	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		APIBaseURL:     getEnv("FINTRACK_API_URL", "http://localhost:5000/api"),
		RequestTimeout: getEnvDuration("FINTRACK_TIMEOUT", 10*time.Second),

		PrefsBackend: getEnv("FINTRACK_PREFS_BACKEND", "sqlite"),
		PrefsDBPath:  getEnv("FINTRACK_PREFS_PATH", defaultPrefsPath()),

		LogLevel: getEnv("FINTRACK_LOG_LEVEL", "info"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate API base URL
	if parsedURL, err := url.Parse(c.APIBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API URL '%s': %v", c.APIBaseURL, err))
	} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
	} else if parsedURL.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid API URL '%s': missing host", c.APIBaseURL))
	}

	// Validate request timeout
	if c.RequestTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid request timeout %v: must be at least 1 second", c.RequestTimeout))
	} else if c.RequestTimeout > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid request timeout %v: must be at most 1 minute", c.RequestTimeout))
	}

	// Validate preference backend
	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.PrefsBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid prefs backend '%s': must be one of %v", c.PrefsBackend, validBackends))
	}

	// Validate SQLite path if backend is sqlite
	if c.PrefsBackend == "sqlite" {
		if c.PrefsDBPath == "" {
			errors = append(errors, "prefs database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.PrefsDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create prefs database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	// Validate log level
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// defaultPrefsPath prefers the user data dir and falls back to ./data.
func defaultPrefsPath() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".local", "share", "fintrack", "prefs.db")
	}
	return filepath.Join("data", "prefs.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
