package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid sqlite backend config",
			config: Config{
				APIBaseURL:     "http://localhost:5000/api",
				RequestTimeout: 10 * time.Second,
				PrefsBackend:   "sqlite",
				PrefsDBPath:    filepath.Join(t.TempDir(), "prefs.db"),
				LogLevel:       "info",
			},
			wantErr: false,
		},
		{
			name: "valid memory backend config",
			config: Config{
				APIBaseURL:     "https://finance.example.com/api",
				RequestTimeout: 5 * time.Second,
				PrefsBackend:   "memory",
				LogLevel:       "debug",
			},
			wantErr: false,
		},
		{
			name: "invalid API URL scheme",
			config: Config{
				APIBaseURL:     "ftp://localhost:5000/api",
				RequestTimeout: 10 * time.Second,
				PrefsBackend:   "memory",
				LogLevel:       "info",
			},
			wantErr:     true,
			errorString: "invalid API URL scheme 'ftp'",
		},
		{
			name: "missing API host",
			config: Config{
				APIBaseURL:     "http://",
				RequestTimeout: 10 * time.Second,
				PrefsBackend:   "memory",
				LogLevel:       "info",
			},
			wantErr:     true,
			errorString: "missing host",
		},
		{
			name: "timeout too short",
			config: Config{
				APIBaseURL:     "http://localhost:5000/api",
				RequestTimeout: 100 * time.Millisecond,
				PrefsBackend:   "memory",
				LogLevel:       "info",
			},
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
		{
			name: "invalid prefs backend",
			config: Config{
				APIBaseURL:     "http://localhost:5000/api",
				RequestTimeout: 10 * time.Second,
				PrefsBackend:   "redis",
				LogLevel:       "info",
			},
			wantErr:     true,
			errorString: "invalid prefs backend 'redis'",
		},
		{
			name: "empty sqlite path",
			config: Config{
				APIBaseURL:     "http://localhost:5000/api",
				RequestTimeout: 10 * time.Second,
				PrefsBackend:   "sqlite",
				PrefsDBPath:    "",
				LogLevel:       "info",
			},
			wantErr:     true,
			errorString: "prefs database path cannot be empty",
		},
		{
			name: "invalid log level",
			config: Config{
				APIBaseURL:     "http://localhost:5000/api",
				RequestTimeout: 10 * time.Second,
				PrefsBackend:   "memory",
				LogLevel:       "loud",
			},
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.APIBaseURL != "http://localhost:5000/api" {
		t.Errorf("APIBaseURL = %q, want default", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want 10s", cfg.RequestTimeout)
	}
	if cfg.PrefsBackend != "sqlite" {
		t.Errorf("PrefsBackend = %q, want sqlite", cfg.PrefsBackend)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FINTRACK_API_URL", "http://10.0.0.2:5000/api")
	t.Setenv("FINTRACK_TIMEOUT", "3s")
	t.Setenv("FINTRACK_PREFS_BACKEND", "memory")

	cfg := Load()

	if cfg.APIBaseURL != "http://10.0.0.2:5000/api" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.PrefsBackend != "memory" {
		t.Errorf("PrefsBackend = %q", cfg.PrefsBackend)
	}
}
