package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"fintrack/internal/api"
	"fintrack/internal/config"
	"fintrack/internal/kv"
	"fintrack/internal/log"
	"fintrack/internal/prefs"
	"fintrack/internal/services"
	"fintrack/internal/ui"
)

func main() {
	// Load .env file for local development (ignore errors when absent)
	_ = godotenv.Load()

	cfg := config.Load()

	apiURL := flag.String("api-url", "", "backend API base URL (overrides FINTRACK_API_URL)")
	backend := flag.String("backend", "", "preference storage backend: sqlite or memory")
	dbPath := flag.String("db", "", "path to the preference database")
	flag.Parse()

	if *apiURL != "" {
		cfg.APIBaseURL = *apiURL
	}
	if *backend != "" {
		cfg.PrefsBackend = *backend
	}
	if *dbPath != "" {
		cfg.PrefsDBPath = *dbPath
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration validation failed:\n%v\n", err)
		os.Exit(1)
	}

	logger := log.New(log.Config{
		Level:     parseLevel(cfg.LogLevel),
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)

	logger.Info("starting fintrack",
		log.FieldOperation, log.OpStartup,
		"api_url", cfg.APIBaseURL,
		log.FieldBackend, cfg.PrefsBackend)

	store := openStore(cfg, logger)
	defer store.Close()

	p := prefs.New(store, logger)

	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, p.Token, logger)
	finance := services.NewFinance(client, logger)

	program := tea.NewProgram(ui.NewModel(finance, client, p, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Error("program exited with error", log.FieldError, err.Error())
		os.Exit(1)
	}
}

// openStore picks the preference backend. A broken sqlite store degrades
// to memory so the app still starts; the session just won't persist.
func openStore(cfg *config.Config, logger *log.Logger) kv.Store {
	if cfg.PrefsBackend != "sqlite" {
		return kv.NewMemory()
	}
	store, err := kv.NewSQLite(cfg.PrefsDBPath)
	if err != nil {
		logger.Warn("sqlite store unavailable, using in-memory preferences",
			log.FieldError, err.Error(),
			"path", cfg.PrefsDBPath)
		return kv.NewMemory()
	}
	return store
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
