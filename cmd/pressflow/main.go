package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/eringen/pressflow"
	"github.com/eringen/pressflow/views"
)

func main() {
	// Missing .env is fine; real deployments set environment variables directly.
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := pressflow.SiteConfig{
		Name:                pressflow.EnvOr("SITE_NAME", "Pressflow"),
		URL:                 pressflow.EnvOr("SITE_URL", "http://localhost:3000"),
		Addr:                pressflow.EnvOr("ADDR", ":3000"),
		DatabasePath:        pressflow.EnvOr("DATABASE_PATH", "data/pressflow.db"),
		HistoryEnabled:      pressflow.EnvOr("HISTORY_ENABLED", "true") == "true",
		HistoryDatabasePath: pressflow.EnvOr("HISTORY_DATABASE_PATH", "data/history.db"),
		AdminPassword:       pressflow.MustEnv("ADMIN_PASSWORD"),
		SessionSecret:       pressflow.MustEnv("SESSION_SECRET"),
		CookieSecure:        pressflow.EnvOr("COOKIE_SECURE", "false") == "true",
	}

	app := pressflow.New(cfg, views.Funcs(), pressflow.WithLogger(logger))
	defer app.Close()

	logger.Info().Str("addr", cfg.Addr).Msg("starting pressflow")
	if err := app.Start(); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
