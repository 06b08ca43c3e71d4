package pressflow

import (
	"time"

	"github.com/rs/zerolog"
)

// SiteConfig holds all configuration for a pressflow instance.
type SiteConfig struct {
	Name string // Instance name shown in the UI (default "Pressflow")
	URL  string // Canonical URL (default "http://localhost:3000")

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path for saved sites and images (default "data/pressflow.db")

	HistoryEnabled       bool   // Record publish attempts (default via cmd)
	HistoryDatabasePath  string // History SQLite path (default "data/history.db")
	HistoryRetentionDays int    // Prune history entries older than this (default 180)

	AdminPassword string // Required: operator login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	RequestTimeout time.Duration // Upper bound for a whole publish workflow (default 2min)
	DraftTTL       time.Duration // How long generated drafts stay previewable (default 30min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Pressflow"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/pressflow.db"
	}
	if c.HistoryDatabasePath == "" {
		c.HistoryDatabasePath = "data/history.db"
	}
	if c.HistoryRetentionDays == 0 {
		c.HistoryRetentionDays = 180
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 2 * time.Minute
	}
	if c.DraftTTL == 0 {
		c.DraftTTL = 30 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger sets the structured logger used by the app and the WordPress client.
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}
