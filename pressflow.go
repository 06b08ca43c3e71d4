// Package pressflow is a publishing workbench built with Go, Echo, and templ.
// An operator enters a topic, generates templated SEO-ready content, previews
// it, and publishes it to a remote WordPress site over the REST API.
//
// Users provide their own templ components via the ViewFuncs struct, and
// pressflow handles the handler logic, middleware, storage, and the
// WordPress workflow.
package pressflow

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eringen/pressflow/history"
	"github.com/eringen/pressflow/wordpress"
)

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates.
type ViewFuncs struct {
	Login         func(showError bool, csrfToken string) templ.Component
	Home          func(data HomeData) templ.Component
	Preview       func(draft Draft, csrfToken string) templ.Component
	Categories    func(cats []wordpress.Category, warning string) templ.Component
	PublishResult func(outcome PublishOutcome) templ.Component
	Sites         func(sites []SavedSite, msg string, csrfToken string) templ.Component
	History       func(entries []history.Entry) templ.Component
	Images        func(images []Image, csrfToken string) templ.Component
	Message       func(kind, text string) templ.Component
	NotFound      func() templ.Component
	ServerError   func() templ.Component
}

// App is the central pressflow application. It wires together the store,
// draft cache, WordPress client, handlers, middleware, and user templates.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Store   *Store
	Drafts  *DraftCache
	WP      *wordpress.Client
	History *history.Store
	Views   ViewFuncs

	logger         zerolog.Logger
	loginLimiter   *AttemptLimiter
	publishLimiter *AttemptLimiter
	customRoutes   []func(*App)
	staticDir      string
}

// New creates a pressflow App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		logger:    zerolog.Nop(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the stores, cache, middleware, routes, and starts the
// server. It blocks until the server stops.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("pressflow: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("pressflow: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("pressflow: init store: %w", err)
	}
	a.Store = store

	a.Drafts = NewDraftCache(a.Config.DraftTTL)
	a.loginLimiter = NewAttemptLimiter(5, time.Minute)
	a.publishLimiter = NewAttemptLimiter(10, time.Minute)
	a.WP = wordpress.NewClient(wordpress.WithLogger(a.logger))

	if a.Config.HistoryEnabled {
		hs, err := history.NewStore(a.Config.HistoryDatabasePath)
		if err != nil {
			return fmt.Errorf("pressflow: init history: %w", err)
		}
		a.History = hs
		stopCleanup := hs.StartCleanupScheduler(a.Config.HistoryRetentionDays, 24*time.Hour)
		defer stopCleanup()
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/", a.handleHome)
	e.POST("/login/", a.handleLogin)
	e.POST("/logout/", handleLogout)

	// Workflow (HTMX partials)
	e.POST("/generate/", a.handleGenerate)
	e.POST("/categories/", a.handleCategories)
	e.POST("/publish/", a.handlePublish)

	// Saved sites
	e.GET("/sites/", a.handleSiteList)
	e.POST("/sites/save/", a.handleSiteSave)
	e.DELETE("/sites/:id/", a.handleSiteDelete)
	e.POST("/sites/:id/use/", a.handleSiteUse)

	// Image library
	e.GET("/images/", a.handleImageList)
	e.POST("/images/upload/", a.handleImageUpload)
	e.DELETE("/images/:filename/", a.handleImageDelete)

	e.GET("/history/", a.handleHistory)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.History != nil {
		a.History.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("pressflow: required environment variable %s is not set", key)
	}
	return v
}
