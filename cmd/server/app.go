package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/stridehq/stride-api/internal/config"
	"github.com/stridehq/stride-api/internal/events"
	"github.com/stridehq/stride-api/internal/motivation"
	"github.com/stridehq/stride-api/internal/platform/openrouter"
	"github.com/stridehq/stride-api/internal/platform/postgres"
	"github.com/stridehq/stride-api/internal/service"
	"github.com/stridehq/stride-api/internal/service/auth"
	"github.com/stridehq/stride-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore     store.UserStore
	activityStore store.ActivityStore

	// Service interfaces
	jwtService      auth.JWTService
	passwordHasher  auth.PasswordHasher
	userService     service.UserService
	activityService service.ActivityService
	statsService    service.StatsService
	generator       motivation.Generator

	// Event system
	eventEmitter events.EventEmitter
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password hasher
	app.passwordHasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.activityStore = postgres.NewPostgresActivityStore(db, logger)

	// Initialize application services
	app.userService = service.NewUserService(app.userStore, app.passwordHasher, logger)
	app.activityService = service.NewActivityService(app.activityStore, logger)
	app.statsService = service.NewStatsService(app.activityStore, logger)

	// Initialize event emitter with a logging handler so generation
	// lifecycle events (cache hits, retries, model fallbacks) show up in
	// the structured logs.
	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewLoggingEventHandler(logger))
	app.eventEmitter = emitter

	// Initialize the motivational-message generator when enabled. A
	// disabled or misconfigured generator is not fatal: the motivation
	// endpoint degrades to static fallback messages.
	if cfg.Motivation.Enabled {
		generator, err := setupGenerator(ctx, cfg.Motivation, logger, app.eventEmitter)
		if err != nil {
			logger.Warn("motivation generator unavailable, serving fallback messages",
				"error", err)
		} else {
			app.generator = generator
		}
	} else {
		logger.Info("motivation generation disabled by configuration")
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// setupGenerator wires the OpenRouter client and the motivation service,
// then probes the provider. A failed probe is logged but not fatal; the
// provider may recover while the server runs.
func setupGenerator(
	ctx context.Context,
	cfg config.MotivationConfig,
	logger *slog.Logger,
	emitter events.EventEmitter,
) (motivation.Generator, error) {
	client, err := openrouter.NewClient(openrouter.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: time.Duration(cfg.RetryDelaySeconds) * time.Second,
		SiteURL:    cfg.SiteURL,
		SiteName:   cfg.SiteName,
	}, logger, emitter)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	svc, err := motivation.NewService(client, cfg, logger, emitter)
	if err != nil {
		return nil, fmt.Errorf("failed to create motivation service: %w", err)
	}

	probeCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if !svc.TestConnection(probeCtx) {
		logger.Warn("motivation provider connection test failed",
			"model", cfg.Model)
	}

	return svc, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		closeDatabase(app.db, app.logger)
	}

	app.logger.Info("application shutdown completed")
}
