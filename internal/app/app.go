package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"proxy-logs/internal/aggregators"
	internalhttp "proxy-logs/internal/http"
	"proxy-logs/internal/locations"
	"proxy-logs/internal/models"
	"proxy-logs/internal/objectstores"
	"proxy-logs/internal/parsers"
	"proxy-logs/internal/queries"
	"proxy-logs/internal/shared/configs"
	"proxy-logs/internal/shared/filestorages"
	"proxy-logs/internal/shared/loggers"
	"proxy-logs/internal/sidecaches"
)

const appName = "proxy-logs"

// Services is the query engine built from configuration, shared by the HTTP server and the
// one-shot query command.
type Services struct {
	QueryService queries.QueryService
	closeFn      func() error
}

// Close releases the side-cache backend.
func (s *Services) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// NewServices wires locations, object stores, parser, aggregator and side caches into a
// QueryService.
func NewServices(config *configs.Config) (*Services, error) {
	layout, err := models.NewFieldLayout(config.Query.LogFields)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize log layout: %w", err)
	}
	parser := parsers.NewLogParser(parsers.ParserOptions{
		Layout:            layout,
		IgnoreStatusCodes: config.Query.IgnoreStatusCodes,
		TimeZone:          config.Query.TimeLocation(),
	})

	docs, closeFn, err := newDocumentStore(config.SideCache)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize side cache: %w", err)
	}
	sideCache := sidecaches.NewSideCache(docs, sidecaches.SideCacheOptions{
		MaxWriteRetries: config.SideCache.MaxWriteRetries,
	})

	queryService := queries.NewQueryService(
		locations.NewLocationStore(config.Locations),
		objectstores.NewProvider(objectstores.ProviderOptions{PageSize: config.Storage.PageSize}),
		parser,
		aggregators.NewAggregator(),
		sideCache,
		queries.QueryOptions{
			DefaultLocation:       config.Query.DefaultLocation,
			DefaultInterval:       int64(config.Query.DefaultInterval),
			ExcludedObjectMarkers: config.Query.ExcludedObjectMarkers,
			AllowPartialDownloads: config.Storage.AllowPartialDownloads,
			Client: objectstores.ClientOptions{
				RequestTimeout:         time.Duration(config.Storage.RequestTimeout) * time.Second,
				MaxConcurrentDownloads: config.Storage.MaxConcurrentDownloads,
			},
		},
	)

	return &Services{QueryService: queryService, closeFn: closeFn}, nil
}

func newDocumentStore(cfg configs.SideCacheConfig) (sidecaches.DocumentStore, func() error, error) {
	switch cfg.Backend {
	case "redis":
		pool := sidecaches.NewRedisPool(cfg.RedisAddr)
		return sidecaches.NewRedisDocumentStore(pool, cfg.KeyPrefix), pool.Close, nil
	case "file":
		files, err := filestorages.NewFileStorage(cfg.RootDir)
		if err != nil {
			return nil, nil, err
		}
		return sidecaches.NewFileDocumentStore(files), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported side cache backend %q", cfg.Backend)
	}
}

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server
	services  *Services
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, appName).
		Logger()

	services, err := NewServices(config)
	if err != nil {
		return nil, err
	}

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(services.QueryService, internalhttp.RouterOptions{
		ResponseHeaders: config.Query.ResponseHeaders,
		RateLimit:       config.Server.RateLimit,
	}, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:    config,
		appLogger: appLogger,
		server:    server,
		services:  services,
	}, nil
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting %s service on port %d (log_level=%s, locations=%d, side_cache=%s)",
			appName,
			app.config.Server.Port,
			app.config.Log.Level,
			len(app.config.Locations),
			app.config.SideCache.Backend)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server, waiting for in-flight queries
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Release the side cache
	if err := app.services.Close(); err != nil {
		return fmt.Errorf("side cache close failed: %w", err)
	}
	app.appLogger.Info().Msg("Side cache closed")

	return nil
}
