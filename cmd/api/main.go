// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/easycatalog/easycatalog-be/internal/adapters/db"
	redis_a "github.com/easycatalog/easycatalog-be/internal/adapters/redis_adapter"
	"github.com/easycatalog/easycatalog-be/internal/core/ports"
	"github.com/easycatalog/easycatalog-be/internal/core/services"
	"github.com/easycatalog/easycatalog-be/internal/handlers"
	"github.com/easycatalog/easycatalog-be/internal/handlers/middleware"
	"github.com/easycatalog/easycatalog-be/internal/pkg/config"
	"github.com/easycatalog/easycatalog-be/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	appLogger := logger.SetupLogger("debug", "json")
	slogger := appLogger.Logger

	slogger.Info("starting easycatalog api",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	appLogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger = appLogger.Logger
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx := context.Background()

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	if cfg.App.Environment != "production" {
		if err := runMigrations(ctx, cfg, slogger); err != nil {
			slogger.Error("failed to run migrations", slog.String("error", err.Error()))
		}
	}

	server := setupHTTPServer(cfg, deps, appLogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()),
			slog.Bool("tls", cfg.Server.TLSEnabled),
		)

		if cfg.Server.TLSEnabled {
			serverErrors <- server.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			serverErrors <- server.ListenAndServe()
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database       *db.Database
	redisClient    *redis.Client
	redisCache     ports.CacheRepository
	asynqClient    *asynq.Client
	asynqInspector *asynq.Inspector

	storeHandler     *handlers.StoreHandler
	categoryHandler  *handlers.CategoryHandler
	productHandler   *handlers.ProductHandler
	stockHandler     *handlers.StockHandler
	dashboardHandler *handlers.DashboardHandler
	healthHandler    *handlers.HealthHandler
}

func (d *dependencies) cleanup() {
	if d.database != nil {
		d.database.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.asynqClient != nil {
		d.asynqClient.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	logger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	logger.Info("connecting to Redis",
		slog.String("host", cfg.Redis.Host),
		slog.String("port", cfg.Redis.Port),
	)

	redisClient := redis.NewClient(&redis.Options{
		Addr:            fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password:        cfg.Redis.Password,
		DB:              cfg.Redis.DB,
		MaxRetries:      cfg.Redis.MaxRetries,
		MinRetryBackoff: cfg.Redis.MinRetryBackoff,
		MaxRetryBackoff: cfg.Redis.MaxRetryBackoff,
		DialTimeout:     cfg.Redis.DialTimeout,
		ReadTimeout:     cfg.Redis.ReadTimeout,
		WriteTimeout:    cfg.Redis.WriteTimeout,
		PoolSize:        cfg.Redis.PoolSize,
		MinIdleConns:    cfg.Redis.MinIdleConns,
		PoolTimeout:     cfg.Redis.PoolTimeout,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	deps.redisClient = redisClient
	deps.redisCache = redis_a.NewCache(redisClient, cfg.Redis.TTL, logger)

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}
	deps.asynqClient = asynq.NewClient(asynqRedisOpt)
	deps.asynqInspector = asynq.NewInspector(asynqRedisOpt)

	// Repositories
	storeRepo := db.NewStoreRepository(database, logger)
	categoryRepo := db.NewCategoryRepository(database, logger)
	productRepo := db.NewProductRepository(database, logger)
	stockRepo := db.NewStockRepository(database, logger)
	tiktokRepo := db.NewTikTokRepository(database, logger)

	// Services
	storeService := services.NewStoreService(storeRepo, tiktokRepo, logger)
	categoryService := services.NewCategoryService(categoryRepo, logger)
	productService := services.NewProductService(productRepo, deps.redisCache, logger)
	stockService := services.NewStockService(stockRepo, deps.redisCache, logger)

	// Handlers
	deps.storeHandler = handlers.NewStoreHandler(storeService, logger)
	deps.categoryHandler = handlers.NewCategoryHandler(categoryService, logger)
	deps.productHandler = handlers.NewProductHandler(productService, logger)
	deps.stockHandler = handlers.NewStockHandler(stockService, logger)
	deps.dashboardHandler = handlers.NewDashboardHandler(productRepo, categoryRepo, stockService, deps.redisCache, logger)
	deps.healthHandler = handlers.NewHealthHandler(database, redisClient, deps.asynqInspector, cfg, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, appLogger *logger.Logger) *http.Server {
	mux := http.NewServeMux()

	registerRoutes(mux, deps, cfg)

	var handler http.Handler = mux

	// Middleware applies in reverse order (innermost first)
	if cfg.App.Environment != "test" {
		handler = middleware.Recovery(appLogger.Logger)(handler)
		handler = middleware.Logger(appLogger)(handler)
		handler = middleware.RequestID(handler)
	}

	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}

	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}

	if cfg.Security.SecureHeaders {
		handler = middleware.SecureHeaders(handler)
	}

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(appLogger.Handler(), slog.LevelError),
	}
}

func registerRoutes(mux *http.ServeMux, deps *dependencies, cfg *config.Config) {
	apiV1 := "/api/v1"

	// Health endpoints
	mux.HandleFunc("GET /health", deps.healthHandler.Health)
	mux.HandleFunc("GET /health/ready", deps.healthHandler.Readiness)
	mux.HandleFunc("GET /health/live", deps.healthHandler.Liveness)
	mux.HandleFunc("GET "+apiV1+"/health", deps.healthHandler.Health)

	// Store endpoints
	mux.HandleFunc("POST "+apiV1+"/stores", deps.storeHandler.CreateStore)
	mux.HandleFunc("GET "+apiV1+"/stores/{storeId}", deps.storeHandler.GetStore)
	mux.HandleFunc("PUT "+apiV1+"/stores/{storeId}", deps.storeHandler.UpdateStore)
	mux.HandleFunc("DELETE "+apiV1+"/stores/{storeId}", deps.storeHandler.DeleteStore)

	// Shop integration endpoints
	mux.HandleFunc("PUT "+apiV1+"/stores/{storeId}/tiktok", deps.storeHandler.UpsertIntegration)
	mux.HandleFunc("GET "+apiV1+"/stores/{storeId}/tiktok", deps.storeHandler.GetIntegration)
	mux.HandleFunc("DELETE "+apiV1+"/stores/{storeId}/tiktok", deps.storeHandler.DeleteIntegration)

	// Category endpoints
	mux.HandleFunc("POST "+apiV1+"/stores/{storeId}/categories", deps.categoryHandler.CreateCategory)
	mux.HandleFunc("GET "+apiV1+"/stores/{storeId}/categories", deps.categoryHandler.ListCategories)
	mux.HandleFunc("GET "+apiV1+"/stores/{storeId}/categories/{id}", deps.categoryHandler.GetCategory)
	mux.HandleFunc("PUT "+apiV1+"/stores/{storeId}/categories/{id}", deps.categoryHandler.UpdateCategory)
	mux.HandleFunc("DELETE "+apiV1+"/stores/{storeId}/categories/{id}", deps.categoryHandler.DeleteCategory)

	// Product endpoints
	mux.HandleFunc("POST "+apiV1+"/stores/{storeId}/products", deps.productHandler.CreateProduct)
	mux.HandleFunc("GET "+apiV1+"/stores/{storeId}/products", deps.productHandler.ListProducts)
	mux.HandleFunc("GET "+apiV1+"/stores/{storeId}/products/{id}", deps.productHandler.GetProduct)
	mux.HandleFunc("PUT "+apiV1+"/stores/{storeId}/products/{id}", deps.productHandler.UpdateProduct)
	mux.HandleFunc("DELETE "+apiV1+"/stores/{storeId}/products/{id}", deps.productHandler.DeleteProduct)

	// Variant endpoints
	mux.HandleFunc("POST "+apiV1+"/stores/{storeId}/products/{id}/variants", deps.productHandler.AddVariant)
	mux.HandleFunc("PUT "+apiV1+"/stores/{storeId}/variants/{variantId}", deps.productHandler.UpdateVariant)
	mux.HandleFunc("DELETE "+apiV1+"/stores/{storeId}/variants/{variantId}", deps.productHandler.DeleteVariant)

	// Image endpoints
	mux.HandleFunc("POST "+apiV1+"/stores/{storeId}/products/{id}/images", deps.productHandler.AddImage)
	mux.HandleFunc("DELETE "+apiV1+"/stores/{storeId}/images/{imageId}", deps.productHandler.DeleteImage)
	mux.HandleFunc("PUT "+apiV1+"/stores/{storeId}/products/{id}/images/reorder", deps.productHandler.ReorderImages)

	// Stock ledger endpoints
	mux.HandleFunc("POST "+apiV1+"/stores/{storeId}/stock/movements", deps.stockHandler.RecordMovement)
	mux.HandleFunc("GET "+apiV1+"/stores/{storeId}/stock/movements", deps.stockHandler.ListStoreMovements)
	mux.HandleFunc("POST "+apiV1+"/stores/{storeId}/stock/adjustments", deps.stockHandler.AdjustStock)
	mux.HandleFunc("GET "+apiV1+"/stores/{storeId}/stock/summary", deps.stockHandler.GetStockSummary)
	mux.HandleFunc("GET "+apiV1+"/stores/{storeId}/stock/low", deps.stockHandler.ListLowStock)
	// Variant reads resolve by variant ID alone, so they mount unscoped.
	mux.HandleFunc("GET "+apiV1+"/variants/{variantId}/stock", deps.stockHandler.GetVariantStock)
	mux.HandleFunc("GET "+apiV1+"/variants/{variantId}/movements", deps.stockHandler.ListVariantMovements)

	// Dashboard
	mux.HandleFunc("GET "+apiV1+"/stores/{storeId}/dashboard", deps.dashboardHandler.GetDashboard)

	// pprof endpoints (development only)
	if cfg.Server.EnablePprof && cfg.IsDevelopment() {
		mux.HandleFunc("GET /debug/pprof/", http.HandlerFunc(http.DefaultServeMux.ServeHTTP))
	}
}

func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("running database migrations")

	migrationConfig := &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		SourcePath:  cfg.Database.MigrationPath,
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}

	return db.RunMigrationsWithRetry(ctx, migrationConfig, logger, 3)
}
