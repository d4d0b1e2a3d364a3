package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"myStreamSaver/app/echo-server/router"
	"myStreamSaver/business/availability"
	"myStreamSaver/business/catalog"
	"myStreamSaver/business/optimizer"
	"myStreamSaver/business/titlesearch"
	"myStreamSaver/internal/middleware"
	psqlRepo "myStreamSaver/internal/repository/postgres"
	redisRepo "myStreamSaver/internal/repository/redis"
	"myStreamSaver/internal/repository/streamavail"
	"myStreamSaver/internal/rest"
	"myStreamSaver/pkg/config"
	"myStreamSaver/pkg/database"
	redisdb "myStreamSaver/pkg/database/redis"
	"myStreamSaver/pkg/logger"
	"myStreamSaver/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting MyStreamSaver", "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer redisdb.CloseRedisClient(redisClient)

	logger.Info("Redis connected successfully")

	// Init external availability API client
	availRepo := streamavail.NewStreamAvailRepository(streamavail.StreamAvailConfig{
		APIKey:  cfg.Streaming.APIKey,
		APIURL:  cfg.Streaming.APIURL,
		Country: cfg.Streaming.Country,
	})

	// Init repo
	serviceRepo := psqlRepo.NewServiceRepository(db)
	cacheRepo := redisRepo.NewCacheRepository(redisClient)
	usageRepo := redisRepo.NewUsageRepository(redisClient)

	// Init service
	catalogService := catalog.NewCatalogService(serviceRepo)
	availabilityService := availability.NewAvailabilityService(availRepo, cacheRepo, usageRepo, cfg.Streaming.MonthlyQuota, cfg.Streaming.DailyLimit)
	searchService := titlesearch.NewSearchService(availRepo, cacheRepo)
	optimizerService := optimizer.NewService(optimizer.Config{
		SolveTimeout: time.Duration(cfg.Optimizer.SolveTimeoutMs) * time.Millisecond,
	})

	// Init handler
	optimizeHandler := rest.NewOptimizeHandler(catalogService, availabilityService, optimizerService)
	serviceHandler := rest.NewServiceHandler(catalogService)
	titleHandler := rest.NewTitleHandler(searchService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupOptimizeRoutes(api, optimizeHandler)
	router.SetupServiceRoutes(api, serviceHandler)
	router.SetupTitleRoutes(api, titleHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
