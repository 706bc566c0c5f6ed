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

	httpmetrics "partyPredictor/app/echo-server/metrics"
	"partyPredictor/app/echo-server/router"
	"partyPredictor/business/predict"
	"partyPredictor/domain"
	"partyPredictor/internal/middleware"
	"partyPredictor/internal/repository/artifact"
	psqlRepo "partyPredictor/internal/repository/postgres"
	"partyPredictor/internal/repository/receptiviti"
	redisRepo "partyPredictor/internal/repository/redis"
	"partyPredictor/internal/repository/twitter"
	"partyPredictor/internal/rest"
	"partyPredictor/pkg/config"
	"partyPredictor/pkg/database"
	redisdb "partyPredictor/pkg/database/redis"
	"partyPredictor/pkg/logger"
	"partyPredictor/pkg/metrics"

	"github.com/labstack/echo/v4"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer func() { _ = logger.Sync() }()
	logger.Info("Starting partyPredictor", "version", cfg.App.Version)

	metrics.Init()
	httpmetrics.Init()

	// Init upstream repositories
	feedRepo := twitter.NewTwitterRepository(
		twitter.TwitterConfig{
			BaseUrl:           cfg.Twitter.BaseUrl,
			ConsumerKey:       cfg.Twitter.ConsumerKey,
			ConsumerSecret:    cfg.Twitter.ConsumerSecret,
			AccessToken:       cfg.Twitter.AccessToken,
			AccessTokenSecret: cfg.Twitter.AccessTokenSecret,
			Pages:             cfg.Twitter.Pages,
			PagesPerSecond:    cfg.Twitter.PagesPerSecond,
			Burst:             cfg.Twitter.Burst,
			Timeout:           cfg.Twitter.Timeout,
		},
	)

	scoringRepo := receptiviti.NewReceptivitiRepository(
		receptiviti.ReceptivitiConfig{
			Url:          cfg.Receptiviti.Url,
			ApiKey:       cfg.Receptiviti.ApiKey,
			ApiSecretKey: cfg.Receptiviti.ApiSecretKey,
			Timeout:      cfg.Receptiviti.Timeout,
		},
	)

	// Init artifact repositories
	var modelRepo predict.ModelRepository = artifact.NewModelRepository(cfg.Model.ModelDir, cfg.Model.ModelExt)
	if cfg.Model.CacheTTL > 0 {
		modelRepo = predict.NewModelCache(modelRepo, cfg.Model.CacheTTL)
		logger.Info("Model cache enabled", "ttl", cfg.Model.CacheTTL)
	}
	matrixRepo := artifact.NewMatrixRepository(cfg.Model.MatrixDir)

	// Optional stores stay nil interfaces when disabled
	var scoreCacheRepo predict.ScoreCacheRepository
	if cfg.ScoreCache.Enabled {
		redisClient, err := redisdb.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		defer func() {
			if err := redisdb.CloseRedisClient(redisClient); err != nil {
				logger.Error("Failed to close redis", "error", err)
			}
		}()
		scoreCacheRepo = redisRepo.NewScoreCacheRepository(redisClient)
		logger.Info("Score cache enabled", "ttl", cfg.ScoreCache.TTL)
	}

	var historyRepo predict.PredictionRepository
	if cfg.History.Enabled {
		db, err := database.InitPostgres(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", "error", err)
		}
		if err := db.AutoMigrate(&domain.PredictionEvent{}); err != nil {
			logger.Fatal("Failed to migrate prediction history", "error", err)
		}
		historyRepo = psqlRepo.NewPredictionRepository(db)
		logger.Info("Prediction history enabled")
	}

	// Init service
	predictService := predict.NewPredictService(
		feedRepo,
		scoringRepo,
		modelRepo,
		matrixRepo,
		scoreCacheRepo,
		historyRepo,
		predict.Config{ScoreCacheTTL: cfg.ScoreCache.TTL},
	)

	// Init handler
	predictHandler := rest.NewPredictHandler(predictService, cfg.Server.PredictTimeout)
	pageHandler := rest.NewPageHandler(predictService.Algorithms())
	adminHandler := rest.NewAdminHandler(predictService)

	renderer, err := rest.NewTemplateRenderer()
	if err != nil {
		logger.Fatal("Failed to load templates", "error", err)
	}

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	router.SetupGlobalMiddleware(e, []string{"http://localhost:3000", "http://localhost:8080"})

	// Setup routes
	router.SetupPageRoutes(e, pageHandler)
	router.SetupPredictRoutes(e, predictHandler)
	router.SetupMetricsRoutes(e)

	api := e.Group("/api/v1")
	router.SetupAPIRoutes(api, predictHandler)
	if cfg.JWT.SecretKey != "" {
		router.SetupAdminRoutes(api, adminHandler, middleware.AuthMiddleware(cfg.JWT.SecretKey), middleware.AdminOnly())
	} else {
		logger.Warn("JWT_SECRET not set, admin routes disabled")
	}

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

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
