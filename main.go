package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/formpilot/formbuilder-service/internal/assets"
	"github.com/formpilot/formbuilder-service/internal/cache"
	"github.com/formpilot/formbuilder-service/internal/config"
	"github.com/formpilot/formbuilder-service/internal/handlers"
	"github.com/formpilot/formbuilder-service/internal/repositories/postgres"
	"github.com/formpilot/formbuilder-service/internal/services"
	"github.com/formpilot/formbuilder-service/internal/utils"
	"github.com/formpilot/formbuilder-service/internal/validator"
	"github.com/formpilot/formbuilder-service/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var logger *slog.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return
	}
	repo := postgres.NewRepository(db)
	defer repo.Close()

	cacheService := buildCache(cfg, logger)

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		return
	}
	defer publisher.Close()

	assetStore := buildAssetStore(cfg, logger)

	v := validator.New()
	formService := services.NewFormService(repo, cacheService, publisher, logger, v)
	responseService := services.NewResponseService(repo, formService, publisher, logger, v)
	exportService := services.NewExportService(repo, formService, logger)

	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestLogger(logger))

	handlerManager := handlers.NewHandlerManager(formService, responseService, exportService, assetStore, repo, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Starting formbuilder service", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}

func buildCache(cfg *config.Config, logger *slog.Logger) cache.CacheService {
	if cfg.RedisURL == "" {
		logger.Info("Redis not configured, running without cache")
		return cache.NoopCache{}
	}

	client, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, running without cache", "error", err)
		return cache.NoopCache{}
	}
	return cache.NewRedisCache(client, logger)
}

func buildAssetStore(cfg *config.Config, logger *slog.Logger) assets.Store {
	if cfg.Assets.MinioEndpoint == "" {
		logger.Info("Object storage not configured, asset uploads disabled")
		return assets.DisabledStore{}
	}

	client, err := pkg.NewMinioClient(cfg)
	if err != nil {
		logger.Warn("Object storage unavailable, asset uploads disabled", "error", err)
		return assets.DisabledStore{}
	}
	return assets.NewMinioStore(client, cfg.Assets.MinioBucket, cfg.Assets.PublicBaseURL, logger)
}
