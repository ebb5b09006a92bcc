package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/starsplanner/planner-api/api/swagger"
	"github.com/starsplanner/planner-api/internal/handler"
	internalmiddleware "github.com/starsplanner/planner-api/internal/middleware"
	"github.com/starsplanner/planner-api/internal/repository"
	"github.com/starsplanner/planner-api/internal/service"
	"github.com/starsplanner/planner-api/pkg/cache"
	"github.com/starsplanner/planner-api/pkg/config"
	"github.com/starsplanner/planner-api/pkg/database"
	"github.com/starsplanner/planner-api/pkg/logger"
	corsmiddleware "github.com/starsplanner/planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/starsplanner/planner-api/pkg/middleware/requestid"
)

// @title Planner API
// @version 1.0.0
// @description Generates clash-free, ranked course timetables
// @BasePath /api/v1
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Catalogue.CacheEnabled {
		if redisClient, err = cache.NewRedis(ctx, cfg.Redis); err != nil {
			logr.Warn("redis unavailable, catalogue cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	metrics := service.NewMetricsService()
	validate := validator.New()

	cacheRepo := repository.NewCacheRepository(redisClient, cfg.Redis.Namespace, logr)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Catalogue.CacheTTL, logr, redisClient != nil)

	catalogueRepo := repository.NewCatalogueRepository(db)
	catalogueSvc := service.NewCatalogueService(catalogueRepo, cacheSvc, metrics, logr, cfg.Catalogue.CacheTTL)
	generatorSvc := service.NewTimetableGeneratorService(catalogueSvc, metrics, validate, logr, service.TimetableGeneratorConfig{
		MaxModules: cfg.Generator.MaxModules,
		MaxSteps:   cfg.Generator.MaxSteps,
		Timeout:    cfg.Generator.Timeout,
		ResultCap:  cfg.Generator.ResultCap,
	})
	exportSvc := service.NewExportService(catalogueSvc, validate, logr, nil, nil)

	timetableHandler := handler.NewTimetableHandler(generatorSvc, exportSvc, catalogueSvc)
	checks := map[string]handler.ReadinessCheck{"postgres": db.PingContext}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	metricsHandler := handler.NewMetricsHandler(metrics, checks)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics, "/metrics", "/health", "/ready"))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.WithResponseMeta())
	api.POST("/timetables/generate", timetableHandler.Generate)
	api.POST("/timetables/export", timetableHandler.Export)
	api.GET("/modules/:code/indexes", timetableHandler.ModuleIndexes)
	api.POST("/catalogue/:semester/invalidate", timetableHandler.InvalidateCatalogue)
	api.GET("/metrics/summary", metricsHandler.Summary)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Generator.Timeout + 5*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		shutdownCh := make(chan os.Signal, 1)
		signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)
		sig := <-shutdownCh
		logr.Info("shutting down", zap.String("signal", sig.String()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		errCh <- srv.Shutdown(shutdownCtx)
	}()

	logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
	if err := <-errCh; err != nil {
		logr.Error("shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
