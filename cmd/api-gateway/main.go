package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/strive-cao-api/api/swagger"
	"github.com/noah-isme/strive-cao-api/internal/handler"
	internalmiddleware "github.com/noah-isme/strive-cao-api/internal/middleware"
	"github.com/noah-isme/strive-cao-api/internal/models"
	"github.com/noah-isme/strive-cao-api/internal/repository"
	"github.com/noah-isme/strive-cao-api/internal/service"
	"github.com/noah-isme/strive-cao-api/pkg/cache"
	"github.com/noah-isme/strive-cao-api/pkg/catalog"
	"github.com/noah-isme/strive-cao-api/pkg/config"
	"github.com/noah-isme/strive-cao-api/pkg/database"
	"github.com/noah-isme/strive-cao-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/strive-cao-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/strive-cao-api/pkg/middleware/requestid"
)

// @title Strive CAO API
// @version 1.0.0
// @description CAO points calculation, student profiles and course recommendations
// @BasePath /api/v1
// @schemes http

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
			redisClient = nil
		}
	}

	metricsSvc := service.NewMetricsService()
	var cacheRepo service.CacheRepository
	if redisClient != nil {
		repo := repository.NewCacheRepository(redisClient, logr)
		defer repo.Close() //nolint:errcheck
		cacheRepo = repo
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.ProfileTTL, logr, cfg.Cache.Enabled && cacheRepo != nil)

	resultRepo := repository.NewResultRepository(db)
	courseSrc, err := newCourseSource(cfg, db, logr)
	if err != nil {
		logr.Fatal("failed to initialise course catalog", zap.Error(err))
	}

	validate := validator.New()
	resultSvc := service.NewResultService(resultRepo, cacheSvc, metricsSvc, validate, logr)
	courseSvc := service.NewCourseService(courseSrc, cacheSvc, cfg.Cache.CatalogTTL, logr)
	profileSvc := service.NewProfileService(service.ProfileServiceParams{
		Results:   resultRepo,
		Catalog:   courseSvc,
		Converter: resultSvc,
		Cache:     cacheSvc,
		Metrics:   metricsSvc,
		Logger:    logr,
		Config: service.ProfileServiceConfig{
			CacheTTL:         cfg.Cache.ProfileTTL,
			FoldSubjectNames: cfg.Profile.FoldSubjectNames,
			CohortWorkers:    cfg.Profile.CohortWorkers,
		},
	})

	checks := map[string]handler.ReadinessCheck{
		"postgres": db.PingContext,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	resultHandler := handler.NewResultHandler(resultSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	caoHandler := handler.NewCAOHandler(profileSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, checks)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/metrics/summary", metricsHandler.Summary)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.WithResponseMeta())
	api.Use(internalmiddleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	{
		api.GET("/cao/points", caoHandler.Points)
		api.POST("/cao/calculate", caoHandler.Calculate)
		api.GET("/courses", courseHandler.List)

		students := api.Group("/students/:id")
		students.GET("/results", resultHandler.List)
		students.POST("/results", resultHandler.Append)
		students.GET("/profile", profileHandler.Profile)
		students.GET("/recommendations", profileHandler.Recommendations)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "catalog", cfg.Catalog.Source)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

type courseSource interface {
	List(ctx context.Context) ([]models.Course, error)
}

func newCourseSource(cfg *config.Config, db *sqlx.DB, logr *zap.Logger) (courseSource, error) {
	if cfg.Catalog.Source == config.CatalogSourceDatabase {
		return repository.NewCourseRepository(db), nil
	}
	loader, err := catalog.NewLoader(cfg.Catalog.Path, logr)
	if err != nil {
		return nil, err
	}
	return loader, nil
}
