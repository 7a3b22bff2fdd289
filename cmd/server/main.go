package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appanalytics "github.com/listings/backend/internal/application/analytics"
	"github.com/listings/backend/internal/application/importer"
	applisting "github.com/listings/backend/internal/application/listing"
	appsecurity "github.com/listings/backend/internal/application/security"
	"github.com/listings/backend/internal/infrastructure/auth"
	"github.com/listings/backend/internal/infrastructure/cache"
	"github.com/listings/backend/internal/infrastructure/config"
	"github.com/listings/backend/internal/infrastructure/logger"
	"github.com/listings/backend/internal/infrastructure/persistence"
	"github.com/listings/backend/internal/interfaces/http/handler"
	"github.com/listings/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() { _ = log.Sync() }()

	log.Info("Starting listings backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database,
		logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level)))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()

	// repositories
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	developerRepo := persistence.NewGormDeveloperRepository(db.DB)
	bankRepo := persistence.NewGormBankRepository(db.DB)
	cityRepo := persistence.NewGormCityRepository(db.DB)
	districtRepo := persistence.NewGormDistrictRepository(db.DB)
	favoriteRepo := persistence.NewGormFavoriteRepository(db.DB)
	jobRepo := persistence.NewGormImportJobRepository(db.DB)
	jobErrorRepo := persistence.NewGormImportJobErrorRepository(db.DB)
	auditRepo := persistence.NewGormAuditLogRepository(db.DB)
	adminRepo := persistence.NewGormAdminUserRepository(db.DB)
	banRepo := persistence.NewGormIPBanRepository(db.DB)
	viewRepo := persistence.NewGormPageViewRepository(db.DB)

	jwtService := auth.NewJWTService(cfg.JWT)

	banCache := cache.NewIPBanCache(redisClient, banRepo, cfg.Security, log)
	cacheCtx, cancelCache := context.WithCancel(context.Background())
	defer cancelCache()
	if err := banCache.Start(cacheCtx); err != nil {
		log.Warn("IP ban cache failed to load, starting empty until the next refresh", zap.Error(err))
	}
	defer banCache.Stop()

	// import pipeline
	executor := importer.NewExecutor(projectRepo, developerRepo, bankRepo, cityRepo, districtRepo, jobRepo, jobErrorRepo, log)
	runner := importer.NewRunner(executor, jobRepo, log, cfg.Import.QueueSize, cfg.Import.Workers)
	if err := runner.RecoverOrphans(context.Background()); err != nil {
		log.Error("Failed to recover orphaned import jobs", zap.Error(err))
	}
	undoEngine := importer.NewUndoEngine(projectRepo, developerRepo, bankRepo, jobRepo, log)
	importService := importer.NewService(jobRepo, jobErrorRepo, runner, undoEngine, auditRepo, log)

	// application services
	projectService := applisting.NewProjectService(projectRepo, developerRepo, cityRepo, districtRepo, bankRepo, auditRepo, log)
	developerService := applisting.NewDeveloperService(developerRepo, auditRepo, log)
	bankService := applisting.NewBankService(bankRepo, auditRepo, log)
	locationService := applisting.NewLocationService(cityRepo, districtRepo, auditRepo, log)
	favoriteService := applisting.NewFavoriteService(favoriteRepo, projectRepo)
	authService := appsecurity.NewAuthService(adminRepo, jwtService, auditRepo, log)
	banService := appsecurity.NewIPBanService(banRepo, banCache, auditRepo, log)
	auditService := appsecurity.NewAuditService(auditRepo)
	analyticsService := appanalytics.NewService(viewRepo, projectRepo, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxy configuration", zap.Error(err))
		}
	}

	rateLimit := 0
	if cfg.HTTP.RateLimitEnabled {
		rateLimit = cfg.HTTP.RateLimitRequests
	}
	router.Setup(engine, router.Config{
		Logger:          log,
		JWTService:      jwtService,
		BanChecker:      banCache,
		CORSOrigins:     cfg.HTTP.CORSAllowOrigins,
		PublicRateLimit: rateLimit,
		RateWindow:      cfg.HTTP.RateLimitWindow,
		MaxBodyBytes:    cfg.HTTP.MaxBodySize,
		System:          handler.NewSystemHandler(db.DB),
		Auth:            handler.NewAuthHandler(authService),
		Admin: []router.RouteRegistrar{
			handler.NewImportHandler(importService, cfg.Import.MaxFileSize),
			handler.NewProjectHandler(projectService),
			handler.NewCatalogHandler(developerService, bankService, locationService),
			handler.NewSecurityHandler(auditService, banService),
		},
		Public: []router.RouteRegistrar{
			handler.NewPublicHandler(projectService, developerService, bankService, locationService, favoriteService),
		},
		Analytics: handler.NewAnalyticsHandler(analyticsService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown failed", zap.Error(err))
	}

	// drain queued imports so no job is orphaned mid-write
	runner.Stop()
	log.Info("Shutdown complete")
}
