package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/listings/backend/internal/infrastructure/auth"
	"github.com/listings/backend/internal/infrastructure/logger"
	"github.com/listings/backend/internal/interfaces/http/handler"
	"github.com/listings/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar mounts routes on a router group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Config wires the middleware chain and both route surfaces
type Config struct {
	Logger          *zap.Logger
	JWTService      *auth.JWTService
	BanChecker      middleware.BanChecker
	CORSOrigins     []string
	PublicRateLimit int           // requests per window, 0 disables
	RateWindow      time.Duration // defaults to one minute
	MaxBodyBytes    int64         // defaults to 10MB + form overhead

	System    RouteRegistrar
	Auth      *handler.AuthHandler
	Admin     []RouteRegistrar // mounted under /api/admin behind JWT auth
	Public    []RouteRegistrar // mounted under /api/v1
	Analytics *handler.AnalyticsHandler
}

// Setup builds the gin engine with the full middleware chain:
// RequestID, request logging, CORS, security headers, body limit, then
// per-surface IP ban and rate limit checks on the public group.
func Setup(engine *gin.Engine, cfg Config) {
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.CORSOrigins

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = handler.MaxImportFileSize + 1<<20
	}

	engine.Use(middleware.RequestID())
	if cfg.Logger != nil {
		engine.Use(logger.GinMiddleware(cfg.Logger), logger.Recovery(cfg.Logger))
	}
	engine.Use(
		middleware.CORSWithConfig(corsCfg),
		middleware.Secure(),
		middleware.BodyLimit(maxBody),
	)

	if cfg.System != nil {
		cfg.System.RegisterRoutes(engine.Group(""))
	}

	public := engine.Group("/api/v1")
	if cfg.BanChecker != nil {
		public.Use(middleware.IPBan(cfg.BanChecker))
	}
	if cfg.PublicRateLimit > 0 {
		window := cfg.RateWindow
		if window <= 0 {
			window = time.Minute
		}
		public.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.PublicRateLimit, window)))
	}
	for _, r := range cfg.Public {
		r.RegisterRoutes(public)
	}
	if cfg.Analytics != nil {
		cfg.Analytics.RegisterPublicRoutes(public)
	}

	admin := engine.Group("/api/admin")
	if cfg.Auth != nil {
		cfg.Auth.RegisterPublicRoutes(admin)
	}
	if cfg.JWTService != nil {
		admin.Use(middleware.AdminAuth(cfg.JWTService))
	}
	if cfg.Auth != nil {
		cfg.Auth.RegisterRoutes(admin)
	}
	for _, r := range cfg.Admin {
		r.RegisterRoutes(admin)
	}
	if cfg.Analytics != nil {
		cfg.Analytics.RegisterRoutes(admin)
	}
}
