package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/recipebox/backend/config"
	"github.com/recipebox/backend/internal/api"
	"github.com/recipebox/backend/internal/database"
	"github.com/recipebox/backend/internal/middleware"
)

// Dependencies are the wired components the router serves
type Dependencies struct {
	DB       *gorm.DB
	Services api.Services
	Limiters api.Limiters
	Metrics  *middleware.Metrics
}

// SetupRouter configures the middleware chain and the application routes
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Throttle(cfg.RateLimitRPS))

	var ping api.Pinger
	if deps.DB != nil {
		ping = func(ctx context.Context) error {
			return database.HealthCheck(ctx, deps.DB)
		}
	}
	router.GET("/health", api.HealthCheck(ping))
	if deps.Metrics != nil {
		router.GET("/metrics", deps.Metrics.Handler())
	}

	api.RegisterRoutes(router, deps.Services, deps.Limiters)

	return router
}
