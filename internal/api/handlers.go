package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/backend/internal/logger"
	"github.com/recipebox/backend/internal/middleware"
	"github.com/recipebox/backend/internal/service"
)

// Services are the dependencies behind the HTTP handlers
type Services struct {
	Auth    service.IAuthService
	Recipes service.IRecipeService
	Social  service.ISocialService
	Profile service.IProfileService
}

// Limiters are the optional per-user write limits. A nil limiter is skipped.
type Limiters struct {
	RecipeCreation *middleware.RateLimiter
	Comment        *middleware.RateLimiter
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router gin.IRouter, svc Services, limits Limiters) {
	if err := RegisterValidators(); err != nil {
		// Without the password tag signup would accept any password
		logger.Logger.Fatal().Err(err).Msg("Failed to register request validators")
	}

	authHandler := NewAuthHandler(svc.Auth)
	recipeHandler := NewRecipeHandler(svc.Recipes)
	socialHandler := NewSocialHandler(svc.Social)
	profileHandler := NewProfileHandler(svc.Profile)

	authHandler.RegisterRoutes(router)

	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(svc.Auth))
	{
		recipes := protected.Group("/recipes")
		recipes.GET("", recipeHandler.ListMine)
		recipes.POST("", withLimit(limits.RecipeCreation, recipeHandler.Create)...)
		recipes.GET("/all", recipeHandler.ListAll)
		recipes.GET("/:id", recipeHandler.GetByID)
		recipes.DELETE("/:id", recipeHandler.Delete)
		recipes.POST("/:id/like", socialHandler.Like)
		recipes.POST("/:id/comment", withLimit(limits.Comment, socialHandler.Comment)...)
		recipes.POST("/:id/rate", socialHandler.Rate)

		protected.GET("/user/activity", profileHandler.Activity)
		protected.GET("/users/:username/recipes", profileHandler.UserRecipes)
	}
}

func withLimit(limiter *middleware.RateLimiter, handler gin.HandlerFunc) []gin.HandlerFunc {
	if limiter == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{limiter.RateLimitMiddleware(), handler}
}

// Pinger reports whether a backing store is reachable
type Pinger func(ctx context.Context) error

// HealthCheck returns the health status of the API and its database
func HealthCheck(ping Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if ping != nil {
			if err := ping(ctx); err != nil {
				logger.Warn(c.Request.Context()).Err(err).Msg("Health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":   "unhealthy",
					"database": "unreachable",
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": "ok",
		})
	}
}
