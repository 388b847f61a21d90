package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/recipebox/backend/config"
	"github.com/recipebox/backend/internal/api"
	"github.com/recipebox/backend/internal/database"
	"github.com/recipebox/backend/internal/logger"
	"github.com/recipebox/backend/internal/middleware"
	"github.com/recipebox/backend/internal/router"
	"github.com/recipebox/backend/internal/server"
	"github.com/recipebox/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init("recipebox-api", cfg.LogLevel, cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := database.RunMigrations(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	var limits api.Limiters
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		// Continue without write limits if Redis is not available
		logger.Logger.Warn().Err(err).Msg("Redis unavailable, write rate limits disabled")
	} else if redisClient != nil {
		defer redisClient.Close()
		limits.RecipeCreation = middleware.NewRecipeCreationRateLimiter(redisClient)
		limits.Comment = middleware.NewCommentRateLimiter(redisClient)
	}

	var store service.ImageStore
	s3Config, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to configure image storage")
	}
	if s3Config != nil {
		store = s3Config
		logger.Logger.Info().Str("bucket", s3Config.BucketName).Msg("Uploading recipe images to S3")
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db, service.NewImageService(store))
	socialService := service.NewSocialService(db)
	profileService := service.NewProfileService(db, recipeService)

	engine := router.SetupRouter(cfg, router.Dependencies{
		DB: db,
		Services: api.Services{
			Auth:    authService,
			Recipes: recipeService,
			Social:  socialService,
			Profile: profileService,
		},
		Limiters: limits,
		Metrics:  middleware.NewMetrics(),
	})

	if err := server.New(cfg.Addr(), engine).Run(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Server error")
	}
	logger.Logger.Info().Msg("Server stopped")
}
