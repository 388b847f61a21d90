package service

import (
	"context"

	"github.com/recipebox/backend/internal/models"
	"github.com/recipebox/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, username, password string, firstName, lastName *string) (*types.PublicUser, error)
	Login(ctx context.Context, username, password string) (*types.PublicUser, error)
	GenerateToken(user *types.PublicUser) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IRecipeService defines the interface for recipe and feed operations
type IRecipeService interface {
	ListAll(ctx context.Context, query types.FeedQuery) (*types.FeedPage, error)
	ListMine(ctx context.Context, requesterID uint) ([]types.RecipeSummary, error)
	GetByID(ctx context.Context, id, requesterID uint) (*types.RecipeDetail, error)
	Create(ctx context.Context, userID uint, username string, req *types.CreateRecipeRequest) (*models.Recipe, error)
	Delete(ctx context.Context, id, requesterID uint) error
}

// ISocialService defines the interface for likes, comments and ratings
type ISocialService interface {
	ToggleLike(ctx context.Context, recipeID, userID uint) (bool, error)
	AddComment(ctx context.Context, recipeID, userID uint, username, text string) (*models.Comment, error)
	Rate(ctx context.Context, recipeID, userID uint, rating int) (*types.RateResult, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	ProfileRecipes(ctx context.Context, username string, requesterID uint) (*types.ProfileRecipes, error)
	ActivityCounts(ctx context.Context, userID uint) (*types.ActivityCounts, error)
}

// IImageService turns a submitted recipe image into the value that is stored
type IImageService interface {
	Resolve(ctx context.Context, image string) (string, error)
}

// ImageStore persists image bytes and returns a public URL for them
type ImageStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}
