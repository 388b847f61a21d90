package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/recipebox/backend/internal/models"
	"github.com/recipebox/backend/internal/types"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ProfileService handles public profile and activity queries
type ProfileService struct {
	db      *gorm.DB
	recipes *RecipeService
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB, recipes *RecipeService) *ProfileService {
	return &ProfileService{
		db:      db,
		recipes: recipes,
	}
}

// ProfileRecipes returns every recipe published by username, newest first
func (s *ProfileService) ProfileRecipes(ctx context.Context, username string, requesterID uint) (*types.ProfileRecipes, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("User not found.")
		}
		return nil, fmt.Errorf("failed to check user: %w", err)
	}

	recipes, err := s.recipes.listByOwner(ctx, user.ID, requesterID)
	if err != nil {
		return nil, err
	}

	return &types.ProfileRecipes{
		Username: user.Username,
		Recipes:  recipes,
	}, nil
}

// ActivityCounts counts recipes authored, comments written and likes given by
// userID. The three counts run concurrently and are joined before returning.
func (s *ProfileService) ActivityCounts(ctx context.Context, userID uint) (*types.ActivityCounts, error) {
	var counts types.ActivityCounts

	g, gctx := errgroup.WithContext(ctx)
	count := func(model interface{}, dest *int64) func() error {
		return func() error {
			return s.db.WithContext(gctx).Model(model).Where("user_id = ?", userID).Count(dest).Error
		}
	}
	g.Go(count(&models.Recipe{}, &counts.RecipesCount))
	g.Go(count(&models.Comment{}, &counts.CommentsCount))
	g.Go(count(&models.Like{}, &counts.LikesCount))

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch user activity: %w", err)
	}
	return &counts, nil
}
