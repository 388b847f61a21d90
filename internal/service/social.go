package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/recipebox/backend/internal/models"
	"github.com/recipebox/backend/internal/types"
	"gorm.io/gorm"
)

// SocialService handles likes, comments and ratings on recipes
type SocialService struct {
	db *gorm.DB
}

// NewSocialService creates a new SocialService instance
func NewSocialService(db *gorm.DB) *SocialService {
	return &SocialService{db: db}
}

func (s *SocialService) requireRecipe(ctx context.Context, recipeID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check recipe: %w", err)
	}
	if count == 0 {
		return types.NotFound("Recipe not found.")
	}
	return nil
}

// ToggleLike flips the like of userID on a recipe and returns the new state.
// Two simultaneous toggles by the same user are only kept apart by the unique
// (recipe_id, user_id) index; the losing insert surfaces as an error.
func (s *SocialService) ToggleLike(ctx context.Context, recipeID, userID uint) (bool, error) {
	if err := s.requireRecipe(ctx, recipeID); err != nil {
		return false, err
	}

	db := s.db.WithContext(ctx)

	var like models.Like
	err := db.Where("recipe_id = ? AND user_id = ?", recipeID, userID).First(&like).Error
	switch {
	case err == nil:
		if err := db.Delete(&like).Error; err != nil {
			return false, fmt.Errorf("failed to remove like: %w", err)
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := db.Create(&models.Like{RecipeID: recipeID, UserID: userID}).Error; err != nil {
			return false, fmt.Errorf("failed to add like: %w", err)
		}
		return true, nil
	default:
		return false, fmt.Errorf("failed to check like status: %w", err)
	}
}

// AddComment appends a comment to a recipe and returns the stored row
func (s *SocialService) AddComment(ctx context.Context, recipeID, userID uint, username, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, types.NewValidationError("text", "Comment text is required.")
	}
	if err := s.requireRecipe(ctx, recipeID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		RecipeID: recipeID,
		UserID:   userID,
		Username: username,
		Text:     text,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	return &comment, nil
}

// Rate stores a 1-5 rating, replacing an earlier rating by the same user
func (s *SocialService) Rate(ctx context.Context, recipeID, userID uint, rating int) (*types.RateResult, error) {
	if rating < 1 || rating > 5 {
		return nil, types.NewValidationError("rating", "Rating must be between 1 and 5.")
	}
	if err := s.requireRecipe(ctx, recipeID); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var existing models.Rating
	err := db.Where("recipe_id = ? AND user_id = ?", recipeID, userID).First(&existing).Error
	switch {
	case err == nil:
		existing.Rating = rating
		if err := db.Model(&existing).Update("rating", rating).Error; err != nil {
			return nil, fmt.Errorf("failed to update rating: %w", err)
		}
		return &types.RateResult{Rating: existing, Updated: true}, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		row := models.Rating{RecipeID: recipeID, UserID: userID, Rating: rating}
		if err := db.Create(&row).Error; err != nil {
			return nil, fmt.Errorf("failed to add rating: %w", err)
		}
		return &types.RateResult{Rating: row}, nil
	default:
		return nil, fmt.Errorf("failed to check rating status: %w", err)
	}
}
