package testhelpers

import (
	"testing"
	"time"

	"github.com/recipebox/backend/internal/models"
	"gorm.io/gorm"
)

// CreateUser inserts a user with a placeholder password hash
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username, PasswordHash: "not-a-real-hash"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

// RecipeOption customises a recipe created by CreateRecipe
type RecipeOption func(*models.Recipe)

// WithDescription sets the recipe description
func WithDescription(description string) RecipeOption {
	return func(r *models.Recipe) { r.Description = description }
}

// WithDifficulty sets the recipe difficulty
func WithDifficulty(difficulty string) RecipeOption {
	return func(r *models.Recipe) { r.Difficulty = difficulty }
}

// WithCreatedAt sets the creation time, for deterministic ordering
func WithCreatedAt(at time.Time) RecipeOption {
	return func(r *models.Recipe) { r.CreatedAt = at }
}

// CreateRecipe inserts a minimal valid recipe owned by owner
func CreateRecipe(t *testing.T, db *gorm.DB, owner *models.User, title string, opts ...RecipeOption) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		UserID:      owner.ID,
		Username:    owner.Username,
		Title:       title,
		Description: title + " description",
		Ingredients: models.StringList{"ingredient"},
		Method:      models.StringList{"step"},
	}
	for _, opt := range opts {
		opt(recipe)
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create recipe %s: %v", title, err)
	}
	return recipe
}
