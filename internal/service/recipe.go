package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/recipebox/backend/internal/logger"
	"github.com/recipebox/backend/internal/models"
	"github.com/recipebox/backend/internal/types"
	"gorm.io/gorm"
)

// summaryColumns selects a recipe together with its derived aggregates.
// The single placeholder is the requesting user's id.
const summaryColumns = `r.*,
	(SELECT COUNT(*) FROM likes WHERE likes.recipe_id = r.id) AS likes_count,
	(SELECT COUNT(*) FROM comments WHERE comments.recipe_id = r.id) AS comments_count,
	(SELECT AVG(CAST(ratings.rating AS REAL)) FROM ratings WHERE ratings.recipe_id = r.id) AS avg_rating,
	EXISTS (SELECT 1 FROM likes WHERE likes.recipe_id = r.id AND likes.user_id = ?) AS user_liked`

const newestFirst = "r.created_at DESC, r.id DESC"

var difficulties = map[string]bool{
	models.DifficultyEasy:   true,
	models.DifficultyMedium: true,
	models.DifficultyHard:   true,
}

// RecipeService handles recipe operations
type RecipeService struct {
	db     *gorm.DB
	images IImageService
}

// NewRecipeService creates a new RecipeService instance. images may be nil,
// in which case submitted images are stored as given.
func NewRecipeService(db *gorm.DB, images IImageService) *RecipeService {
	return &RecipeService{
		db:     db,
		images: images,
	}
}

func (s *RecipeService) summaries(ctx context.Context, requesterID uint) *gorm.DB {
	return s.db.WithContext(ctx).Table("recipes AS r").Select(summaryColumns, requesterID)
}

// ListAll returns one page of the feed, newest first
func (s *RecipeService) ListAll(ctx context.Context, query types.FeedQuery) (*types.FeedPage, error) {
	query.Normalize()
	filters := feedFilters(query)

	var total int64
	if err := s.db.WithContext(ctx).Table("recipes AS r").Scopes(filters).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count recipes: %w", err)
	}

	recipes := make([]types.RecipeSummary, 0, query.Limit)
	err := s.summaries(ctx, query.RequesterID).
		Scopes(filters).
		Order(newestFirst).
		Limit(query.Limit).
		Offset(query.Offset()).
		Scan(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipes: %w", err)
	}

	return &types.FeedPage{
		Recipes: recipes,
		Page:    query.Page,
		Limit:   query.Limit,
		Total:   total,
		HasMore: int64(query.Offset()+len(recipes)) < total,
	}, nil
}

// feedFilters applies the optional feed filters
func feedFilters(query types.FeedQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if query.LikedOnly {
			db = db.Where("r.id IN (SELECT recipe_id FROM likes WHERE user_id = ?)", query.RequesterID)
		}
		if difficulty := strings.ToLower(strings.TrimSpace(query.Difficulty)); difficulty != "" && difficulty != "all" {
			db = db.Where("LOWER(r.difficulty) = ?", difficulty)
		}
		if search := strings.TrimSpace(query.Search); search != "" {
			like := "%" + escapeLike(strings.ToLower(search)) + "%"
			db = db.Where(`(LOWER(r.title) LIKE ? ESCAPE '\' OR LOWER(r.description) LIKE ? ESCAPE '\')`, like, like)
		}
		return db
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in a search term match literally
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// ListMine returns every recipe owned by requesterID, newest first
func (s *RecipeService) ListMine(ctx context.Context, requesterID uint) ([]types.RecipeSummary, error) {
	return s.listByOwner(ctx, requesterID, requesterID)
}

func (s *RecipeService) listByOwner(ctx context.Context, ownerID, requesterID uint) ([]types.RecipeSummary, error) {
	recipes := make([]types.RecipeSummary, 0)
	err := s.summaries(ctx, requesterID).
		Where("r.user_id = ?", ownerID).
		Order(newestFirst).
		Scan(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipes: %w", err)
	}
	return recipes, nil
}

// GetByID returns a recipe with its comments, newest first
func (s *RecipeService) GetByID(ctx context.Context, id, requesterID uint) (*types.RecipeDetail, error) {
	var rows []types.RecipeSummary
	if err := s.summaries(ctx, requesterID).Where("r.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recipe: %w", err)
	}
	if len(rows) == 0 {
		return nil, types.NotFound("Recipe not found.")
	}

	comments := make([]models.Comment, 0)
	err := s.db.WithContext(ctx).
		Where("recipe_id = ?", id).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}

	return &types.RecipeDetail{
		RecipeSummary: rows[0],
		Comments:      comments,
	}, nil
}

// Create validates and stores a new recipe owned by userID
func (s *RecipeService) Create(ctx context.Context, userID uint, username string, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	recipe, err := newRecipe(userID, username, req)
	if err != nil {
		return nil, err
	}

	if s.images != nil && recipe.Image != "" {
		image, err := s.images.Resolve(ctx, recipe.Image)
		if err != nil {
			return nil, err
		}
		recipe.Image = image
	}

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	logger.Info(ctx).Uint("recipe_id", recipe.ID).Uint("user_id", userID).Msg("Recipe created")
	return recipe, nil
}

// newRecipe checks a create request and builds the row to insert
func newRecipe(userID uint, username string, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	ingredients := compact(req.Ingredients)
	method := compact(req.Method)

	if title == "" || description == "" || len(ingredients) == 0 || len(method) == 0 {
		return nil, types.NewValidationError("", "Title, description, ingredients, and method are required.")
	}

	difficulty := strings.ToLower(strings.TrimSpace(req.Difficulty))
	if difficulty != "" && !difficulties[difficulty] {
		return nil, types.NewValidationError("difficulty", "Difficulty must be one of easy, medium or hard.")
	}

	if req.PrepTime < 0 || req.CookTime < 0 || req.Servings < 0 || req.Calories < 0 {
		return nil, types.NewValidationError("", "Times, servings and calories must not be negative.")
	}

	return &models.Recipe{
		UserID:      userID,
		Username:    username,
		Title:       title,
		Description: description,
		Image:       strings.TrimSpace(req.Image),
		PrepTime:    req.PrepTime,
		CookTime:    req.CookTime,
		Servings:    req.Servings,
		Calories:    req.Calories,
		Difficulty:  difficulty,
		Ingredients: ingredients,
		Method:      method,
	}, nil
}

// compact trims entries and drops blank ones
func compact(items []string) models.StringList {
	out := make(models.StringList, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Delete removes a recipe owned by requesterID along with its comments, likes
// and ratings. Recipes owned by someone else are reported as not found.
func (s *RecipeService) Delete(ctx context.Context, id, requesterID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("id = ? AND user_id = ?", id, requesterID).First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("Recipe not found or you don't have permission to delete it.")
			}
			return fmt.Errorf("failed to check recipe: %w", err)
		}

		for _, child := range []interface{}{&models.Comment{}, &models.Like{}, &models.Rating{}} {
			if err := tx.Where("recipe_id = ?", id).Delete(child).Error; err != nil {
				return fmt.Errorf("failed to delete recipe children: %w", err)
			}
		}

		if err := tx.Delete(&recipe).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx).Uint("recipe_id", id).Uint("user_id", requesterID).Msg("Recipe deleted")
	return nil
}
