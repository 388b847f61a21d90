package mocks

import (
	"context"

	"github.com/recipebox/backend/internal/models"
	"github.com/recipebox/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) ListAll(ctx context.Context, query types.FeedQuery) (*types.FeedPage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.FeedPage), args.Error(1)
}

func (m *MockRecipeService) ListMine(ctx context.Context, requesterID uint) ([]types.RecipeSummary, error) {
	args := m.Called(ctx, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeSummary), args.Error(1)
}

func (m *MockRecipeService) GetByID(ctx context.Context, id, requesterID uint) (*types.RecipeDetail, error) {
	args := m.Called(ctx, id, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeDetail), args.Error(1)
}

func (m *MockRecipeService) Create(ctx context.Context, userID uint, username string, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	args := m.Called(ctx, userID, username, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) Delete(ctx context.Context, id, requesterID uint) error {
	args := m.Called(ctx, id, requesterID)
	return args.Error(0)
}

// MockSocialService is a mock implementation of the social service
type MockSocialService struct {
	mock.Mock
}

func (m *MockSocialService) ToggleLike(ctx context.Context, recipeID, userID uint) (bool, error) {
	args := m.Called(ctx, recipeID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialService) AddComment(ctx context.Context, recipeID, userID uint, username, text string) (*models.Comment, error) {
	args := m.Called(ctx, recipeID, userID, username, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockSocialService) Rate(ctx context.Context, recipeID, userID uint, rating int) (*types.RateResult, error) {
	args := m.Called(ctx, recipeID, userID, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RateResult), args.Error(1)
}
