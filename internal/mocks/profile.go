package mocks

import (
	"context"

	"github.com/recipebox/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockProfileService is a mock implementation of the profile service
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) ProfileRecipes(ctx context.Context, username string, requesterID uint) (*types.ProfileRecipes, error) {
	args := m.Called(ctx, username, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ProfileRecipes), args.Error(1)
}

func (m *MockProfileService) ActivityCounts(ctx context.Context, userID uint) (*types.ActivityCounts, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ActivityCounts), args.Error(1)
}
