package types

import (
	"math"

	"github.com/recipebox/backend/internal/models"
)

// Feed paging defaults
const (
	DefaultPageLimit = 9
	MaxPageLimit     = 50
)

// RecipeSummary is a recipe annotated with its derived aggregates
type RecipeSummary struct {
	models.Recipe
	LikesCount    int64    `json:"likesCount"`
	CommentsCount int64    `json:"commentsCount"`
	AvgRating     *float64 `json:"avgRating"`
	UserLiked     bool     `json:"userLiked"`
}

// RecipeDetail is a single recipe with its comments, newest first
type RecipeDetail struct {
	RecipeSummary
	Comments []models.Comment `json:"comments"`
}

// FeedQuery selects a page of the shared recipe feed. Filters combine with AND.
type FeedQuery struct {
	Page        int
	Limit       int
	Difficulty  string
	Search      string
	LikedOnly   bool
	RequesterID uint
}

// Normalize clamps paging values into their accepted ranges
func (q *FeedQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	// Keep Offset plus a full page within int range
	if maxPage := (math.MaxInt - MaxPageLimit) / q.Limit; q.Page > maxPage {
		q.Page = maxPage
	}
}

// Offset returns the number of rows skipped before this page
func (q FeedQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// FeedPage is one page of the feed
type FeedPage struct {
	Recipes []RecipeSummary `json:"recipes"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
	Total   int64           `json:"total"`
	HasMore bool            `json:"hasMore"`
}

// RateResult reports the stored rating and whether an earlier one was replaced
type RateResult struct {
	Rating  models.Rating `json:"rating"`
	Updated bool          `json:"updated"`
}
