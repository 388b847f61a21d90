package types

import "time"

// PublicUser is the part of a user that is safe to return to clients
type PublicUser struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	FirstName *string    `json:"firstName,omitempty"`
	LastName  *string    `json:"lastName,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// ActivityCounts summarises what a user has done on the site
type ActivityCounts struct {
	RecipesCount  int64 `json:"recipesCount"`
	CommentsCount int64 `json:"commentsCount"`
	LikesCount    int64 `json:"likesCount"`
}

// ProfileRecipes is the public recipe list of a user
type ProfileRecipes struct {
	Username string          `json:"username"`
	Recipes  []RecipeSummary `json:"recipes"`
}
