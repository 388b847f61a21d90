package models

import "time"

// Comment is a note left by a user on a recipe
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RecipeID  uint      `gorm:"not null;index" json:"recipeId"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Username  string    `gorm:"size:50;not null" json:"username"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	Recipe *Recipe `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Like marks that a user liked a recipe. The row's presence is the state.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_likes_recipe_user" json:"recipeId"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_recipe_user;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	Recipe *Recipe `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Rating is a user's 1-5 score for a recipe, at most one per user and recipe
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_ratings_recipe_user" json:"recipeId"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_ratings_recipe_user" json:"userId"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Recipe *Recipe `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// All returns every model in migration order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Recipe{},
		&Comment{},
		&Like{},
		&Rating{},
	}
}
