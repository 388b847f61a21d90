package models

import (
	"time"
)

// User is an account that can publish, like, comment on and rate recipes
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FirstName    *string   `gorm:"size:100" json:"firstName,omitempty"`
	LastName     *string   `gorm:"size:100" json:"lastName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`

	Recipes  []Recipe  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Likes    []Like    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Ratings  []Rating  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
