package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is an ordered list of strings stored as a JSON array in a text column
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	if len(bytes) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(bytes, (*[]string)(l))
}

// Difficulty levels accepted for recipes
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Recipe is a published recipe. Likes, comments and ratings are removed with it.
// Counts and averages are computed at query time and never stored here.
type Recipe struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"userId"`
	Username    string     `gorm:"size:50;not null;index" json:"username"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Image       string     `gorm:"type:text" json:"image"`
	PrepTime    int        `json:"prepTime"`
	CookTime    int        `json:"cookTime"`
	Servings    int        `json:"servings"`
	Calories    int        `json:"calories"`
	Difficulty  string     `gorm:"size:20;index" json:"difficulty"`
	Ingredients StringList `gorm:"type:text;not null" json:"ingredients"`
	Method      StringList `gorm:"type:text;not null" json:"method"`
	CreatedAt   time.Time  `gorm:"index" json:"createdAt"`
}
