package testhelpers

import (
	"testing"

	"github.com/recipebox/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestDatabase(t *testing.T) {
	db := SetupTestDatabase(t)
	require.NotNil(t, db)

	user := &models.User{Username: "baker", PasswordHash: "hash"}
	require.NoError(t, db.Create(user).Error)
	assert.NotZero(t, user.ID)

	recipe := &models.Recipe{
		UserID:      user.ID,
		Username:    user.Username,
		Title:       "Scones",
		Description: "Plain scones",
		Ingredients: models.StringList{"flour", "butter"},
		Method:      models.StringList{"rub", "bake"},
	}
	require.NoError(t, db.Create(recipe).Error)

	var loaded models.Recipe
	require.NoError(t, db.First(&loaded, recipe.ID).Error)
	assert.Equal(t, models.StringList{"flour", "butter"}, loaded.Ingredients)
	assert.Equal(t, models.StringList{"rub", "bake"}, loaded.Method)
}

func TestSetupTestDatabaseIsolated(t *testing.T) {
	first := SetupTestDatabase(t)
	second := SetupTestDatabase(t)

	require.NoError(t, first.Create(&models.User{Username: "only-in-first", PasswordHash: "x"}).Error)

	var count int64
	require.NoError(t, second.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestForeignKeysEnforced(t *testing.T) {
	db := SetupTestDatabase(t)

	err := db.Create(&models.Comment{RecipeID: 999, UserID: 999, Username: "ghost", Text: "hi"}).Error
	assert.Error(t, err)
}
