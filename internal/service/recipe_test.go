package service_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/recipebox/backend/internal/models"
	"github.com/recipebox/backend/internal/service"
	"github.com/recipebox/backend/internal/testhelpers"
	"github.com/recipebox/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRecipeTest(t *testing.T) (*gorm.DB, *service.RecipeService, *service.SocialService) {
	db := testhelpers.SetupTestDatabase(t)
	return db, service.NewRecipeService(db, nil), service.NewSocialService(db)
}

func validRecipeRequest(title string) *types.CreateRecipeRequest {
	return &types.CreateRecipeRequest{
		Title:       title,
		Description: "A tasty " + title,
		Image:       "https://example.com/cake.jpg",
		PrepTime:    10,
		CookTime:    30,
		Servings:    4,
		Calories:    350,
		Difficulty:  "Medium",
		Ingredients: []string{"flour", " ", "sugar"},
		Method:      []string{"mix", "bake"},
	}
}

func TestCreateRecipeAppearsInFeed(t *testing.T) {
	db, recipes, _ := setupRecipeTest(t)
	owner := testhelpers.CreateUser(t, db, "alice")
	ctx := context.Background()

	created, err := recipes.Create(ctx, owner.ID, owner.Username, validRecipeRequest("Chocolate Cake"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "medium", created.Difficulty)
	assert.Equal(t, models.StringList{"flour", "sugar"}, created.Ingredients)

	page, err := recipes.ListAll(ctx, types.FeedQuery{Page: 1, RequesterID: owner.ID})
	require.NoError(t, err)
	require.Len(t, page.Recipes, 1)

	got := page.Recipes[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Chocolate Cake", got.Title)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, models.StringList{"mix", "bake"}, got.Method)
	assert.Zero(t, got.LikesCount)
	assert.Zero(t, got.CommentsCount)
	assert.Nil(t, got.AvgRating)
	assert.False(t, got.UserLiked)
	assert.Equal(t, types.DefaultPageLimit, page.Limit)
	assert.False(t, page.HasMore)
}

func TestCreateRecipeValidation(t *testing.T) {
	db, recipes, _ := setupRecipeTest(t)
	owner := testhelpers.CreateUser(t, db, "alice")

	tests := []struct {
		name   string
		mutate func(*types.CreateRecipeRequest)
	}{
		{"blank title", func(r *types.CreateRecipeRequest) { r.Title = "  " }},
		{"blank description", func(r *types.CreateRecipeRequest) { r.Description = "" }},
		{"no ingredients", func(r *types.CreateRecipeRequest) { r.Ingredients = nil }},
		{"only blank method steps", func(r *types.CreateRecipeRequest) { r.Method = []string{"", " "} }},
		{"unknown difficulty", func(r *types.CreateRecipeRequest) { r.Difficulty = "extreme" }},
		{"negative servings", func(r *types.CreateRecipeRequest) { r.Servings = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRecipeRequest("Soup")
			tt.mutate(req)

			_, err := recipes.Create(context.Background(), owner.ID, owner.Username, req)
			var verr *types.ValidationError
			assert.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListAllPagination(t *testing.T) {
	db, recipes, _ := setupRecipeTest(t)
	owner := testhelpers.CreateUser(t, db, "alice")
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		testhelpers.CreateRecipe(t, db, owner, fmt.Sprintf("Recipe %d", i), testhelpers.WithCreatedAt(base.Add(time.Duration(i)*time.Minute)))
	}
	ctx := context.Background()

	first, err := recipes.ListAll(ctx, types.FeedQuery{Page: 1, Limit: 9, RequesterID: owner.ID})
	require.NoError(t, err)
	assert.Len(t, first.Recipes, 9)
	assert.True(t, first.HasMore)
	assert.Equal(t, int64(10), first.Total)
	assert.Equal(t, "Recipe 9", first.Recipes[0].Title)

	second, err := recipes.ListAll(ctx, types.FeedQuery{Page: 2, Limit: 9, RequesterID: owner.ID})
	require.NoError(t, err)
	require.Len(t, second.Recipes, 1)
	assert.False(t, second.HasMore)
	assert.Equal(t, "Recipe 0", second.Recipes[0].Title)
}

func TestListAllNormalizesPaging(t *testing.T) {
	db, recipes, _ := setupRecipeTest(t)
	owner := testhelpers.CreateUser(t, db, "alice")
	testhelpers.CreateRecipe(t, db, owner, "Only")

	page, err := recipes.ListAll(context.Background(), types.FeedQuery{Page: -3, Limit: 500, RequesterID: owner.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, types.MaxPageLimit, page.Limit)
	assert.Len(t, page.Recipes, 1)

	testhelpers.CreateRecipe(t, db, owner, "Second")
	testhelpers.CreateRecipe(t, db, owner, "Third")
	page, err = recipes.ListAll(context.Background(), types.FeedQuery{Page: math.MaxInt/9 + 2, Limit: 9, RequesterID: owner.ID})
	require.NoError(t, err)
	assert.Empty(t, page.Recipes)
	assert.False(t, page.HasMore)
	assert.Equal(t, int64(3), page.Total)
}

func TestListAllSearch(t *testing.T) {
	db, recipes, _ := setupRecipeTest(t)
	owner := testhelpers.CreateUser(t, db, "alice")
	testhelpers.CreateRecipe(t, db, owner, "Chocolate Cake")
	testhelpers.CreateRecipe(t, db, owner, "Banana Bread")
	testhelpers.CreateRecipe(t, db, owner, "Plain Muffins", testhelpers.WithDescription("100% wholemeal"))
	ctx := context.Background()

	page, err := recipes.ListAll(ctx, types.FeedQuery{Search: "choc", RequesterID: owner.ID})
	require.NoError(t, err)
	require.Len(t, page.Recipes, 1)
	assert.Equal(t, "Chocolate Cake", page.Recipes[0].Title)
	assert.Equal(t, int64(1), page.Total)

	page, err = recipes.ListAll(ctx, types.FeedQuery{Search: "BANANA BREAD DESC", RequesterID: owner.ID})
	require.NoError(t, err)
	require.Len(t, page.Recipes, 1)
	assert.Equal(t, "Banana Bread", page.Recipes[0].Title)

	// LIKE wildcards in the term are matched literally
	page, err = recipes.ListAll(ctx, types.FeedQuery{Search: "100%", RequesterID: owner.ID})
	require.NoError(t, err)
	require.Len(t, page.Recipes, 1)
	assert.Equal(t, "Plain Muffins", page.Recipes[0].Title)

	page, err = recipes.ListAll(ctx, types.FeedQuery{Search: "%", RequesterID: owner.ID})
	require.NoError(t, err)
	assert.Len(t, page.Recipes, 1)
}

func TestListAllFiltersCombine(t *testing.T) {
	db, recipes, social := setupRecipeTest(t)
	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")
	easyCake := testhelpers.CreateRecipe(t, db, alice, "Easy Cake", testhelpers.WithDifficulty("easy"))
	testhelpers.CreateRecipe(t, db, alice, "Hard Cake", testhelpers.WithDifficulty("hard"))
	easyBread := testhelpers.CreateRecipe(t, db, alice, "Easy Bread", testhelpers.WithDifficulty("easy"))
	ctx := context.Background()

	page, err := recipes.ListAll(ctx, types.FeedQuery{Difficulty: "Easy", RequesterID: bob.ID})
	require.NoError(t, err)
	assert.Len(t, page.Recipes, 2)
	assert.Equal(t, int64(2), page.Total)

	page, err = recipes.ListAll(ctx, types.FeedQuery{Difficulty: "all", RequesterID: bob.ID})
	require.NoError(t, err)
	assert.Len(t, page.Recipes, 3)

	for _, id := range []uint{easyCake.ID, easyBread.ID} {
		liked, err := social.ToggleLike(ctx, id, bob.ID)
		require.NoError(t, err)
		require.True(t, liked)
	}

	page, err = recipes.ListAll(ctx, types.FeedQuery{LikedOnly: true, Difficulty: "easy", Search: "cake", RequesterID: bob.ID})
	require.NoError(t, err)
	require.Len(t, page.Recipes, 1)
	assert.Equal(t, easyCake.ID, page.Recipes[0].ID)
	assert.True(t, page.Recipes[0].UserLiked)
	assert.Equal(t, int64(1), page.Recipes[0].LikesCount)
	assert.Equal(t, int64(1), page.Total)

	page, err = recipes.ListAll(ctx, types.FeedQuery{LikedOnly: true, RequesterID: alice.ID})
	require.NoError(t, err)
	assert.Empty(t, page.Recipes)
	assert.Zero(t, page.Total)
}

func TestDerivedAggregates(t *testing.T) {
	db, recipes, social := setupRecipeTest(t)
	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")
	recipe := testhelpers.CreateRecipe(t, db, alice, "Stew")
	ctx := context.Background()

	_, err := social.Rate(ctx, recipe.ID, alice.ID, 4)
	require.NoError(t, err)
	_, err = social.Rate(ctx, recipe.ID, bob.ID, 5)
	require.NoError(t, err)
	_, err = social.AddComment(ctx, recipe.ID, bob.ID, bob.Username, "lovely")
	require.NoError(t, err)
	_, err = social.ToggleLike(ctx, recipe.ID, bob.ID)
	require.NoError(t, err)

	mine, err := recipes.ListMine(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(1), mine[0].LikesCount)
	assert.Equal(t, int64(1), mine[0].CommentsCount)
	require.NotNil(t, mine[0].AvgRating)
	assert.InDelta(t, 4.5, *mine[0].AvgRating, 0.001)
	assert.False(t, mine[0].UserLiked)
}

func TestListMineOnlyOwnRecipes(t *testing.T) {
	db, recipes, _ := setupRecipeTest(t)
	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	testhelpers.CreateRecipe(t, db, alice, "Older", testhelpers.WithCreatedAt(base))
	testhelpers.CreateRecipe(t, db, alice, "Newer", testhelpers.WithCreatedAt(base.Add(time.Hour)))
	testhelpers.CreateRecipe(t, db, bob, "Bob's")

	mine, err := recipes.ListMine(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "Newer", mine[0].Title)
	assert.Equal(t, "Older", mine[1].Title)

	none, err := recipes.ListMine(context.Background(), 999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGetByID(t *testing.T) {
	db, recipes, social := setupRecipeTest(t)
	alice := testhelpers.CreateUser(t, db, "alice")
	recipe := testhelpers.CreateRecipe(t, db, alice, "Pie")
	ctx := context.Background()

	first, err := social.AddComment(ctx, recipe.ID, alice.ID, alice.Username, "first")
	require.NoError(t, err)
	second, err := social.AddComment(ctx, recipe.ID, alice.ID, alice.Username, "second")
	require.NoError(t, err)

	detail, err := recipes.GetByID(ctx, recipe.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pie", detail.Title)
	assert.Equal(t, int64(2), detail.CommentsCount)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, second.ID, detail.Comments[0].ID)
	assert.Equal(t, first.ID, detail.Comments[1].ID)

	_, err = recipes.GetByID(ctx, 12345, alice.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestDeleteRecipe(t *testing.T) {
	db, recipes, social := setupRecipeTest(t)
	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")
	recipe := testhelpers.CreateRecipe(t, db, alice, "Tart")
	ctx := context.Background()

	_, err := social.ToggleLike(ctx, recipe.ID, bob.ID)
	require.NoError(t, err)
	_, err = social.AddComment(ctx, recipe.ID, bob.ID, bob.Username, "yum")
	require.NoError(t, err)
	_, err = social.Rate(ctx, recipe.ID, bob.ID, 3)
	require.NoError(t, err)

	// Someone else's recipe looks missing and is left alone
	err = recipes.Delete(ctx, recipe.ID, bob.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	mine, err := recipes.ListMine(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, recipes.Delete(ctx, recipe.ID, alice.ID))

	_, err = recipes.GetByID(ctx, recipe.ID, alice.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	for _, model := range []interface{}{&models.Comment{}, &models.Like{}, &models.Rating{}} {
		var count int64
		require.NoError(t, db.Model(model).Where("recipe_id = ?", recipe.ID).Count(&count).Error)
		assert.Zero(t, count, "%T rows left behind", model)
	}

	err = recipes.Delete(ctx, recipe.ID, alice.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

type fakeImages struct {
	calls int
	err   error
}

func (f *fakeImages) Resolve(ctx context.Context, image string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example.com/stored.png", nil
}

func TestCreateRecipeResolvesImage(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	owner := testhelpers.CreateUser(t, db, "alice")
	images := &fakeImages{}
	recipes := service.NewRecipeService(db, images)

	created, err := recipes.Create(context.Background(), owner.ID, owner.Username, validRecipeRequest("Toast"))
	require.NoError(t, err)
	assert.Equal(t, 1, images.calls)
	assert.Equal(t, "https://cdn.example.com/stored.png", created.Image)

	images.err = types.NewValidationError("image", "bad image")
	_, err = recipes.Create(context.Background(), owner.ID, owner.Username, validRecipeRequest("Jam"))
	var verr *types.ValidationError
	assert.True(t, errors.As(err, &verr))
}
