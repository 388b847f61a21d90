package main

import (
	"context"
	"errors"
	"flag"

	"github.com/recipebox/backend/config"
	"github.com/recipebox/backend/internal/database"
	"github.com/recipebox/backend/internal/logger"
	"github.com/recipebox/backend/internal/service"
	"github.com/recipebox/backend/internal/types"
)

var demoRecipes = []types.CreateRecipeRequest{
	{
		Title:       "Classic Pancakes",
		Description: "Fluffy weekend pancakes.",
		PrepTime:    10,
		CookTime:    15,
		Servings:    4,
		Calories:    350,
		Difficulty:  "easy",
		Ingredients: []string{"200g flour", "2 eggs", "300ml milk", "1 tbsp sugar", "1 tsp baking powder"},
		Method:      []string{"Whisk the dry ingredients.", "Beat in the eggs and milk.", "Fry ladlefuls in a hot pan until golden."},
	},
	{
		Title:       "Tomato Basil Soup",
		Description: "A bright soup for cold evenings.",
		PrepTime:    15,
		CookTime:    30,
		Servings:    4,
		Calories:    220,
		Difficulty:  "easy",
		Ingredients: []string{"1kg tomatoes", "1 onion", "2 garlic cloves", "500ml stock", "Fresh basil"},
		Method:      []string{"Soften the onion and garlic.", "Add tomatoes and stock and simmer.", "Blend with the basil."},
	},
	{
		Title:       "Chicken Tikka Masala",
		Description: "Marinated chicken in a creamy spiced sauce.",
		PrepTime:    30,
		CookTime:    40,
		Servings:    4,
		Calories:    560,
		Difficulty:  "medium",
		Ingredients: []string{"600g chicken thighs", "200g yogurt", "2 tbsp garam masala", "400g chopped tomatoes", "150ml cream"},
		Method:      []string{"Marinate the chicken in yogurt and spices.", "Grill until charred.", "Simmer in the tomato sauce and finish with cream."},
	},
	{
		Title:       "Beef Wellington",
		Description: "Fillet wrapped in mushroom duxelles and puff pastry.",
		PrepTime:    60,
		CookTime:    45,
		Servings:    6,
		Calories:    780,
		Difficulty:  "hard",
		Ingredients: []string{"1kg beef fillet", "500g mushrooms", "8 slices prosciutto", "500g puff pastry", "1 egg"},
		Method:      []string{"Sear the fillet.", "Wrap in duxelles and prosciutto.", "Encase in pastry, glaze and bake."},
	},
	{
		Title:       "Chocolate Mousse",
		Description: "Rich and airy chocolate dessert.",
		PrepTime:    20,
		Servings:    6,
		Calories:    410,
		Difficulty:  "medium",
		Ingredients: []string{"200g dark chocolate", "4 eggs", "2 tbsp sugar", "200ml cream"},
		Method:      []string{"Melt the chocolate.", "Fold in whipped cream and egg whites.", "Chill for four hours."},
	},
}

func main() {
	username := flag.String("user", "demo", "Username that owns the seeded recipes")
	password := flag.String("password", "DemoPass1", "Password for a newly created demo user")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init("recipebox-seed", cfg.LogLevel, cfg.IsDevelopment())

	db, err := database.New(cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := database.RunMigrations(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	ctx := context.Background()
	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db, nil)

	user, err := authService.Register(ctx, *username, *password, nil, nil)
	if errors.Is(err, types.ErrDuplicateUsername) {
		user, err = authService.Login(ctx, *username, *password)
	}
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("username", *username).Msg("Failed to prepare demo user")
	}

	for i := range demoRecipes {
		recipe, err := recipeService.Create(ctx, user.ID, user.Username, &demoRecipes[i])
		if err != nil {
			logger.Logger.Error().Err(err).Str("title", demoRecipes[i].Title).Msg("Failed to seed recipe")
			continue
		}
		logger.Logger.Info().Uint("recipe_id", recipe.ID).Str("title", recipe.Title).Msg("Seeded recipe")
	}
}
