package types

// SignupRequest is the body of POST /signup
type SignupRequest struct {
	Username  string  `json:"username" binding:"required,max=50"`
	Password  string  `json:"password" binding:"required,password"`
	FirstName *string `json:"firstName" binding:"omitempty,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,max=100"`
}

// SigninRequest is the body of POST /signin
type SigninRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateRecipeRequest represents the request body for creating a recipe.
// Image is either a URL or a base64 data URL produced by the browser.
type CreateRecipeRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Image       string   `json:"image"`
	PrepTime    int      `json:"prepTime" binding:"min=0"`
	CookTime    int      `json:"cookTime" binding:"min=0"`
	Servings    int      `json:"servings" binding:"min=0"`
	Calories    int      `json:"calories" binding:"min=0"`
	Difficulty  string   `json:"difficulty"`
	Ingredients []string `json:"ingredients" binding:"required,min=1"`
	Method      []string `json:"method" binding:"required,min=1"`
}

// CommentRequest is the body of POST /recipes/:id/comment
type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// RateRequest is the body of POST /recipes/:id/rate
type RateRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}
