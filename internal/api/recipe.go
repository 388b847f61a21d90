package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/backend/internal/middleware"
	"github.com/recipebox/backend/internal/service"
	"github.com/recipebox/backend/internal/types"
)

type RecipeHandler struct {
	recipeService service.IRecipeService
}

func NewRecipeHandler(recipeService service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// ListMine returns the recipes written by the caller
func (h *RecipeHandler) ListMine(c *gin.Context) {
	userID, _, ok := requireUser(c)
	if !ok {
		return
	}

	recipes, err := h.recipeService.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// ListAll returns one page of the shared feed
func (h *RecipeHandler) ListAll(c *gin.Context) {
	userID, _, ok := requireUser(c)
	if !ok {
		return
	}

	query := types.FeedQuery{
		Page:        queryInt(c, "page"),
		Limit:       queryInt(c, "limit"),
		Difficulty:  c.Query("difficulty"),
		Search:      c.Query("search"),
		LikedOnly:   c.Query("liked") == "true",
		RequesterID: userID,
	}

	page, err := h.recipeService.ListAll(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *RecipeHandler) GetByID(c *gin.Context) {
	userID, _, ok := requireUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetByID(c.Request.Context(), recipeID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Create(c *gin.Context) {
	userID, username, ok := requireUser(c)
	if !ok {
		return
	}

	var req types.CreateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), userID, username, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Recipe created successfully.",
		"recipeId": recipe.ID,
	})
}

// Delete removes a recipe owned by the caller
func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, _, ok := requireUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), recipeID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully."})
}

// requireUser reads the identity set by the auth middleware
func requireUser(c *gin.Context) (uint, string, bool) {
	userID, username, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, types.ErrUnauthenticated)
		return 0, "", false
	}
	return userID, username, true
}

// pathID parses the :id route parameter
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		abort(c, http.StatusBadRequest, "Invalid recipe id.")
		return 0, false
	}
	return uint(id), true
}

// queryInt returns the integer value of a query parameter, or 0 when it is
// absent or malformed so that paging falls back to its defaults
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

func isNotFound(err error) bool {
	return errors.Is(err, types.ErrNotFound)
}
