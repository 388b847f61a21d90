package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/backend/internal/service"
	"github.com/recipebox/backend/internal/types"
)

type SocialHandler struct {
	socialService service.ISocialService
}

func NewSocialHandler(socialService service.ISocialService) *SocialHandler {
	return &SocialHandler{socialService: socialService}
}

// Like toggles the caller's like on a recipe
func (h *SocialHandler) Like(c *gin.Context) {
	userID, _, ok := requireUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	liked, err := h.socialService.ToggleLike(c.Request.Context(), recipeID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if liked {
		c.JSON(http.StatusOK, gin.H{"message": "Recipe liked successfully.", "status": "liked", "liked": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Like removed successfully.", "status": "unliked", "liked": false})
}

func (h *SocialHandler) Comment(c *gin.Context) {
	userID, username, ok := requireUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	var req types.CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.socialService.AddComment(c.Request.Context(), recipeID, userID, username, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment added successfully.",
		"comment": comment,
	})
}

// Rate records or replaces the caller's rating
func (h *SocialHandler) Rate(c *gin.Context) {
	userID, _, ok := requireUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	var req types.RateRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.socialService.Rate(c.Request.Context(), recipeID, userID, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Recipe rated successfully."
	if result.Updated {
		message = "Rating updated successfully."
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"rating":  result.Rating,
	})
}
