package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/backend/internal/service"
)

type ProfileHandler struct {
	profileService service.IProfileService
}

func NewProfileHandler(profileService service.IProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Activity returns the caller's activity counts
func (h *ProfileHandler) Activity(c *gin.Context) {
	userID, _, ok := requireUser(c)
	if !ok {
		return
	}

	counts, err := h.profileService.ActivityCounts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *ProfileHandler) UserRecipes(c *gin.Context) {
	userID, _, ok := requireUser(c)
	if !ok {
		return
	}

	profile, err := h.profileService.ProfileRecipes(c.Request.Context(), c.Param("username"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
