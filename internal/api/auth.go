package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/backend/internal/logger"
	"github.com/recipebox/backend/internal/service"
	"github.com/recipebox/backend/internal/types"
)

type AuthHandler struct {
	authService service.IAuthService
}

func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes adds the unauthenticated signup and signin endpoints
func (h *AuthHandler) RegisterRoutes(router gin.IRoutes) {
	router.POST("/signup", h.Signup)
	router.POST("/signin", h.Signin)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req types.SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Password, req.FirstName, req.LastName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User registered successfully.",
		"user":    user,
	})
}

func (h *AuthHandler) Signin(c *gin.Context) {
	var req types.SigninRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// unknown users and wrong passwords look the same to the client
		if isNotFound(err) {
			err = types.ErrInvalidCredential
		}
		respondError(c, err)
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info(c.Request.Context()).Uint("user_id", user.ID).Msg("User signed in")
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}
