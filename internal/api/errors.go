package api

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/recipebox/backend/internal/logger"
	"github.com/recipebox/backend/internal/middleware"
	"github.com/recipebox/backend/internal/service"
	"github.com/recipebox/backend/internal/types"
)

const (
	msgInternal           = "Internal Server Error"
	msgInvalidBody        = "Invalid request body."
	msgInvalidCredentials = "Invalid username or password."
	msgRecipeFields       = "Title, description, ingredients, and method are required."
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adds the custom binding tags used by request types.
// It is safe to call more than once and returns the first call's result.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
			return
		}
		if err := v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			return service.ValidPassword(fl.Field().String())
		}); err != nil {
			registerErr = fmt.Errorf("failed to register password validator: %w", err)
		}
	})
	return registerErr
}

// respondError writes the status and body for an error returned by a service
func respondError(c *gin.Context, err error) {
	var validationErr *types.ValidationError
	var notFound *types.NotFoundError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &validationErr):
		abort(c, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, types.ErrDuplicateUsername):
		abort(c, http.StatusBadRequest, "Username already exists.")
	case errors.Is(err, types.ErrInvalidCredential):
		abort(c, http.StatusBadRequest, msgInvalidCredentials)
	case errors.As(err, &notFound):
		abort(c, http.StatusNotFound, notFound.Message)
	case errors.Is(err, types.ErrNotFound):
		abort(c, http.StatusNotFound, "Not found.")
	case errors.Is(err, types.ErrUnauthenticated):
		abort(c, http.StatusUnauthorized, "Access denied. No token provided.")
	case errors.Is(err, types.ErrInvalidToken):
		abort(c, http.StatusForbidden, "Invalid or expired token.")
	case errors.As(err, &tooLarge):
		abort(c, http.StatusRequestEntityTooLarge, "Request body too large.")
	default:
		logger.Error(c.Request.Context()).Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
		abort(c, http.StatusInternalServerError, msgInternal)
	}
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, middleware.ErrorResponse{Error: message})
}

// bindJSON decodes the request body into req and answers the request itself
// when that fails
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		abort(c, http.StatusBadRequest, fieldMessage(fieldErrs[0]))
		return false
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(c, err)
		return false
	}

	logger.Debug(c.Request.Context()).Err(err).Msg("Malformed request body")
	abort(c, http.StatusBadRequest, msgInvalidBody)
	return false
}

// fieldMessage turns a failed binding rule into the message shown to users
func fieldMessage(fe validator.FieldError) string {
	switch fe.StructNamespace() {
	case "SignupRequest.Username", "SigninRequest.Username",
		"SigninRequest.Password":
		if fe.Tag() == "max" {
			return "Username must be at most 50 characters."
		}
		return "Username and password are required."
	case "SignupRequest.Password":
		if fe.Tag() == "password" {
			return service.PasswordPolicyMessage
		}
		return "Username and password are required."
	case "SignupRequest.FirstName", "SignupRequest.LastName":
		return "Names must be at most 100 characters."
	case "CreateRecipeRequest.Title", "CreateRecipeRequest.Description",
		"CreateRecipeRequest.Ingredients", "CreateRecipeRequest.Method":
		return msgRecipeFields
	case "CreateRecipeRequest.PrepTime", "CreateRecipeRequest.CookTime",
		"CreateRecipeRequest.Servings", "CreateRecipeRequest.Calories":
		return "Times, servings and calories must not be negative."
	case "CommentRequest.Text":
		return "Comment text is required."
	case "RateRequest.Rating":
		return "Rating must be between 1 and 5."
	}
	return msgInvalidBody
}
