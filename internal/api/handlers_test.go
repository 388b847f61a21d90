package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/recipebox/backend/internal/mocks"
	"github.com/recipebox/backend/internal/models"
	"github.com/recipebox/backend/internal/types"
)

type mockedServices struct {
	auth    *mocks.MockAuthService
	recipes *mocks.MockRecipeService
	social  *mocks.MockSocialService
	profile *mocks.MockProfileService
}

func setupMockedRouter(t *testing.T) (*gin.Engine, *mockedServices) {
	gin.SetMode(gin.TestMode)
	m := &mockedServices{
		auth:    &mocks.MockAuthService{},
		recipes: &mocks.MockRecipeService{},
		social:  &mocks.MockSocialService{},
		profile: &mocks.MockProfileService{},
	}
	m.auth.On("ValidateToken", "token").Return(&types.TokenClaims{UserID: 7, Username: "alice"}, nil)

	router := gin.New()
	RegisterRoutes(router, Services{
		Auth:    m.auth,
		Recipes: m.recipes,
		Social:  m.social,
		Profile: m.profile,
	}, Limiters{})

	t.Cleanup(func() {
		m.recipes.AssertExpectations(t)
		m.social.AssertExpectations(t)
		m.profile.AssertExpectations(t)
	})
	return router, m
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStorageFailuresAreHidden(t *testing.T) {
	router, m := setupMockedRouter(t)
	m.recipes.On("ListMine", mock.Anything, uint(7)).Return(nil, errors.New("pq: connection refused"))

	w := serve(router, http.MethodGet, "/recipes", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
}

func TestSigninHidesUnknownUser(t *testing.T) {
	router, m := setupMockedRouter(t)
	m.auth.On("Login", mock.Anything, "ghost", "Passw0rd!").Return(nil, types.NotFound("User not found."))

	w := serve(router, http.MethodPost, "/signin", `{"username":"ghost","password":"Passw0rd!"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid username or password."}`, w.Body.String())
}

func TestSigninTokenFailure(t *testing.T) {
	router, m := setupMockedRouter(t)
	user := &types.PublicUser{ID: 7, Username: "alice"}
	m.auth.On("Login", mock.Anything, "alice", "Passw0rd!").Return(user, nil)
	m.auth.On("GenerateToken", user).Return("", errors.New("signing failed"))

	w := serve(router, http.MethodPost, "/signin", `{"username":"alice","password":"Passw0rd!"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListAllPassesQuery(t *testing.T) {
	router, m := setupMockedRouter(t)
	expected := types.FeedQuery{Page: 2, Limit: 5, Difficulty: "hard", Search: "pie", LikedOnly: true, RequesterID: 7}
	m.recipes.On("ListAll", mock.Anything, expected).
		Return(&types.FeedPage{Recipes: []types.RecipeSummary{}, Page: 2, Limit: 5}, nil)

	w := serve(router, http.MethodGet, "/recipes/all?page=2&limit=5&difficulty=hard&search=pie&liked=true", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"recipes":[],"page":2,"limit":5,"total":0,"hasMore":false}`, w.Body.String())
}

func TestCreatePassesIdentity(t *testing.T) {
	router, m := setupMockedRouter(t)
	m.recipes.On("Create", mock.Anything, uint(7), "alice", mock.MatchedBy(func(req *types.CreateRecipeRequest) bool {
		return req.Title == "Pie" && len(req.Ingredients) == 1
	})).Return(&models.Recipe{ID: 42}, nil)

	w := serve(router, http.MethodPost, "/recipes", `{"title":"Pie","description":"d","ingredients":["a"],"method":["b"]}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"Recipe created successfully.","recipeId":42}`, w.Body.String())
}

func TestRateMessages(t *testing.T) {
	router, m := setupMockedRouter(t)
	m.social.On("Rate", mock.Anything, uint(3), uint(7), 4).
		Return(&types.RateResult{Rating: models.Rating{RecipeID: 3, UserID: 7, Rating: 4}}, nil).Once()
	m.social.On("Rate", mock.Anything, uint(3), uint(7), 2).
		Return(&types.RateResult{Rating: models.Rating{RecipeID: 3, UserID: 7, Rating: 2}, Updated: true}, nil).Once()

	w := serve(router, http.MethodPost, "/recipes/3/rate", `{"rating":4}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"Recipe rated successfully."`)

	w = serve(router, http.MethodPost, "/recipes/3/rate", `{"rating":2}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"Rating updated successfully."`)
}

func TestInvalidPathID(t *testing.T) {
	router, _ := setupMockedRouter(t)

	for _, id := range []string{"abc", "0", "-1", "1.5"} {
		for _, path := range []string{"/recipes/%s", "/recipes/%s/like", "/recipes/%s/rate"} {
			method := http.MethodPost
			if path == "/recipes/%s" {
				method = http.MethodDelete
			}
			w := serve(router, method, fmt.Sprintf(path, id), `{"rating":3}`)
			assert.Equal(t, http.StatusBadRequest, w.Code, "%s %s", method, fmt.Sprintf(path, id))
		}
	}
}

func TestRespondErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		err    error
		status int
		body   string
	}{
		{types.NewValidationError("text", "Comment text is required."), http.StatusBadRequest, "Comment text is required."},
		{fmt.Errorf("register: %w", types.ErrDuplicateUsername), http.StatusBadRequest, "Username already exists."},
		{types.ErrInvalidCredential, http.StatusBadRequest, "Invalid username or password."},
		{types.NotFound("Recipe not found."), http.StatusNotFound, "Recipe not found."},
		{types.ErrNotFound, http.StatusNotFound, "Not found."},
		{types.ErrUnauthenticated, http.StatusUnauthorized, "Access denied. No token provided."},
		{types.ErrInvalidToken, http.StatusForbidden, "Invalid or expired token."},
		{&http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge, "Request body too large."},
		{errors.New("disk full"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		respondError(c, tt.err)
		assert.Equal(t, tt.status, w.Code, tt.err.Error())
		assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.body), w.Body.String())
	}
}
