package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/testhelpers"
	"github.com/foodgram/backend/internal/types"
)

// testEnv bundles the router and database for handler tests.
type testEnv struct {
	Router      *gin.Engine
	DB          *gorm.DB
	AuthService *service.AuthService
}

// setupTestEnv wires the full handler stack against an in-memory
// database, without the Redis rate limiter.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	authService := service.NewAuthService(db, "test-secret")

	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)
	NewCatalogHandler(service.NewCatalogService(db)).RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	NewRecipeHandler(
		service.NewRecipeService(db),
		service.NewLedgerService(db),
		service.NewShoppingListService(db),
	).RegisterRoutes(protected)
	NewFollowHandler(service.NewFollowService(db)).RegisterRoutes(protected)

	return &testEnv{Router: router, DB: db, AuthService: authService}
}

// createUserAndToken inserts a user and returns it with a valid token.
func (env *testEnv) createUserAndToken(t *testing.T, username string) (*models.User, string) {
	t.Helper()

	user := testhelpers.CreateTestUser(t, env.DB, username)
	token, err := env.AuthService.GenerateToken(&types.TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return user, token
}

// performRequest makes an HTTP request against the test router.
func (env *testEnv) performRequest(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)
	return w
}
