package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupTestEnv(t)

	w := env.performRequest("POST", "/api/v1/auth/register", "", map[string]interface{}{
		"email":      "alice@example.com",
		"username":   "alice",
		"first_name": "Alice",
		"last_name":  "Smith",
		"password":   "password123",
	})
	require.Equal(t, 201, w.Code, w.Body.String())

	var registered struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered.Token)

	w = env.performRequest("POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, 200, w.Code)

	var logged struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logged))
	assert.NotEmpty(t, logged.Token)

	// the issued token grants access to protected routes
	w = env.performRequest("GET", "/api/v1/recipes", logged.Token, nil)
	assert.Equal(t, 200, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupTestEnv(t)
	env.createUserAndToken(t, "alice")

	w := env.performRequest("POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, 401, w.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	env := setupTestEnv(t)

	w := env.performRequest("POST", "/api/v1/auth/register", "", map[string]interface{}{
		"email":    "bob@example.com",
		"username": "bob",
		"password": "short",
	})
	assert.Equal(t, 400, w.Code)
}

func TestProtectedRouteRejectsBadToken(t *testing.T) {
	env := setupTestEnv(t)

	w := env.performRequest("GET", "/api/v1/recipes", "not-a-token", nil)
	assert.Equal(t, 401, w.Code)
}
