package api

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/testhelpers"
	"github.com/foodgram/backend/internal/types"
)

func recipeBody(tagID, ingredientID uuid.UUID, amount, cookingTime int) map[string]interface{} {
	return map[string]interface{}{
		"name":         "Test Recipe",
		"text":         "Cook it well.",
		"image":        "recipes/images/test.png",
		"cooking_time": cookingTime,
		"tags":         []string{tagID.String()},
		"ingredients": []map[string]interface{}{
			{"id": ingredientID.String(), "amount": amount},
		},
	}
}

func TestCreateRecipeEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUserAndToken(t, "author")
	tag := testhelpers.CreateTestTag(t, env.DB, "breakfast")
	salt := testhelpers.CreateTestIngredient(t, env.DB, "Salt", "g")

	w := env.performRequest("POST", "/api/v1/recipes", token, recipeBody(tag.ID, salt.ID, 5, 10))
	require.Equal(t, 201, w.Code, w.Body.String())

	var view types.RecipeView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "Test Recipe", view.Name)
	require.Len(t, view.Ingredients, 1)
	assert.Equal(t, "Salt", view.Ingredients[0].Name)
	assert.Equal(t, 5, view.Ingredients[0].Amount)
	assert.Equal(t, "author", view.Author.Username)
}

func TestCreateRecipeValidationErrorCarriesField(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUserAndToken(t, "author")
	tag := testhelpers.CreateTestTag(t, env.DB, "breakfast")
	salt := testhelpers.CreateTestIngredient(t, env.DB, "Salt", "g")

	w := env.performRequest("POST", "/api/v1/recipes", token, recipeBody(tag.ID, salt.ID, 0, 10))
	require.Equal(t, 400, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "amount", resp["field"])
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	env := setupTestEnv(t)
	w := env.performRequest("POST", "/api/v1/recipes", "", map[string]interface{}{})
	assert.Equal(t, 401, w.Code)
}

func TestUpdateRecipeForbiddenForNonAuthor(t *testing.T) {
	env := setupTestEnv(t)
	_, authorToken := env.createUserAndToken(t, "author")
	_, strangerToken := env.createUserAndToken(t, "stranger")
	tag := testhelpers.CreateTestTag(t, env.DB, "breakfast")
	salt := testhelpers.CreateTestIngredient(t, env.DB, "Salt", "g")

	w := env.performRequest("POST", "/api/v1/recipes", authorToken, recipeBody(tag.ID, salt.ID, 5, 10))
	require.Equal(t, 201, w.Code)
	var view types.RecipeView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))

	w = env.performRequest("PATCH", "/api/v1/recipes/"+view.ID.String(), strangerToken,
		recipeBody(tag.ID, salt.ID, 5, 10))
	assert.Equal(t, 403, w.Code)
}

func TestFavoriteEndpointTransitions(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUserAndToken(t, "eater")
	_, authorToken := env.createUserAndToken(t, "author")
	tag := testhelpers.CreateTestTag(t, env.DB, "breakfast")
	salt := testhelpers.CreateTestIngredient(t, env.DB, "Salt", "g")

	w := env.performRequest("POST", "/api/v1/recipes", authorToken, recipeBody(tag.ID, salt.ID, 5, 10))
	require.Equal(t, 201, w.Code)
	var view types.RecipeView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	path := "/api/v1/recipes/" + view.ID.String() + "/favorite"

	w = env.performRequest("POST", path, token, nil)
	require.Equal(t, 201, w.Code)
	var short types.RecipeShortView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &short))
	assert.Equal(t, view.ID, short.ID)

	// adding twice is a client error, not a no-op
	w = env.performRequest("POST", path, token, nil)
	assert.Equal(t, 400, w.Code)

	w = env.performRequest("DELETE", path, token, nil)
	assert.Equal(t, 200, w.Code)

	w = env.performRequest("DELETE", path, token, nil)
	assert.Equal(t, 400, w.Code)
}

func TestFavoriteUnknownRecipe(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUserAndToken(t, "eater")

	w := env.performRequest("POST", "/api/v1/recipes/"+uuid.NewString()+"/favorite", token, nil)
	assert.Equal(t, 404, w.Code)
}

func TestDownloadShoppingCart(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUserAndToken(t, "shopper")
	_, authorToken := env.createUserAndToken(t, "author")
	tag := testhelpers.CreateTestTag(t, env.DB, "dinner")
	salt := testhelpers.CreateTestIngredient(t, env.DB, "Salt", "g")

	// empty cart is a client error
	w := env.performRequest("GET", "/api/v1/recipes/download_shopping_cart", token, nil)
	assert.Equal(t, 400, w.Code)

	w = env.performRequest("POST", "/api/v1/recipes", authorToken, recipeBody(tag.ID, salt.ID, 5, 10))
	require.Equal(t, 201, w.Code)
	var view types.RecipeView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))

	w = env.performRequest("POST", "/api/v1/recipes/"+view.ID.String()+"/shopping_cart", token, nil)
	require.Equal(t, 201, w.Code)

	w = env.performRequest("GET", "/api/v1/recipes/download_shopping_cart", token, nil)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, `attachment; filename="shopper_shopping_list.txt"`,
		w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "Salt (g) - 5")
}

func TestListRecipesFilterByCart(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUserAndToken(t, "shopper")
	_, authorToken := env.createUserAndToken(t, "author")
	tag := testhelpers.CreateTestTag(t, env.DB, "dinner")
	salt := testhelpers.CreateTestIngredient(t, env.DB, "Salt", "g")

	w := env.performRequest("POST", "/api/v1/recipes", authorToken, recipeBody(tag.ID, salt.ID, 5, 10))
	require.Equal(t, 201, w.Code)
	var inCart types.RecipeView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inCart))

	body := recipeBody(tag.ID, salt.ID, 2, 20)
	body["name"] = "Not in cart"
	w = env.performRequest("POST", "/api/v1/recipes", authorToken, body)
	require.Equal(t, 201, w.Code)

	w = env.performRequest("POST", "/api/v1/recipes/"+inCart.ID.String()+"/shopping_cart", token, nil)
	require.Equal(t, 201, w.Code)

	w = env.performRequest("GET", "/api/v1/recipes?is_in_shopping_cart=1", token, nil)
	require.Equal(t, 200, w.Code)

	var resp struct {
		Recipes []types.RecipeView `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, inCart.ID, resp.Recipes[0].ID)
	assert.True(t, resp.Recipes[0].IsInShoppingCart)
}

func TestGetRecipeNotFound(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.createUserAndToken(t, "reader")

	w := env.performRequest("GET", fmt.Sprintf("/api/v1/recipes/%s", uuid.NewString()), token, nil)
	assert.Equal(t, 404, w.Code)
}
