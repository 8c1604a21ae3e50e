package types

import (
	"time"

	"github.com/google/uuid"
)

// AuthorView is the author block embedded in a recipe response.
type AuthorView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

// TagView mirrors the tag reference row.
type TagView struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Slug   string    `json:"slug"`
	Colour string    `json:"colour"`
}

// IngredientView is an ingredient resolved through its association row,
// so it carries the per-recipe amount next to the catalog fields.
type IngredientView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

// RecipeView is the full recipe aggregate as serialized to clients.
type RecipeView struct {
	ID                uuid.UUID        `json:"id"`
	Tags              []TagView        `json:"tags"`
	Author            AuthorView       `json:"author"`
	Ingredients       []IngredientView `json:"ingredients"`
	IsFavorited       bool             `json:"is_favorited"`
	IsInShoppingCart  bool             `json:"is_in_shopping_cart"`
	Name              string           `json:"name"`
	Image             string           `json:"image"`
	Text              string           `json:"text"`
	CookingTime       int              `json:"cooking_time"`
	CreatedAt         time.Time        `json:"created_at"`
}

// RecipeShortView is the compact recipe serialization used in follow
// listings and toggle responses.
type RecipeShortView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

// FollowedAuthor is one entry of the subscriptions listing: the followed
// user plus a capped list of their recipes and the total count.
type FollowedAuthor struct {
	ID           uuid.UUID         `json:"id"`
	Email        string            `json:"email"`
	Username     string            `json:"username"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	IsSubscribed bool              `json:"is_subscribed"`
	Recipes      []RecipeShortView `json:"recipes"`
	RecipesCount int64             `json:"recipes_count"`
}
