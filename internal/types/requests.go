package types

import "github.com/google/uuid"

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// IngredientEntry is one (ingredient, amount) pair in a recipe payload.
type IngredientEntry struct {
	ID     uuid.UUID `json:"id" binding:"required"`
	Amount int       `json:"amount"`
}

// RecipeInput is the deserialized body of a recipe create or update.
// Tag and ingredient references are validated against the catalog before
// anything is written.
type RecipeInput struct {
	Name        string            `json:"name" binding:"required"`
	Text        string            `json:"text" binding:"required"`
	Image       string            `json:"image"`
	CookingTime int               `json:"cooking_time"`
	TagIDs      []uuid.UUID       `json:"tags"`
	Ingredients []IngredientEntry `json:"ingredients"`
}

// RecipeFilter narrows recipe listings.
type RecipeFilter struct {
	AuthorID   *uuid.UUID
	TagSlugs   []string
	Favorited  bool
	InCart     bool
	Page       int
	Limit      int
}
