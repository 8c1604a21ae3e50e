package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/testhelpers"
	"github.com/foodgram/backend/internal/types"
)

// TestRecipeLifecycleOnPostgres runs the full recipe flow against a real
// Postgres instance, covering behavior the in-memory tests cannot: row
// locking on ledger transitions and the on-conflict ingredient upsert.
func TestRecipeLifecycleOnPostgres(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)
	ctx := context.Background()

	catalog := service.NewCatalogService(db)
	inserted, err := catalog.BulkUpsertIngredients(ctx, []service.IngredientRecord{
		{Name: "Salt", MeasurementUnit: "g"},
		{Name: "Butter", MeasurementUnit: "g"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, inserted)

	inserted, err = catalog.BulkUpsertIngredients(ctx, []service.IngredientRecord{
		{Name: "Salt", MeasurementUnit: "g"},
	})
	require.NoError(t, err)
	assert.Zero(t, inserted)

	author := testhelpers.CreateTestUser(t, db, "cook")
	eater := testhelpers.CreateTestUser(t, db, "eater")
	tag := testhelpers.CreateTestTag(t, db, "dinner")

	ingredients, err := catalog.ListIngredients(ctx, "sal")
	require.NoError(t, err)
	require.Len(t, ingredients, 1)

	recipes := service.NewRecipeService(db)
	recipe, err := recipes.Create(ctx, author.ID, &types.RecipeInput{
		Name:        "Buttered toast",
		Text:        "Toast, then butter.",
		CookingTime: 5,
		TagIDs:      []uuid.UUID{tag.ID},
		Ingredients: []types.IngredientEntry{{ID: ingredients[0].ID, Amount: 2}},
	})
	require.NoError(t, err)

	ledger := service.NewLedgerService(db)
	require.NoError(t, ledger.SetInCart(ctx, eater.ID, recipe.ID, true))
	assert.ErrorIs(t, ledger.SetInCart(ctx, eater.ID, recipe.ID, true), service.ErrAlreadyInCart)

	items, err := service.NewShoppingListService(db).Build(ctx, eater.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Salt", items[0].Name)
	assert.Equal(t, 2, items[0].TotalAmount)

	require.NoError(t, recipes.Delete(ctx, recipe.ID, author.ID))
	_, err = recipes.Get(ctx, recipe.ID, nil)
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)
}

// TestFollowGraphOnPostgres exercises the unique follow edge constraint
// at the database level rather than through the service's count check.
func TestFollowGraphOnPostgres(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)
	ctx := context.Background()

	alice := testhelpers.CreateTestUser(t, db, "alice")
	bob := testhelpers.CreateTestUser(t, db, "bob")

	follows := service.NewFollowService(db)
	require.NoError(t, follows.Follow(ctx, alice.ID, bob.ID))
	assert.ErrorIs(t, follows.Follow(ctx, alice.ID, bob.ID), service.ErrAlreadyFollowing)

	ids, err := follows.ListFollowed(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{bob.ID}, ids)

	require.NoError(t, follows.Unfollow(ctx, alice.ID, bob.ID))
	ids, err = follows.ListFollowed(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
