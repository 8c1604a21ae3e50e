package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/testhelpers"
	"github.com/foodgram/backend/internal/types"
)

func TestFollowSelf(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	user := testhelpers.CreateTestUser(t, db, "alice")
	follows := service.NewFollowService(db)
	ctx := context.Background()

	assert.ErrorIs(t, follows.Follow(ctx, user.ID, user.ID), service.ErrSelfFollow)
	assert.ErrorIs(t, follows.Unfollow(ctx, user.ID, user.ID), service.ErrSelfFollow)
}

func TestFollowDuplicateAndAbsent(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	user := testhelpers.CreateTestUser(t, db, "alice")
	author := testhelpers.CreateTestUser(t, db, "bob")
	follows := service.NewFollowService(db)
	ctx := context.Background()

	assert.ErrorIs(t, follows.Unfollow(ctx, user.ID, author.ID), service.ErrNotFollowing)

	require.NoError(t, follows.Follow(ctx, user.ID, author.ID))
	assert.ErrorIs(t, follows.Follow(ctx, user.ID, author.ID), service.ErrAlreadyFollowing)

	require.NoError(t, follows.Unfollow(ctx, user.ID, author.ID))
	assert.ErrorIs(t, follows.Unfollow(ctx, user.ID, author.ID), service.ErrNotFollowing)
}

func TestFollowUnknownAuthor(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	user := testhelpers.CreateTestUser(t, db, "alice")
	follows := service.NewFollowService(db)

	err := follows.Follow(context.Background(), user.ID, uuid.New())
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestListFollowed(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	user := testhelpers.CreateTestUser(t, db, "alice")
	bob := testhelpers.CreateTestUser(t, db, "bob")
	carol := testhelpers.CreateTestUser(t, db, "carol")
	follows := service.NewFollowService(db)
	ctx := context.Background()

	require.NoError(t, follows.Follow(ctx, user.ID, bob.ID))
	require.NoError(t, follows.Follow(ctx, user.ID, carol.ID))

	ids, err := follows.ListFollowed(ctx, user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{bob.ID, carol.ID}, ids)
}

func seedAuthorRecipes(t *testing.T, db *gorm.DB, authorID uuid.UUID, n int) {
	t.Helper()

	tag := testhelpers.CreateTestTag(t, db, "quick")
	salt := testhelpers.CreateTestIngredient(t, db, "Salt", "g")
	recipes := service.NewRecipeService(db)
	for i := 0; i < n; i++ {
		_, err := recipes.Create(context.Background(), authorID, &types.RecipeInput{
			Name:        "Recipe",
			Text:        "Cook.",
			CookingTime: 5,
			TagIDs:      []uuid.UUID{tag.ID},
			Ingredients: []types.IngredientEntry{{ID: salt.ID, Amount: 1}},
		})
		require.NoError(t, err)
	}
}

func TestSubscriptionsWithRecipesLimit(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	user := testhelpers.CreateTestUser(t, db, "alice")
	author := testhelpers.CreateTestUser(t, db, "bob")
	seedAuthorRecipes(t, db, author.ID, 3)

	follows := service.NewFollowService(db)
	ctx := context.Background()
	require.NoError(t, follows.Follow(ctx, user.ID, author.ID))

	authors, err := follows.Subscriptions(ctx, user.ID, 1, 10, 2)
	require.NoError(t, err)
	require.Len(t, authors, 1)

	entry := authors[0]
	assert.Equal(t, "bob", entry.Username)
	assert.True(t, entry.IsSubscribed)
	assert.Len(t, entry.Recipes, 2)
	assert.EqualValues(t, 3, entry.RecipesCount)
}

func TestSubscriptionsEmpty(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	user := testhelpers.CreateTestUser(t, db, "alice")

	authors, err := service.NewFollowService(db).Subscriptions(context.Background(), user.ID, 1, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, authors)
}
