package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/types"
)

// RecipeService builds and persists recipe aggregates: the recipe row
// plus its tag links and ingredient-with-amount rows, written as one
// transactional unit.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// validate checks the whole payload before anything is written. The
// first violated rule aborts the operation; tags and ingredients are
// checked independently of each other.
func (s *RecipeService) validate(tx *gorm.DB, input *types.RecipeInput) ([]models.Tag, []models.Ingredient, error) {
	if len(input.TagIDs) == 0 {
		return nil, nil, newValidationError("tags", "at least one tag is required")
	}
	var tags []models.Tag
	if err := tx.Where("id IN ?", input.TagIDs).Find(&tags).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to resolve tags: %w", err)
	}
	if len(tags) != len(uniqueIDs(input.TagIDs)) {
		return nil, nil, newValidationError("tags", "unknown tag")
	}

	if len(input.Ingredients) == 0 {
		return nil, nil, newValidationError("ingredients", "at least one ingredient is required")
	}
	seen := make(map[uuid.UUID]struct{}, len(input.Ingredients))
	ids := make([]uuid.UUID, 0, len(input.Ingredients))
	for _, entry := range input.Ingredients {
		if _, dup := seen[entry.ID]; dup {
			return nil, nil, newValidationError("ingredients", "ingredient listed twice")
		}
		seen[entry.ID] = struct{}{}
		if entry.Amount < 1 {
			return nil, nil, newValidationError("amount", "amount must be at least 1")
		}
		ids = append(ids, entry.ID)
	}
	var ingredients []models.Ingredient
	if err := tx.Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to resolve ingredients: %w", err)
	}
	if len(ingredients) != len(ids) {
		return nil, nil, newValidationError("ingredients", "unknown ingredient")
	}

	if input.CookingTime < 1 {
		return nil, nil, newValidationError("cooking_time", "cooking time must be at least one minute")
	}

	return tags, ingredients, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Create validates the payload and persists the recipe with its full
// association set in one transaction.
func (s *RecipeService) Create(ctx context.Context, authorID uuid.UUID, input *types.RecipeInput) (*types.RecipeView, error) {
	var recipeID uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, _, err := s.validate(tx, input)
		if err != nil {
			return err
		}

		recipe := models.Recipe{
			AuthorID:    authorID,
			Name:        input.Name,
			Text:        input.Text,
			Image:       input.Image,
			CookingTime: input.CookingTime,
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		if err := tx.Model(&recipe).Association("Tags").Append(tags); err != nil {
			return fmt.Errorf("failed to link tags: %w", err)
		}
		if err := s.writeIngredientRows(tx, recipe.ID, input.Ingredients); err != nil {
			return err
		}
		recipeID = recipe.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, recipeID, &authorID)
}

// Update rewrites the recipe row and replaces both association sets.
// Replacement is clear-then-rewrite, not a diff; a failed validation
// leaves the prior associations untouched because nothing has been
// cleared yet.
func (s *RecipeService) Update(ctx context.Context, recipeID, authorID uuid.UUID, input *types.RecipeInput) (*types.RecipeView, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", recipeID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrRecipeNotFound
			}
			return fmt.Errorf("failed to load recipe: %w", err)
		}
		if recipe.AuthorID != authorID {
			return ErrForbidden
		}

		tags, _, err := s.validate(tx, input)
		if err != nil {
			return err
		}

		recipe.Name = input.Name
		recipe.Text = input.Text
		recipe.Image = input.Image
		recipe.CookingTime = input.CookingTime
		if err := tx.Save(&recipe).Error; err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}

		if err := tx.Model(&recipe).Association("Tags").Replace(tags); err != nil {
			return fmt.Errorf("failed to replace tags: %w", err)
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to clear ingredient rows: %w", err)
		}
		return s.writeIngredientRows(tx, recipe.ID, input.Ingredients)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, recipeID, &authorID)
}

func (s *RecipeService) writeIngredientRows(tx *gorm.DB, recipeID uuid.UUID, entries []types.IngredientEntry) error {
	for _, entry := range entries {
		row := models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: entry.ID,
			Amount:       entry.Amount,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to write ingredient row: %w", err)
		}
	}
	return nil
}

// Delete removes the recipe together with everything it owns: tag
// links, ingredient rows and any ledger rows referencing it.
func (s *RecipeService) Delete(ctx context.Context, recipeID, authorID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", recipeID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrRecipeNotFound
			}
			return fmt.Errorf("failed to load recipe: %w", err)
		}
		if recipe.AuthorID != authorID {
			return ErrForbidden
		}

		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return fmt.Errorf("failed to clear tag links: %w", err)
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to delete ingredient rows: %w", err)
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.FavoriteEntry{}).Error; err != nil {
			return fmt.Errorf("failed to delete ledger rows: %w", err)
		}
		if err := tx.Delete(&recipe).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
}

// Get loads the full aggregate. The viewer, when present, determines
// the is_favorited / is_in_shopping_cart flags and the author's
// is_subscribed flag.
func (s *RecipeService) Get(ctx context.Context, recipeID uuid.UUID, viewerID *uuid.UUID) (*types.RecipeView, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Preload("Author").
		First(&recipe, "id = ?", recipeID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	return s.buildView(ctx, &recipe, viewerID)
}

// List returns recipe aggregates newest first, narrowed by the filter.
func (s *RecipeService) List(ctx context.Context, viewerID *uuid.UUID, filter *types.RecipeFilter) ([]*types.RecipeView, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Preload("Author").
		Order("recipes.created_at DESC")

	if filter != nil {
		if filter.AuthorID != nil {
			query = query.Where("recipes.author_id = ?", *filter.AuthorID)
		}
		if len(filter.TagSlugs) > 0 {
			query = query.
				Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", filter.TagSlugs).
				Distinct()
		}
		if filter.Favorited && viewerID != nil {
			query = query.
				Joins("JOIN favorite_entries fe_fav ON fe_fav.recipe_id = recipes.id").
				Where("fe_fav.user_id = ? AND fe_fav.favorited", *viewerID)
		}
		if filter.InCart && viewerID != nil {
			query = query.
				Joins("JOIN favorite_entries fe_cart ON fe_cart.recipe_id = recipes.id").
				Where("fe_cart.user_id = ? AND fe_cart.in_cart", *viewerID)
		}
		limit := filter.Limit
		if limit <= 0 {
			limit = 20
		}
		query = query.Limit(limit)
		if filter.Page > 1 {
			query = query.Offset((filter.Page - 1) * limit)
		}
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	views := make([]*types.RecipeView, 0, len(recipes))
	for i := range recipes {
		view, err := s.buildView(ctx, &recipes[i], viewerID)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *RecipeService) buildView(ctx context.Context, recipe *models.Recipe, viewerID *uuid.UUID) (*types.RecipeView, error) {
	view := &types.RecipeView{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
		CreatedAt:   recipe.CreatedAt,
		Tags:        make([]types.TagView, 0, len(recipe.Tags)),
		Ingredients: make([]types.IngredientView, 0, len(recipe.Ingredients)),
	}
	for _, tag := range recipe.Tags {
		view.Tags = append(view.Tags, types.TagView{
			ID: tag.ID, Name: tag.Name, Slug: tag.Slug, Colour: tag.Colour,
		})
	}
	for _, row := range recipe.Ingredients {
		iv := types.IngredientView{ID: row.IngredientID, Amount: row.Amount}
		if row.Ingredient != nil {
			iv.Name = row.Ingredient.Name
			iv.MeasurementUnit = row.Ingredient.MeasurementUnit
		}
		view.Ingredients = append(view.Ingredients, iv)
	}

	if recipe.Author != nil {
		view.Author = types.AuthorView{
			ID:        recipe.Author.ID,
			Email:     recipe.Author.Email,
			Username:  recipe.Author.Username,
			FirstName: recipe.Author.FirstName,
			LastName:  recipe.Author.LastName,
		}
	} else {
		view.Author = types.AuthorView{ID: recipe.AuthorID}
	}

	if viewerID != nil {
		var entry models.FavoriteEntry
		err := s.db.WithContext(ctx).
			Where("user_id = ? AND recipe_id = ?", *viewerID, recipe.ID).
			First(&entry).Error
		if err == nil {
			view.IsFavorited = entry.Favorited
			view.IsInShoppingCart = entry.InCart
		} else if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("failed to load ledger row: %w", err)
		}

		var followed int64
		err = s.db.WithContext(ctx).Model(&models.Follow{}).
			Where("user_id = ? AND author_id = ?", *viewerID, recipe.AuthorID).
			Count(&followed).Error
		if err != nil {
			return nil, fmt.Errorf("failed to check subscription: %w", err)
		}
		view.Author.IsSubscribed = followed > 0
	}

	return view, nil
}
