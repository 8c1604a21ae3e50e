package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
)

// ShoppingListService aggregates the ingredient rows of every recipe a
// user has flagged in_cart into one deduplicated, unit-summed list.
type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// ShoppingListItem is one aggregated line of the export.
type ShoppingListItem struct {
	IngredientID    uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	TotalAmount     int       `json:"total_amount"`
}

// Build sums amounts keyed by ingredient identity across every
// cart-flagged recipe and returns the result sorted by ingredient name,
// ascending and case-sensitive. Amounts are exact integer sums.
func (s *ShoppingListService) Build(ctx context.Context, userID uuid.UUID) ([]ShoppingListItem, error) {
	var recipeIDs []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.FavoriteEntry{}).
		Where("user_id = ? AND in_cart", userID).
		Pluck("recipe_id", &recipeIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(recipeIDs) == 0 {
		return nil, ErrEmptyCart
	}

	var rows []models.RecipeIngredient
	err = s.db.WithContext(ctx).
		Preload("Ingredient").
		Where("recipe_id IN ?", recipeIDs).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredient rows: %w", err)
	}

	totals := make(map[uuid.UUID]*ShoppingListItem, len(rows))
	for _, row := range rows {
		if item, ok := totals[row.IngredientID]; ok {
			item.TotalAmount += row.Amount
			continue
		}
		item := &ShoppingListItem{
			IngredientID: row.IngredientID,
			TotalAmount:  row.Amount,
		}
		if row.Ingredient != nil {
			item.Name = row.Ingredient.Name
			item.MeasurementUnit = row.Ingredient.MeasurementUnit
		}
		totals[row.IngredientID] = item
	}

	items := make([]ShoppingListItem, 0, len(totals))
	for _, item := range totals {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items, nil
}

// RenderText renders the aggregated list as a plain-text document for
// the download endpoint.
func RenderText(items []ShoppingListItem) []byte {
	var buf bytes.Buffer
	buf.WriteString("Shopping list\n\n")
	for _, item := range items {
		fmt.Fprintf(&buf, "%s (%s) - %d\n", item.Name, item.MeasurementUnit, item.TotalAmount)
	}
	return buf.Bytes()
}
