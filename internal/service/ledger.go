package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodgram/backend/internal/models"
)

// LedgerService keeps the per-(user, recipe) favorite and shopping-cart
// flags. Toggles are checked state transitions: adding twice or
// removing what was never added is an error surfaced to the caller, not
// a silent no-op.
type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

func (s *LedgerService) SetFavorite(ctx context.Context, userID, recipeID uuid.UUID, value bool) error {
	return s.setFlag(ctx, userID, recipeID, value, flagFavorite)
}

func (s *LedgerService) SetInCart(ctx context.Context, userID, recipeID uuid.UUID, value bool) error {
	return s.setFlag(ctx, userID, recipeID, value, flagCart)
}

type ledgerFlag int

const (
	flagFavorite ledgerFlag = iota
	flagCart
)

func (s *LedgerService) setFlag(ctx context.Context, userID, recipeID uuid.UUID, value bool, flag ledgerFlag) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check recipe: %w", err)
		}
		if count == 0 {
			return ErrRecipeNotFound
		}

		// Row lock serializes concurrent toggles on the same
		// (user, recipe) pair. SQLite serializes writers on its own.
		query := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID)
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var entry models.FavoriteEntry
		err := query.First(&entry).Error
		if err == gorm.ErrRecordNotFound {
			if !value {
				return notSetErr(flag)
			}
			entry = models.FavoriteEntry{UserID: userID, RecipeID: recipeID}
			setFlagValue(&entry, flag, true)
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to create ledger row: %w", err)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load ledger row: %w", err)
		}

		if flagValue(&entry, flag) == value {
			if value {
				return alreadySetErr(flag)
			}
			return notSetErr(flag)
		}
		setFlagValue(&entry, flag, value)
		if err := tx.Save(&entry).Error; err != nil {
			return fmt.Errorf("failed to update ledger row: %w", err)
		}
		return nil
	})
}

func flagValue(entry *models.FavoriteEntry, flag ledgerFlag) bool {
	if flag == flagFavorite {
		return entry.Favorited
	}
	return entry.InCart
}

func setFlagValue(entry *models.FavoriteEntry, flag ledgerFlag, value bool) {
	if flag == flagFavorite {
		entry.Favorited = value
	} else {
		entry.InCart = value
	}
}

func alreadySetErr(flag ledgerFlag) error {
	if flag == flagFavorite {
		return ErrAlreadyFavorited
	}
	return ErrAlreadyInCart
}

func notSetErr(flag ledgerFlag) error {
	if flag == flagFavorite {
		return ErrNotFavorited
	}
	return ErrNotInCart
}
