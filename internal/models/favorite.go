package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FavoriteEntry is the per-(user, recipe) ledger row. It is created
// lazily on the first favorite or cart toggle and lives until the user
// or the recipe is deleted; removing a recipe from favorites or from
// the cart flips the flag rather than deleting the row.
type FavoriteEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_favorite_user_recipe,unique" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_favorite_user_recipe,unique" json:"recipe_id"`
	Favorited bool      `gorm:"not null;default:false" json:"favorited"`
	InCart    bool      `gorm:"not null;default:false" json:"in_cart"`
}

func (FavoriteEntry) TableName() string {
	return "favorite_entries"
}

func (f *FavoriteEntry) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
