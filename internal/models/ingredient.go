package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is shared reference data. The name alone is not unique; the
// same name may exist with several measurement units, so (name, unit) is
// the practical lookup key.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt       time.Time `json:"-"`
	Name            string    `gorm:"size:200;not null;index:idx_ingredient_name_unit,unique" json:"name"`
	MeasurementUnit string    `gorm:"size:200;not null;index:idx_ingredient_name_unit,unique" json:"measurement_unit"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
