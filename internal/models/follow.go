package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow is a directed subscription edge from one user to another.
// (UserID, AuthorID) is unique and self-edges are rejected at the
// service layer before any write.
type Follow struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_follow_user_author,unique" json:"user_id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index:idx_follow_user_author,unique" json:"author_id"`
}

func (Follow) TableName() string {
	return "follows"
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
