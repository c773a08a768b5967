package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow is a directed subscription: UserID follows AuthorID. The unique
// index on the pair is the storage-level guard against duplicate
// subscriptions under concurrent writes; self-follows are rejected before
// the row is ever written.
type Follow struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair"`
	AuthorID  uuid.UUID `json:"authorId" db:"author_id" gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	User   User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Author User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
