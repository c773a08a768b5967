package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentMaxLength caps the comment body.
const CommentMaxLength = 500

// Comment is a reader's reply to a post. Created is assigned once; comment
// listings default to newest first.
type Comment struct {
	ID      uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Text    string    `json:"text" db:"text" gorm:"type:varchar(500);not null"`
	Created time.Time `json:"created" db:"created" gorm:"not null;index"`

	PostID   uuid.UUID `json:"postId" db:"post_id" gorm:"type:uuid;not null;index"`
	Post     Post      `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	AuthorID uuid.UUID `json:"authorId" db:"author_id" gorm:"type:uuid;not null"`
	Author   User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Created.IsZero() {
		c.Created = time.Now()
	}
	return nil
}
