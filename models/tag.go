package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a free-form label reusable across posts. Tags are resolved with
// find-or-create semantics at post creation, so the same name ends up in a
// single row no matter how many posts carry it.
type Tag struct {
	ID   uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Name string    `json:"name" db:"name" gorm:"type:varchar(100);not null;index"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TagPost links one tag to one post. It backs the Post.Tags many-to-many
// relation as an explicit join model so associations can be created row by
// row during post writes.
type TagPost struct {
	ID     uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	PostID uuid.UUID `json:"postId" db:"post_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_tag_post_pair"`
	TagID  uuid.UUID `json:"tagId" db:"tag_id" gorm:"type:uuid;not null;uniqueIndex:idx_tag_post_pair"`
}

func (tp *TagPost) BeforeCreate(tx *gorm.DB) error {
	if tp.ID == uuid.Nil {
		tp.ID = uuid.New()
	}
	return nil
}
