package models

import (
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const groupSlugMaxLength = 100

// Group is a named category posts may optionally belong to. Groups are
// administrator-created; deleting a group detaches its posts rather than
// deleting them.
type Group struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Title       string    `json:"title" db:"title" gorm:"type:varchar(200);not null"`
	Slug        string    `json:"slug" db:"slug" gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string    `json:"description" db:"description" gorm:"type:text"`
}

// BeforeCreate derives the slug from the title when none was supplied.
// Cyrillic (and any other non-ASCII) titles are transliterated, and the
// result is truncated to the column limit. Once set the slug never changes.
func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.Slug == "" {
		g.Slug = DeriveSlug(g.Title)
	}
	return nil
}

// DeriveSlug builds a URL-safe slug from a human-readable title.
func DeriveSlug(title string) string {
	s := slug.Make(title)
	if len(s) > groupSlugMaxLength {
		s = s[:groupSlugMaxLength]
	}
	return s
}
