package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a single authored article. The publication date is assigned once
// at creation and never mutated. Deleting the author deletes the post;
// deleting the group only clears the reference.
type Post struct {
	ID      uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Title   string    `json:"title" db:"title" gorm:"type:varchar(50);not null"`
	Anons   string    `json:"anons" db:"anons" gorm:"type:varchar(250)"`
	Text    string    `json:"text" db:"text" gorm:"type:text;not null"`
	PubDate time.Time `json:"pubDate" db:"pub_date" gorm:"not null;index"`
	Image   string    `json:"image,omitempty" db:"image" gorm:"type:text"`

	AuthorID uuid.UUID  `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index"`
	Author   User       `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	GroupID  *uuid.UUID `json:"groupId,omitempty" db:"group_id" gorm:"type:uuid;index"`
	Group    *Group     `json:"-" gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`

	Tags     []Tag     `json:"tags,omitempty" gorm:"many2many:tag_posts"`
	Comments []Comment `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.PubDate.IsZero() {
		p.PubDate = time.Now()
	}
	return nil
}
