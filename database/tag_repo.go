package database

import (
	"github.com/google/uuid"
	"github.com/joinhub/join-backend/models"
	"gorm.io/gorm"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// findOrCreateTag resolves a tag descriptor by name inside tx. An existing
// row with the same name is reused rather than duplicated.
func findOrCreateTag(tx *gorm.DB, name string) (*models.Tag, error) {
	var tag models.Tag
	err := tx.Where("name = ?", name).
		FirstOrCreate(&tag, models.Tag{Name: name}).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindAll returns all tags from the database
func (r *TagRepo) FindAll() ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.Order("name").Find(&tags).Error
	return tags, err
}

// FindByPost returns the tags linked to one post.
func (r *TagRepo) FindByPost(postID uuid.UUID) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.
		Joins("JOIN tag_posts ON tag_posts.tag_id = tags.id").
		Where("tag_posts.post_id = ?", postID).
		Find(&tags).Error
	return tags, err
}

// CountByName reports how many tag rows share a name.
func (r *TagRepo) CountByName(name string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Tag{}).Where("name = ?", name).Count(&count).Error
	return count, err
}

// CountLinks reports the number of post associations for a tag.
func (r *TagRepo) CountLinks(tagID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.TagPost{}).Where("tag_id = ?", tagID).Count(&count).Error
	return count, err
}
