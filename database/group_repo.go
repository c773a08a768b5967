package database

import (
	"github.com/google/uuid"
	"github.com/joinhub/join-backend/models"
	"gorm.io/gorm"
)

type GroupRepo struct {
	db *gorm.DB
}

func NewGroupRepo(db *gorm.DB) *GroupRepo {
	return &GroupRepo{db}
}

// FindAll returns all groups from the database
func (r *GroupRepo) FindAll() ([]*models.Group, error) {
	var groups []*models.Group
	err := r.db.Order("title").Find(&groups).Error
	return groups, err
}

// FindBySlug returns a group by its unique slug
func (r *GroupRepo) FindBySlug(slug string) (*models.Group, error) {
	var group models.Group
	err := r.db.First(&group, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// FindByID returns a group by id
func (r *GroupRepo) FindByID(id uuid.UUID) (*models.Group, error) {
	var group models.Group
	err := r.db.First(&group, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// Add inserts a new group into the database
func (r *GroupRepo) Add(group *models.Group) error {
	return r.db.Create(group).Error
}

// Update rewrites the group's title and description. The slug is immutable
// once set, so it is never part of the update.
func (r *GroupRepo) Update(group *models.Group) error {
	return r.db.Model(group).
		Select("title", "description").
		Updates(map[string]interface{}{
			"title":       group.Title,
			"description": group.Description,
		}).Error
}

// Delete removes a group. Posts referencing it survive with a null group.
func (r *GroupRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Group{}, "id = ?", id).Error
}
