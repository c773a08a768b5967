package database

import (
	"github.com/google/uuid"
	"github.com/joinhub/join-backend/models"
	"gorm.io/gorm"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// FindByPost returns a post's comments, newest first.
func (r *CommentRepo) FindByPost(postID uuid.UUID) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created DESC").
		Find(&comments).Error
	return comments, err
}

// FindByID returns a comment by id
func (r *CommentRepo) FindByID(id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Add inserts a new comment into the database
func (r *CommentRepo) Add(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// Update rewrites the comment text. The creation time never changes.
func (r *CommentRepo) Update(comment *models.Comment) error {
	return r.db.Model(comment).
		Select("text").
		Updates(map[string]interface{}{"text": comment.Text}).Error
}

// Delete removes a comment from the database by id
func (r *CommentRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Comment{}, "id = ?", id).Error
}
