package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/joinhub/join-backend/errs"
	"github.com/joinhub/join-backend/models"
	"gorm.io/gorm"
)

type FollowRepo struct {
	db *gorm.DB
}

func NewFollowRepo(db *gorm.DB) *FollowRepo {
	return &FollowRepo{db}
}

// Follow subscribes userID to authorID. Following yourself is rejected;
// following the same author twice is an idempotent no-op. Two concurrent
// calls for the same pair are serialized by the unique (user, author) index,
// and the loser of that race is also treated as success.
func (r *FollowRepo) Follow(userID, authorID uuid.UUID) error {
	if userID == authorID {
		return errs.NewSelfFollowError()
	}
	follow := models.Follow{UserID: userID, AuthorID: authorID}
	err := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		FirstOrCreate(&follow).Error
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}

// Unfollow removes the subscription if present. Removing a missing
// subscription is a no-op success so repeated calls never fail.
func (r *FollowRepo) Unfollow(userID, authorID uuid.UUID) error {
	if userID == authorID {
		return nil
	}
	return r.db.
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{}).Error
}

// IsFollowing reports whether userID currently follows authorID.
func (r *FollowRepo) IsFollowing(userID, authorID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

// FindByUser lists the user's subscriptions with the followed author
// attached, optionally narrowed by a username search.
func (r *FollowRepo) FindByUser(userID uuid.UUID, search string) ([]*models.Follow, error) {
	q := r.db.Model(&models.Follow{}).
		Preload("Author").
		Where("follows.user_id = ?", userID)
	if s := strings.TrimSpace(search); s != "" {
		q = q.Joins("JOIN users ON users.id = follows.author_id").
			Where("lower(users.username) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	var follows []*models.Follow
	err := q.Order("follows.created_at DESC").Find(&follows).Error
	return follows, err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "UNIQUE constraint failed")
}
