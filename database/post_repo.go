package database

import (
	"strings"

	"github.com/google/uuid"
	"github.com/joinhub/join-backend/models"
	"gorm.io/gorm"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// PostPage is one feed page plus the collection total used by the API
// response envelope.
type PostPage struct {
	Posts   []*models.Post
	Total   int64
	Page    int
	PerPage int
}

// PostFilter narrows the public feed. Search matches the post body
// case-insensitively; Author filters by the author's username.
type PostFilter struct {
	Search string
	Author string
}

// FindPage returns the public feed: every post, newest first.
func (r *PostRepo) FindPage(page int, filter PostFilter) (*PostPage, error) {
	q := r.db.Model(&models.Post{})
	if s := strings.TrimSpace(filter.Search); s != "" {
		q = q.Where("lower(posts.text) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if a := strings.TrimSpace(filter.Author); a != "" {
		q = q.Joins("JOIN users ON users.id = posts.author_id").
			Where("users.username = ?", a)
	}
	return r.findPage(q, page)
}

// FindPageByGroup returns the feed of a single group.
func (r *PostRepo) FindPageByGroup(groupID uuid.UUID, page int) (*PostPage, error) {
	q := r.db.Model(&models.Post{}).Where("group_id = ?", groupID)
	return r.findPage(q, page)
}

// FindPageByAuthor returns the profile feed of a single author.
func (r *PostRepo) FindPageByAuthor(authorID uuid.UUID, page int) (*PostPage, error) {
	q := r.db.Model(&models.Post{}).Where("author_id = ?", authorID)
	return r.findPage(q, page)
}

// FindPageBySubscriptions returns posts whose author is followed by the
// given user.
func (r *PostRepo) FindPageBySubscriptions(userID uuid.UUID, page int) (*PostPage, error) {
	followed := r.db.Model(&models.Follow{}).
		Select("author_id").
		Where("user_id = ?", userID)
	q := r.db.Model(&models.Post{}).Where("author_id IN (?)", followed)
	return r.findPage(q, page)
}

func (r *PostRepo) findPage(q *gorm.DB, page int) (*PostPage, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	q, page = paginate(q, page, total, DefaultPageSize)

	var posts []*models.Post
	err := q.Preload("Tags").
		Preload("Author").
		Preload("Group").
		Order("pub_date DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:   posts,
		Total:   total,
		Page:    page,
		PerPage: DefaultPageSize,
	}, nil
}

// FindByID returns a post by its ID with tags, author and group attached.
func (r *PostRepo) FindByID(id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Tags").
		Preload("Author").
		Preload("Group").
		First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Add inserts a post and resolves its tag descriptors in one transaction:
// each name either reuses the existing Tag row or creates one, then a single
// TagPost link row is written. No descriptors means no associations.
func (r *PostRepo) Add(post *models.Post, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		for _, name := range tagNames {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			tag, err := findOrCreateTag(tx, name)
			if err != nil {
				return err
			}
			link := models.TagPost{PostID: post.ID, TagID: tag.ID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update rewrites a post's mutable fields. The publication date and the
// author never change after creation.
func (r *PostRepo) Update(post *models.Post) error {
	return r.db.Omit("pub_date", "author_id", "Tags", "Author", "Group", "Comments").
		Save(post).Error
}

// Delete removes a post from the database by id
func (r *PostRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Post{}, "id = ?", id).Error
}
