package database

import (
	"github.com/joinhub/join-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	userRepo    *UserRepo
	groupRepo   *GroupRepo
	postRepo    *PostRepo
	tagRepo     *TagRepo
	commentRepo *CommentRepo
	followRepo  *FollowRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:    NewUserRepo(db),
		groupRepo:   NewGroupRepo(db),
		postRepo:    NewPostRepo(db),
		tagRepo:     NewTagRepo(db),
		commentRepo: NewCommentRepo(db),
		followRepo:  NewFollowRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) GroupRepo() *GroupRepo {
	return d.groupRepo
}

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) FollowRepo() *FollowRepo {
	return d.followRepo
}

// Migrate creates or updates the schema for every domain entity. The
// explicit TagPost join model is registered first so post/tag links keep
// their own primary key and unique pair index.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Post{}, "Tags", &models.TagPost{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Tag{},
		&models.TagPost{},
		&models.Comment{},
		&models.Follow{},
	)
}
