package database

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joinhub/join-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database for one test, with foreign
// keys enforced so cascade and set-null behavior matches production.
func newTestDB(t *testing.T) (*gorm.DB, Database) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, Migrate(db))

	return db, New(db)
}

func createTestUser(t *testing.T, d Database, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, PasswordHash: "x"}
	require.NoError(t, d.UserRepo().Add(&user))
	return &user
}

func createTestPost(t *testing.T, d Database, author *models.User, title string, pubDate time.Time) *models.Post {
	t.Helper()
	post := models.Post{
		Title:    title,
		Anons:    "anons",
		Text:     "text of " + title,
		PubDate:  pubDate,
		AuthorID: author.ID,
	}
	require.NoError(t, d.PostRepo().Add(&post, nil))
	return &post
}

func countFollows(t *testing.T, db *gorm.DB, userID, authorID uuid.UUID) int64 {
	t.Helper()
	var count int64
	err := db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	require.NoError(t, err)
	return count
}
