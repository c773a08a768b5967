package database

import (
	"strings"
	"testing"
	"time"

	"github.com/joinhub/join-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugDerivedFromCyrillicTitle(t *testing.T) {
	_, d := newTestDB(t)

	group := models.Group{Title: "Тест", Description: "d"}
	require.NoError(t, d.GroupRepo().Add(&group))

	assert.Equal(t, "test", group.Slug)

	found, err := d.GroupRepo().FindBySlug("test")
	require.NoError(t, err)
	assert.Equal(t, group.ID, found.ID)
}

func TestLongSlugTruncated(t *testing.T) {
	_, d := newTestDB(t)

	group := models.Group{Title: strings.Repeat("long title ", 30), Description: "d"}
	require.NoError(t, d.GroupRepo().Add(&group))

	assert.LessOrEqual(t, len(group.Slug), 100)
	assert.NotEmpty(t, group.Slug)
}

func TestExplicitSlugKept(t *testing.T) {
	_, d := newTestDB(t)

	group := models.Group{Title: "Anything", Slug: "fixed-slug", Description: "d"}
	require.NoError(t, d.GroupRepo().Add(&group))

	assert.Equal(t, "fixed-slug", group.Slug)
}

func TestUpdateNeverTouchesSlug(t *testing.T) {
	_, d := newTestDB(t)

	group := models.Group{Title: "Original", Description: "d"}
	require.NoError(t, d.GroupRepo().Add(&group))
	originalSlug := group.Slug

	group.Title = "Renamed"
	group.Slug = "hijacked"
	require.NoError(t, d.GroupRepo().Update(&group))

	reloaded, err := d.GroupRepo().FindByID(group.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", reloaded.Title)
	assert.Equal(t, originalSlug, reloaded.Slug)
}

func TestDeleteGroupDetachesPosts(t *testing.T) {
	_, d := newTestDB(t)
	alice := createTestUser(t, d, "alice")

	group := models.Group{Title: "Doomed", Description: "d"}
	require.NoError(t, d.GroupRepo().Add(&group))

	post := models.Post{
		Title:    "survivor",
		Text:     "body",
		PubDate:  time.Now(),
		AuthorID: alice.ID,
		GroupID:  &group.ID,
	}
	require.NoError(t, d.PostRepo().Add(&post, nil))

	require.NoError(t, d.GroupRepo().Delete(group.ID))

	reloaded, err := d.PostRepo().FindByID(post.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.GroupID, "posts survive group deletion with a null group")
}
