package database

import (
	"testing"

	"github.com/joinhub/join-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagsAreReusedAcrossPosts(t *testing.T) {
	_, d := newTestDB(t)
	alice := createTestUser(t, d, "alice")

	first := models.Post{Title: "first", Text: "body", AuthorID: alice.ID}
	require.NoError(t, d.PostRepo().Add(&first, []string{"golang"}))

	second := models.Post{Title: "second", Text: "body", AuthorID: alice.ID}
	require.NoError(t, d.PostRepo().Add(&second, []string{"golang"}))

	count, err := d.TagRepo().CountByName("golang")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count, "the same name must resolve to one Tag row")

	tags, err := d.TagRepo().FindByPost(first.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)

	links, err := d.TagRepo().CountLinks(tags[0].ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, links, "each post keeps its own association row")
}

func TestPostWithoutTagDescriptors(t *testing.T) {
	_, d := newTestDB(t)
	alice := createTestUser(t, d, "alice")

	post := models.Post{Title: "untagged", Text: "body", AuthorID: alice.ID}
	require.NoError(t, d.PostRepo().Add(&post, nil))

	tags, err := d.TagRepo().FindByPost(post.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestBlankTagNamesAreSkipped(t *testing.T) {
	_, d := newTestDB(t)
	alice := createTestUser(t, d, "alice")

	post := models.Post{Title: "p", Text: "body", AuthorID: alice.ID}
	require.NoError(t, d.PostRepo().Add(&post, []string{"  ", "news"}))

	tags, err := d.TagRepo().FindByPost(post.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "news", tags[0].Name)
}

func TestPostsLoadTheirTags(t *testing.T) {
	_, d := newTestDB(t)
	alice := createTestUser(t, d, "alice")

	post := models.Post{Title: "p", Text: "body", AuthorID: alice.ID}
	require.NoError(t, d.PostRepo().Add(&post, []string{"go", "web"}))

	reloaded, err := d.PostRepo().FindByID(post.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Tags, 2)
}
