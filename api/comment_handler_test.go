package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/joinhub/join-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentLifecycle(t *testing.T) {
	router, d, tokens := newTestAPI(t, nil)
	author, _ := signupTestUser(t, d, tokens, "author")
	_, readerToken := signupTestUser(t, d, tokens, "reader")

	post := models.Post{Title: "t", Text: "body", PubDate: time.Now(), AuthorID: author.ID}
	require.NoError(t, d.PostRepo().Add(&post, nil))

	base := fmt.Sprintf("/api/v1/posts/%s/comments", post.ID)

	createRec := httptest.NewRecorder()
	createReq := httptest.NewRequest(http.MethodPost, base, strings.NewReader(`{"text":"nice post"}`))
	createReq.Header.Set("Authorization", "Bearer "+readerToken)
	router.ServeHTTP(createRec, createReq)
	require.Equal(t, http.StatusCreated, createRec.Code, createRec.Body.String())

	var created CommentView
	require.NoError(t, json.Unmarshal(createRec.Body.Bytes(), &created))
	assert.Equal(t, "reader", created.Author, "author comes from the token")

	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, httptest.NewRequest(http.MethodGet, base, nil))
	require.Equal(t, http.StatusOK, listRec.Code)

	var envelope struct {
		Count    int64         `json:"count"`
		Response []CommentView `json:"response"`
	}
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &envelope))
	assert.EqualValues(t, 1, envelope.Count)
}

func TestCommentTextLengthLimit(t *testing.T) {
	router, d, tokens := newTestAPI(t, nil)
	author, token := signupTestUser(t, d, tokens, "author")

	post := models.Post{Title: "t", Text: "body", PubDate: time.Now(), AuthorID: author.ID}
	require.NoError(t, d.PostRepo().Add(&post, nil))

	body := fmt.Sprintf(`{"text":%q}`, strings.Repeat("x", models.CommentMaxLength+1))
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/posts/%s/comments", post.ID), strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "text")
}

func TestCommentOwnershipOnUpdate(t *testing.T) {
	router, d, tokens := newTestAPI(t, nil)
	author, _ := signupTestUser(t, d, tokens, "author")
	commenter, _ := signupTestUser(t, d, tokens, "commenter")
	_, intruderToken := signupTestUser(t, d, tokens, "intruder")

	post := models.Post{Title: "t", Text: "body", PubDate: time.Now(), AuthorID: author.ID}
	require.NoError(t, d.PostRepo().Add(&post, nil))

	comment := models.Comment{Text: "original", PostID: post.ID, AuthorID: commenter.ID}
	require.NoError(t, d.CommentRepo().Add(&comment))

	req := httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/api/v1/posts/%s/comments/%s", post.ID, comment.ID),
		strings.NewReader(`{"text":"hijacked"}`))
	req.Header.Set("Authorization", "Bearer "+intruderToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	kept, err := d.CommentRepo().FindByID(comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", kept.Text)
}

func TestCommentMustBelongToAddressedPost(t *testing.T) {
	router, d, tokens := newTestAPI(t, nil)
	author, _ := signupTestUser(t, d, tokens, "author")

	first := models.Post{Title: "a", Text: "body", PubDate: time.Now(), AuthorID: author.ID}
	require.NoError(t, d.PostRepo().Add(&first, nil))
	second := models.Post{Title: "b", Text: "body", PubDate: time.Now(), AuthorID: author.ID}
	require.NoError(t, d.PostRepo().Add(&second, nil))

	comment := models.Comment{Text: "on first", PostID: first.ID, AuthorID: author.ID}
	require.NoError(t, d.CommentRepo().Add(&comment))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/posts/%s/comments/%s", second.ID, comment.ID), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
