package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/joinhub/join-backend/models"
	"github.com/joinhub/join-backend/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostRequiresToken(t *testing.T) {
	router, _, _ := newTestAPI(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts",
		strings.NewReader(`{"title":"t","text":"body"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAndListPosts(t *testing.T) {
	router, d, tokens := newTestAPI(t, nil)
	alice, token := signupTestUser(t, d, tokens, "alice")

	body := `{"title":"hello","anons":"a","text":"first body","tags":[{"name":"go"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created PostView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "alice", created.Author, "author always comes from the token")
	assert.Equal(t, len([]rune("first body")), created.CharacterQuantity)
	require.Len(t, created.Tags, 1)
	assert.Equal(t, "go", created.Tags[0].Name)

	listReq := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, listReq)

	require.Equal(t, http.StatusOK, listRec.Code)

	var envelope struct {
		Count    int64      `json:"count"`
		Response []PostView `json:"response"`
	}
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &envelope))
	assert.EqualValues(t, 1, envelope.Count)
	require.Len(t, envelope.Response, 1)
	assert.Equal(t, alice.Username, envelope.Response[0].Author)
}

func TestBlankTextRejectedBeforeWrite(t *testing.T) {
	router, d, tokens := newTestAPI(t, nil)
	_, token := signupTestUser(t, d, tokens, "alice")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts",
		strings.NewReader(`{"title":"t","text":"   "}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil))
	var envelope Envelope
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &envelope))
	assert.EqualValues(t, 0, envelope.Count, "no partial writes on validation failure")
}

func TestNonAuthorCannotMutatePost(t *testing.T) {
	router, d, tokens := newTestAPI(t, nil)
	alice, _ := signupTestUser(t, d, tokens, "alice")
	_, bobToken := signupTestUser(t, d, tokens, "bob")

	post := models.Post{Title: "original", Text: "body", AuthorID: alice.ID}
	require.NoError(t, d.PostRepo().Add(&post, nil))

	req := httptest.NewRequest(http.MethodPut, "/api/v1/posts/"+post.ID.String(),
		strings.NewReader(`{"title":"hacked","text":"hacked"}`))
	req.Header.Set("Authorization", "Bearer "+bobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Forbidden, not not-found: the post's existence is not hidden
	assert.Equal(t, http.StatusForbidden, rec.Code)

	reloaded, err := d.PostRepo().FindByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", reloaded.Title)

	delReq := httptest.NewRequest(http.MethodDelete, "/api/v1/posts/"+post.ID.String(), nil)
	delReq.Header.Set("Authorization", "Bearer "+bobToken)
	delRec := httptest.NewRecorder()
	router.ServeHTTP(delRec, delReq)
	assert.Equal(t, http.StatusForbidden, delRec.Code)
}

func TestAuthorCanMutatePost(t *testing.T) {
	router, d, tokens := newTestAPI(t, nil)
	alice, token := signupTestUser(t, d, tokens, "alice")

	post := models.Post{Title: "original", Text: "body", AuthorID: alice.ID}
	require.NoError(t, d.PostRepo().Add(&post, nil))

	req := httptest.NewRequest(http.MethodPut, "/api/v1/posts/"+post.ID.String(),
		strings.NewReader(`{"title":"edited","text":"new body"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	reloaded, err := d.PostRepo().FindByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", reloaded.Title)
}

func TestThrottleBlocksPostsSurface(t *testing.T) {
	throttle := policy.NewLunchBreakThrottle(13, 14)
	throttle.Now = func() time.Time {
		return time.Date(2023, 5, 1, 13, 30, 0, 0, time.Local)
	}
	router, d, tokens := newTestAPI(t, throttle)
	_, token := signupTestUser(t, d, tokens, "alice")

	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil))
	assert.Equal(t, http.StatusTooManyRequests, listRec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts",
		strings.NewReader(`{"title":"t","text":"body"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code, "throttle applies regardless of identity")

	// Other surfaces stay open during the window
	groupRec := httptest.NewRecorder()
	router.ServeHTTP(groupRec, httptest.NewRequest(http.MethodGet, "/api/v1/groups", nil))
	assert.Equal(t, http.StatusOK, groupRec.Code)
}

func TestGetMissingPostReturnsNotFound(t *testing.T) {
	router, _, _ := newTestAPI(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/posts/00000000-0000-0000-0000-000000000001", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
