package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joinhub/join-backend/errs"
	"github.com/joinhub/join-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler    authHandler
	postHandler    postHandler
	groupHandler   groupHandler
	commentHandler commentHandler
	followHandler  followHandler
	feedHandler    feedHandler
}

// TagView mirrors the tag serializer: id plus name.
type TagView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// PostView is the serialized post shape. The author and group are rendered
// by username and slug, and the character count of the body is included.
type PostView struct {
	ID                uuid.UUID `json:"id"`
	Title             string    `json:"title"`
	Anons             string    `json:"anons"`
	Text              string    `json:"text"`
	PublicationDate   time.Time `json:"publication_date"`
	Author            string    `json:"author"`
	Group             *string   `json:"group"`
	Tags              []TagView `json:"tags"`
	CharacterQuantity int       `json:"character_quantity"`
	Image             string    `json:"image,omitempty"`
}

func newPostView(post *models.Post) PostView {
	view := PostView{
		ID:                post.ID,
		Title:             post.Title,
		Anons:             post.Anons,
		Text:              post.Text,
		PublicationDate:   post.PubDate,
		Author:            post.Author.Username,
		Tags:              make([]TagView, 0, len(post.Tags)),
		CharacterQuantity: len([]rune(post.Text)),
		Image:             post.Image,
	}
	if post.Group != nil {
		slug := post.Group.Slug
		view.Group = &slug
	}
	for _, tag := range post.Tags {
		view.Tags = append(view.Tags, TagView{ID: tag.ID, Name: tag.Name})
	}
	return view
}

func newPostViews(posts []*models.Post) []PostView {
	views := make([]PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, newPostView(post))
	}
	return views
}

// CommentView is the serialized comment shape with the author by username.
type CommentView struct {
	ID      uuid.UUID `json:"id"`
	Post    uuid.UUID `json:"post"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

func newCommentView(comment *models.Comment) CommentView {
	return CommentView{
		ID:      comment.ID,
		Post:    comment.PostID,
		Author:  comment.Author.Username,
		Text:    comment.Text,
		Created: comment.Created,
	}
}

// FollowView is the serialized subscription: follower and followed author
// by username.
type FollowView struct {
	User   string `json:"user"`
	Author string `json:"author"`
}

// tagDescriptor is the inbound tag shape on post creation.
type tagDescriptor struct {
	Name string `json:"name"`
}

type postRequest struct {
	Title string          `json:"title"`
	Anons string          `json:"anons"`
	Text  string          `json:"text"`
	Group string          `json:"group"`
	Tags  []tagDescriptor `json:"tags"`
	Image string          `json:"image"`
}

// postPatch carries a partial update; absent fields stay untouched.
type postPatch struct {
	Title *string `json:"title"`
	Anons *string `json:"anons"`
	Text  *string `json:"text"`
	Group *string `json:"group"`
	Image *string `json:"image"`
}

type commentRequest struct {
	Text string `json:"text"`
}

type followRequest struct {
	Author string `json:"author"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// parsePage reads the page index query parameter. Bad or missing values
// fall back to the first page; out-of-range values are clamped later by the
// paginator.
func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// requireNotBlank rejects empty or whitespace-only required fields.
func requireNotBlank(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValidationError(field, field+" must not be empty")
	}
	return nil
}
