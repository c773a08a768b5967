package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/joinhub/join-backend/database"
	"github.com/joinhub/join-backend/errs"
	"github.com/joinhub/join-backend/models"
	"github.com/joinhub/join-backend/policy"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	postRepo  *database.PostRepo
	groupRepo *database.GroupRepo
	tagRepo   *database.TagRepo
}

func newPostHandler(postRepo *database.PostRepo, groupRepo *database.GroupRepo, tagRepo *database.TagRepo) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger),
		logger:    logger,
		postRepo:  postRepo,
		groupRepo: groupRepo,
		tagRepo:   tagRepo,
	}
}

// listPosts returns the public feed: all posts, newest first, in the
// {count, response} envelope. Supports ?search= over the body text and
// ?author= by username.
func (h postHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := database.PostFilter{
			Search: r.URL.Query().Get("search"),
			Author: r.URL.Query().Get("author"),
		}

		page, err := h.postRepo.FindPage(parsePage(r), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "posts", err))
			return
		}

		h.responder.WriteEnvelope(w, page.Total, newPostViews(page.Posts))
	}
}

// getPost returns a single post by id.
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
			return
		}

		post, err := h.postRepo.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "post", err))
			return
		}

		h.responder.WriteJSON(w, newPostView(post))
	}
}

// createPost creates a new post authored by the caller. The author is
// always taken from the token, never from the payload. Tag descriptors are
// resolved with find-or-create semantics; missing tags are simply absent.
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := callerFromCtx(r.Context())
		if err := policy.Authorize(caller, uuid.Nil, policy.ActionCreate); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req postRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("post request"))
			return
		}

		if err := requireNotBlank("title", req.Title); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := requireNotBlank("text", req.Text); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post := models.Post{
			Title:    req.Title,
			Anons:    req.Anons,
			Text:     req.Text,
			Image:    req.Image,
			AuthorID: caller.ID,
		}

		if slug := strings.TrimSpace(req.Group); slug != "" {
			group, err := h.groupRepo.FindBySlug(slug)
			if err != nil {
				h.responder.WriteError(w, errs.NewValidationError("group", "group does not exist"))
				return
			}
			post.GroupID = &group.ID
		}

		tagNames := make([]string, 0, len(req.Tags))
		for _, tag := range req.Tags {
			tagNames = append(tagNames, tag.Name)
		}

		if err := h.postRepo.Add(&post, tagNames); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "post", err))
			return
		}

		created, err := h.postRepo.FindByID(post.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "post", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newPostView(created))
	}
}

// updatePost rewrites a post. Only the author may do this; anyone else is
// told the post exists but is off limits. PUT replaces the mutable fields,
// PATCH touches only the ones present in the payload. Tags are fixed at
// creation and not editable here.
func (h postHandler) updatePost(partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
			return
		}

		post, err := h.postRepo.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "post", err))
			return
		}

		caller := callerFromCtx(r.Context())
		if err := policy.Authorize(caller, post.AuthorID, policy.ActionUpdate); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch postPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			h.responder.WriteError(w, errs.Malformed("post request"))
			return
		}

		if !partial {
			// Full replace: required fields must be present and valid
			if patch.Title == nil || patch.Text == nil {
				h.responder.WriteError(w, errs.NewBadRequestError("title and text are required"))
				return
			}
		}

		if patch.Title != nil {
			if err := requireNotBlank("title", *patch.Title); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			post.Title = *patch.Title
		}
		if patch.Text != nil {
			if err := requireNotBlank("text", *patch.Text); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			post.Text = *patch.Text
		}
		if patch.Anons != nil {
			post.Anons = *patch.Anons
		}
		if patch.Image != nil {
			post.Image = *patch.Image
		}
		if patch.Group != nil {
			if slug := strings.TrimSpace(*patch.Group); slug == "" {
				post.GroupID = nil
				post.Group = nil
			} else {
				group, err := h.groupRepo.FindBySlug(slug)
				if err != nil {
					h.responder.WriteError(w, errs.NewValidationError("group", "group does not exist"))
					return
				}
				post.GroupID = &group.ID
			}
		}

		if err := h.postRepo.Update(post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "post", err))
			return
		}

		updated, err := h.postRepo.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "post", err))
			return
		}

		h.responder.WriteJSON(w, newPostView(updated))
	}
}

// deletePost removes a post. Author-only, like updates.
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
			return
		}

		post, err := h.postRepo.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "post", err))
			return
		}

		caller := callerFromCtx(r.Context())
		if err := policy.Authorize(caller, post.AuthorID, policy.ActionDelete); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.postRepo.Delete(postID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "post", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// listTags returns every tag known to the system.
func (h postHandler) listTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tags", err))
			return
		}

		views := make([]TagView, 0, len(tags))
		for _, tag := range tags {
			views = append(views, TagView{ID: tag.ID, Name: tag.Name})
		}
		h.responder.WriteEnvelope(w, int64(len(views)), views)
	}
}
