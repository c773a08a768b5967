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

type commentHandler struct {
	responder   Responder
	logger      zerolog.Logger
	commentRepo *database.CommentRepo
	postRepo    *database.PostRepo
}

func newCommentHandler(commentRepo *database.CommentRepo, postRepo *database.PostRepo) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// resolvePost makes sure the {postID} segment refers to a real post.
func (h commentHandler) resolvePost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
		return nil, false
	}

	post, err := h.postRepo.FindByID(postID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "post", err))
		return nil, false
	}
	return post, true
}

// listComments returns the post's comments, newest first.
func (h commentHandler) listComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.resolvePost(w, r)
		if !ok {
			return
		}

		comments, err := h.commentRepo.FindByPost(post.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "comments", err))
			return
		}

		views := make([]CommentView, 0, len(comments))
		for _, comment := range comments {
			views = append(views, newCommentView(comment))
		}
		h.responder.WriteEnvelope(w, int64(len(views)), views)
	}
}

// getComment returns a single comment of the post.
func (h commentHandler) getComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.resolvePost(w, r)
		if !ok {
			return
		}

		comment, ok := h.resolveComment(w, r, post)
		if !ok {
			return
		}

		h.responder.WriteJSON(w, newCommentView(comment))
	}
}

// createComment adds a comment authored by the caller.
func (h commentHandler) createComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := callerFromCtx(r.Context())
		if err := policy.Authorize(caller, uuid.Nil, policy.ActionCreate); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, ok := h.resolvePost(w, r)
		if !ok {
			return
		}

		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("comment request"))
			return
		}
		if err := validateCommentText(req.Text); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment := models.Comment{
			Text:     req.Text,
			PostID:   post.ID,
			AuthorID: caller.ID,
		}
		if err := h.commentRepo.Add(&comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "comment", err))
			return
		}

		created, err := h.commentRepo.FindByID(comment.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "comment", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newCommentView(created))
	}
}

// updateComment rewrites the comment text. Author-only.
func (h commentHandler) updateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.resolvePost(w, r)
		if !ok {
			return
		}

		comment, ok := h.resolveComment(w, r, post)
		if !ok {
			return
		}

		caller := callerFromCtx(r.Context())
		if err := policy.Authorize(caller, comment.AuthorID, policy.ActionUpdate); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("comment request"))
			return
		}
		if err := validateCommentText(req.Text); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment.Text = req.Text
		if err := h.commentRepo.Update(comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "comment", err))
			return
		}

		h.responder.WriteJSON(w, newCommentView(comment))
	}
}

// deleteComment removes the comment. Author-only.
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.resolvePost(w, r)
		if !ok {
			return
		}

		comment, ok := h.resolveComment(w, r, post)
		if !ok {
			return
		}

		caller := callerFromCtx(r.Context())
		if err := policy.Authorize(caller, comment.AuthorID, policy.ActionDelete); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.commentRepo.Delete(comment.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "comment", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h commentHandler) resolveComment(w http.ResponseWriter, r *http.Request, post *models.Post) (*models.Comment, bool) {
	commentID, err := uuid.Parse(chi.URLParam(r, "commentID"))
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid commentID"))
		return nil, false
	}

	comment, err := h.commentRepo.FindByID(commentID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "comment", err))
		return nil, false
	}
	if comment.PostID != post.ID {
		h.responder.WriteError(w, errs.NewNotFoundError("comment not found for this post"))
		return nil, false
	}
	return comment, true
}

func validateCommentText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errs.NewValidationError("text", "text must not be empty")
	}
	if len([]rune(text)) > models.CommentMaxLength {
		return errs.NewValidationError("text", "text must be at most 500 characters")
	}
	return nil
}
