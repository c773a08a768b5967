package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joinhub/join-backend/database"
	"github.com/joinhub/join-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Groups are administrator-created, so the API surface for them is
// read-only.
type groupHandler struct {
	responder Responder
	logger    zerolog.Logger
	groupRepo *database.GroupRepo
	postRepo  *database.PostRepo
}

func newGroupHandler(groupRepo *database.GroupRepo, postRepo *database.PostRepo) groupHandler {
	logger := log.With().Str("handlerName", "groupHandler").Logger()

	return groupHandler{
		responder: NewResponder(logger),
		logger:    logger,
		groupRepo: groupRepo,
		postRepo:  postRepo,
	}
}

// listGroups returns all groups.
func (h groupHandler) listGroups() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := h.groupRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "groups", err))
			return
		}

		h.responder.WriteEnvelope(w, int64(len(groups)), groups)
	}
}

// getGroup returns a single group by its slug.
func (h groupHandler) getGroup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		group, err := h.groupRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "group", err))
			return
		}

		h.responder.WriteJSON(w, group)
	}
}

// listGroupPosts returns the group feed: posts in this group, newest first.
func (h groupHandler) listGroupPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		group, err := h.groupRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "group", err))
			return
		}

		page, err := h.postRepo.FindPageByGroup(group.ID, parsePage(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "group posts", err))
			return
		}

		h.responder.WriteEnvelope(w, page.Total, newPostViews(page.Posts))
	}
}
