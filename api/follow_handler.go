package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/joinhub/join-backend/database"
	"github.com/joinhub/join-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type followHandler struct {
	responder  Responder
	logger     zerolog.Logger
	followRepo *database.FollowRepo
	userRepo   *database.UserRepo
}

func newFollowHandler(followRepo *database.FollowRepo, userRepo *database.UserRepo) followHandler {
	logger := log.With().Str("handlerName", "followHandler").Logger()

	return followHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// listFollows returns the caller's subscriptions, optionally narrowed by
// ?search= over the followed usernames.
func (h followHandler) listFollows() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := callerFromCtx(r.Context())

		follows, err := h.followRepo.FindByUser(caller.ID, r.URL.Query().Get("search"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "follows", err))
			return
		}

		user, err := h.userRepo.FindByID(caller.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}

		views := make([]FollowView, 0, len(follows))
		for _, follow := range follows {
			views = append(views, FollowView{
				User:   user.Username,
				Author: follow.Author.Username,
			})
		}
		h.responder.WriteEnvelope(w, int64(len(views)), views)
	}
}

// createFollow subscribes the caller to the author named in the payload.
// Following yourself is rejected with a dedicated error; following the same
// author twice is a quiet success.
func (h followHandler) createFollow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := callerFromCtx(r.Context())

		var req followRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("follow request"))
			return
		}
		if err := requireNotBlank("author", req.Author); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		author, err := h.userRepo.FindByUsername(strings.TrimSpace(req.Author))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "author", err))
			return
		}

		if err := h.followRepo.Follow(caller.ID, author.ID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByID(caller.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, FollowView{
			User:   user.Username,
			Author: author.Username,
		})
	}
}

// deleteFollow removes the caller's subscription to the named author.
// Unsubscribing when no subscription exists is still a success.
func (h followHandler) deleteFollow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := callerFromCtx(r.Context())

		author, err := h.userRepo.FindByUsername(chi.URLParam(r, "username"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "author", err))
			return
		}

		if err := h.followRepo.Unfollow(caller.ID, author.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "follow", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
