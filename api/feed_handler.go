package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joinhub/join-backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type feedHandler struct {
	responder  Responder
	logger     zerolog.Logger
	postRepo   *database.PostRepo
	userRepo   *database.UserRepo
	followRepo *database.FollowRepo
}

func newFeedHandler(postRepo *database.PostRepo, userRepo *database.UserRepo, followRepo *database.FollowRepo) feedHandler {
	logger := log.With().Str("handlerName", "feedHandler").Logger()

	return feedHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		postRepo:   postRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// subscriptionFeed returns posts by the authors the caller follows, newest
// first. Auth is enforced by the route middleware.
func (h feedHandler) subscriptionFeed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := callerFromCtx(r.Context())

		page, err := h.postRepo.FindPageBySubscriptions(caller.ID, parsePage(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "feed", err))
			return
		}

		h.responder.WriteEnvelope(w, page.Total, newPostViews(page.Posts))
	}
}

// profileResponse is the author feed plus whether the viewer follows them.
type profileResponse struct {
	Author    string     `json:"author"`
	Following bool       `json:"following"`
	Count     int64      `json:"count"`
	Response  []PostView `json:"response"`
}

// profile returns an author's posts and reports whether the viewing user
// currently follows them. Anonymous viewers always get following=false.
func (h feedHandler) profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		author, err := h.userRepo.FindByUsername(chi.URLParam(r, "username"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}

		page, err := h.postRepo.FindPageByAuthor(author.ID, parsePage(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile posts", err))
			return
		}

		following := false
		if caller := callerFromCtx(r.Context()); caller.Authenticated {
			following, err = h.followRepo.IsFollowing(caller.ID, author.ID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "follow", err))
				return
			}
		}

		h.responder.WriteJSON(w, profileResponse{
			Author:    author.Username,
			Following: following,
			Count:     page.Total,
			Response:  newPostViews(page.Posts),
		})
	}
}
