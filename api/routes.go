package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joinhub/join-backend/pagecache"
	"github.com/joinhub/join-backend/policy"
)

// setupRoutes wires the /api/v1 surface. The lunch-break throttle guards
// the posts endpoints only; the page cache covers the public feed listing.
func setupRoutes(
	r chi.Router,
	handlers *routeHandlers,
	auth authMiddleware,
	throttle *policy.LunchBreakThrottle,
	cache pagecache.Cache,
) {
	throttled := throttleMiddleware(throttle)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Account provisioning and token exchange
		r.Post("/signup", handlers.authHandler.signup())
		r.Post("/api-token-auth", handlers.authHandler.obtainToken())

		// Public reads: anonymous allowed, identity attached when present
		r.Group(func(r chi.Router) {
			r.Use(auth.identify)

			r.With(throttled, cacheMiddleware(cache)).
				Get("/posts", handlers.postHandler.listPosts())
			r.With(throttled).Get("/posts/{postID}", handlers.postHandler.getPost())

			r.Get("/groups", handlers.groupHandler.listGroups())
			r.Get("/groups/{slug}", handlers.groupHandler.getGroup())
			r.Get("/groups/{slug}/posts", handlers.groupHandler.listGroupPosts())

			r.Get("/posts/{postID}/comments", handlers.commentHandler.listComments())
			r.Get("/posts/{postID}/comments/{commentID}", handlers.commentHandler.getComment())

			r.Get("/tags", handlers.postHandler.listTags())

			r.Get("/profile/{username}", handlers.feedHandler.profile())
		})

		// Mutations and personal feeds: a valid token is mandatory
		r.Group(func(r chi.Router) {
			r.Use(auth.authenticate)

			r.With(throttled).Post("/posts", handlers.postHandler.createPost())
			r.With(throttled).Put("/posts/{postID}", handlers.postHandler.updatePost(false))
			r.With(throttled).Patch("/posts/{postID}", handlers.postHandler.updatePost(true))
			r.With(throttled).Delete("/posts/{postID}", handlers.postHandler.deletePost())

			r.Post("/posts/{postID}/comments", handlers.commentHandler.createComment())
			r.Put("/posts/{postID}/comments/{commentID}", handlers.commentHandler.updateComment())
			r.Delete("/posts/{postID}/comments/{commentID}", handlers.commentHandler.deleteComment())

			r.Get("/follow", handlers.followHandler.listFollows())
			r.Post("/follow", handlers.followHandler.createFollow())
			r.Delete("/follow/{username}", handlers.followHandler.deleteFollow())

			r.Get("/feed", handlers.feedHandler.subscriptionFeed())
		})
	})
}
