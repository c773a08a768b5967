package api

import (
	"github.com/joinhub/join-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, tokens tokenManager) *routeHandlers {
	return &routeHandlers{
		authHandler:    newAuthHandler(database.UserRepo(), tokens),
		postHandler:    newPostHandler(database.PostRepo(), database.GroupRepo(), database.TagRepo()),
		groupHandler:   newGroupHandler(database.GroupRepo(), database.PostRepo()),
		commentHandler: newCommentHandler(database.CommentRepo(), database.PostRepo()),
		followHandler:  newFollowHandler(database.FollowRepo(), database.UserRepo()),
		feedHandler:    newFeedHandler(database.PostRepo(), database.UserRepo(), database.FollowRepo()),
	}
}
