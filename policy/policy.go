// Package policy holds the authorization rules for content mutations,
// independent of any transport. Handlers map its errors straight to HTTP
// status codes through the errs package.
package policy

import (
	"github.com/google/uuid"
	"github.com/joinhub/join-backend/errs"
)

// Action is the operation a caller requests against a resource.
type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

// Caller is the identity attached to a request. Anonymous callers have
// Authenticated false and a nil ID.
type Caller struct {
	ID            uuid.UUID
	Authenticated bool
}

// Anonymous is the identity of an unauthenticated request.
var Anonymous = Caller{}

// Authorize decides whether the caller may perform the action on a resource
// owned by ownerID. Reads are open to everyone. Creates require an
// authenticated caller. Updates and deletes additionally require the caller
// to be the owner; a non-owner gets a forbidden error, never a not-found,
// so the resource's existence is not hidden.
func Authorize(caller Caller, ownerID uuid.UUID, action Action) error {
	switch action {
	case ActionRead:
		return nil
	case ActionCreate:
		if !caller.Authenticated {
			return errs.NewUnauthorizedError("authentication required")
		}
		return nil
	case ActionUpdate, ActionDelete:
		if !caller.Authenticated {
			return errs.NewUnauthorizedError("authentication required")
		}
		if caller.ID != ownerID {
			return errs.NewForbiddenError("only the author may modify this resource")
		}
		return nil
	}
	return errs.NewForbiddenError("unknown action")
}
