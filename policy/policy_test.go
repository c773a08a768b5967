package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/joinhub/join-backend/errs"
	"github.com/stretchr/testify/assert"
)

func TestReadsOpenToEveryone(t *testing.T) {
	owner := uuid.New()
	assert.NoError(t, Authorize(Anonymous, owner, ActionRead))
	assert.NoError(t, Authorize(Caller{ID: uuid.New(), Authenticated: true}, owner, ActionRead))
}

func TestCreateRequiresAuthentication(t *testing.T) {
	assert.Error(t, Authorize(Anonymous, uuid.Nil, ActionCreate))
	assert.NoError(t, Authorize(Caller{ID: uuid.New(), Authenticated: true}, uuid.Nil, ActionCreate))
}

func TestMutationRequiresOwnership(t *testing.T) {
	owner := Caller{ID: uuid.New(), Authenticated: true}
	stranger := Caller{ID: uuid.New(), Authenticated: true}

	assert.NoError(t, Authorize(owner, owner.ID, ActionUpdate))
	assert.NoError(t, Authorize(owner, owner.ID, ActionDelete))

	err := Authorize(stranger, owner.ID, ActionUpdate)
	assert.Error(t, err)
	assert.True(t, errs.IsForbidden(err), "non-owners get forbidden, not not-found")

	assert.Error(t, Authorize(Anonymous, owner.ID, ActionDelete))
}
