package api

import (
	"context"

	"github.com/joinhub/join-backend/policy"
)

type keyType string

const callerKey keyType = "caller"

// ctxWithCaller adds the authenticated caller identity to the context
func ctxWithCaller(ctx context.Context, caller policy.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// callerFromCtx retrieves the caller identity from the context. Requests
// that never passed authentication resolve to the anonymous caller.
func callerFromCtx(ctx context.Context) policy.Caller {
	if v := ctx.Value(callerKey); v != nil {
		if caller, ok := v.(policy.Caller); ok {
			return caller
		}
	}
	return policy.Anonymous
}
