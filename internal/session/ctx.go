package session

import (
	"context"

	"github.com/and161185/medidesk/internal/model"
)

type ctxKey string

const identityKey ctxKey = "md.identity"

// WithIdentity stores the authenticated Identity in ctx.
func WithIdentity(ctx context.Context, id model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromCtx fetches the Identity stored by WithIdentity.
func IdentityFromCtx(ctx context.Context) (model.Identity, bool) {
	id, ok := ctx.Value(identityKey).(model.Identity)
	return id, ok
}
