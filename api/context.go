package api

import (
	"context"

	"github.com/pvn-digital/initiative-catalog/auth"
	"github.com/pvn-digital/initiative-catalog/errs"
)

type keyType string

const (
	userKey    keyType = "user"
	isAdminKey keyType = "isAdmin"
)

// ctxWithUser adds the authenticated caller to the context
func ctxWithUser(ctx context.Context, user auth.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// ctxGetUser retrieves the authenticated caller from the context
func ctxGetUser(ctx context.Context) (auth.User, error) {
	user, ok := ctx.Value(userKey).(auth.User)
	if !ok || user.Email == "" {
		return auth.User{}, errs.NewMissingTokenError()
	}
	return user, nil
}

func ctxWithIsAdmin(ctx context.Context, isAdmin bool) context.Context {
	return context.WithValue(ctx, isAdminKey, isAdmin)
}

func ctxGetIsAdmin(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(isAdminKey).(bool)
	return isAdmin
}
