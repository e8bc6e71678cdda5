// Package auth resolves the authenticated user from a bearer token and
// makes it available to handlers through the request context. Downstream
// code never touches tokens; it only sees the resolved CurrentUser.
package auth

import (
	"context"
	"strings"
)

const RoleAdmin = "admin"

// CurrentUser is the identity resolved from an authenticated request.
type CurrentUser struct {
	ID   string
	Role string
}

func (u CurrentUser) IsAdmin() bool {
	return strings.EqualFold(strings.TrimSpace(u.Role), RoleAdmin)
}

type ctxKeyCurrentUser struct{}

// WithCurrentUser injects the resolved user into ctx. Useful for testing.
func WithCurrentUser(ctx context.Context, u CurrentUser) context.Context {
	return context.WithValue(ctx, ctxKeyCurrentUser{}, u)
}

func CurrentUserFromContext(ctx context.Context) (CurrentUser, bool) {
	u, ok := ctx.Value(ctxKeyCurrentUser{}).(CurrentUser)
	return u, ok && u.ID != ""
}
