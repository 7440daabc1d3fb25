// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"

	"github.com/danielhkuo/quickly-poll/models"
)

type ctxKey struct{}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(ctxKey{}).(models.User)
	return user, ok
}

// Resolver looks up the current principal. A nil user with a nil error
// means the caller is anonymous.
type Resolver interface {
	CurrentUser(ctx context.Context) (*models.User, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context) (*models.User, error)

func (f ResolverFunc) CurrentUser(ctx context.Context) (*models.User, error) {
	return f(ctx)
}

// ContextResolver resolves the user placed in the request context by the
// session middleware.
type ContextResolver struct{}

func (ContextResolver) CurrentUser(ctx context.Context) (*models.User, error) {
	user, ok := UserFromContext(ctx)
	if !ok {
		return nil, nil
	}
	return &user, nil
}
