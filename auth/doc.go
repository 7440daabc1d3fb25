// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth verifies session tokens and carries the current user.

# Session Tokens

Tokens are issued by the account service and signed with the shared
session secret using HMAC-SHA256:

	token := auth.GenerateSessionToken(userID, secret)
	userID, err := auth.ValidateSessionToken(token, secret)

The format is base64url(userID) "." base64url(signature), without padding.
Validation uses a constant-time comparison.

# Current User

The session middleware stores the user in the request context:

	ctx = auth.WithUser(ctx, models.User{ID: userID})
	user, ok := auth.UserFromContext(ctx)

Workflows ask a Resolver instead of reading the context directly, so tests
can substitute any principal:

	var r auth.Resolver = auth.ContextResolver{}
	user, err := r.CurrentUser(ctx) // nil user means anonymous
*/
package auth
