// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-poll/auth"
	"github.com/danielhkuo/quickly-poll/models"
)

// SessionCookie is the cookie checked when no Authorization header is sent
const SessionCookie = "session"

// WithSession attaches the session user to the request context.
// Requests without a valid token continue anonymously.
func WithSession(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := auth.ValidateSessionToken(token, secret)
			if err != nil {
				slog.Warn("ignoring invalid session token",
					"path", r.URL.Path,
					"remote", GetClientIP(r),
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.WithUser(r.Context(), models.User{ID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionToken reads a bearer token, then the session cookie
func sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}

	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}
