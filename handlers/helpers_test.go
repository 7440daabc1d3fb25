// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/danielhkuo/quickly-poll/auth"
	"github.com/danielhkuo/quickly-poll/cliparse"
	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/polls"
	"github.com/danielhkuo/quickly-poll/store/sqlstore"
	"github.com/danielhkuo/quickly-poll/testutil"
)

// setupService returns a poll service over a fresh SQLite test database
func setupService(t *testing.T) (*polls.Service, *sqlstore.Store, cliparse.Config) {
	t.Helper()

	st := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	svc := polls.NewService(st, auth.ContextResolver{}, cfg.BaseURL)
	return svc, st, cfg
}

// asUser attaches a signed-in user to the request, as the session
// middleware would
func asUser(req *http.Request, userID string) *http.Request {
	if userID == "" {
		return req
	}
	return req.WithContext(auth.WithUser(req.Context(), models.User{ID: userID}))
}
