// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"errors"
	"testing"

	"github.com/danielhkuo/quickly-poll/auth"
	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/store"
	"github.com/danielhkuo/quickly-poll/store/memstore"
)

func TestDelete(t *testing.T) {
	svc, st := newTestService(t, "user-123")
	seedPoll(st, models.Poll{ID: "p1", Title: "Mine", CreatorID: "user-123", IsPublic: true}, 1, 2)
	seedPoll(st, models.Poll{ID: "p2", Title: "Other", CreatorID: "user-123", IsPublic: true}, 0, 0)

	if err := svc.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	polls := st.Rows(store.TablePolls)
	if len(polls) != 1 || polls[0]["id"] != "p2" {
		t.Errorf("expected only p2 to remain, got %v", polls)
	}

	// Options follow through the cascade
	for _, r := range st.Rows(store.TablePollOptions) {
		if r["poll_id"] == "p1" {
			t.Errorf("option %v of deleted poll remains", r["id"])
		}
	}
	if len(st.Rows(store.TablePollOptions)) != 2 {
		t.Errorf("expected p2 options to remain")
	}
}

func TestDelete_EmptyID(t *testing.T) {
	resolved := false
	st := memstore.New()
	svc := NewService(st, auth.ResolverFunc(func(ctx context.Context) (*models.User, error) {
		resolved = true
		return &models.User{ID: "user-123"}, nil
	}), testBaseURL)

	err := svc.Delete(context.Background(), "")
	assertKind(t, err, KindValidationFailed)
	assertMessage(t, err, "Poll ID is required")

	if len(st.Calls()) != 0 {
		t.Errorf("expected zero store calls, got %d", len(st.Calls()))
	}
	if resolved {
		t.Error("expected no user lookup")
	}
}

func TestDelete_Unauthenticated(t *testing.T) {
	svc, st := newTestService(t, "")
	seedPoll(st, models.Poll{ID: "p1", Title: "Mine", CreatorID: "user-123"}, 0, 0)

	err := svc.Delete(context.Background(), "p1")
	assertKind(t, err, KindUnauthorized)

	if len(st.Calls()) != 0 {
		t.Errorf("expected zero store calls, got %d", len(st.Calls()))
	}
}

func TestDelete_ResolverFailure(t *testing.T) {
	svc, st := newTestService(t, "")
	seedPoll(st, models.Poll{ID: "p1", Title: "Mine", CreatorID: "user-123"}, 0, 0)
	svc.users = auth.ResolverFunc(func(ctx context.Context) (*models.User, error) {
		return nil, errors.New("network down")
	})

	err := svc.Delete(context.Background(), "p1")
	assertKind(t, err, KindPersistenceFailed)
	assertMessage(t, err, "network down")

	if len(st.Calls()) != 0 {
		t.Errorf("expected zero store calls, got %d", len(st.Calls()))
	}
	if n := len(st.Rows(store.TablePolls)); n != 1 {
		t.Errorf("poll should remain, found %d rows", n)
	}
}

func TestDelete_NotOwner(t *testing.T) {
	svc, st := newTestService(t, "intruder")
	seedPoll(st, models.Poll{ID: "p1", Title: "Mine", CreatorID: "user-123"}, 0, 0)

	err := svc.Delete(context.Background(), "p1")
	assertKind(t, err, KindForbidden)

	if countCalls(st, memstore.OpDelete, store.TablePolls) != 0 {
		t.Error("ownership check must precede the delete")
	}
	if len(st.Rows(store.TablePolls)) != 1 {
		t.Error("expected poll to remain")
	}
}

func TestDelete_Missing(t *testing.T) {
	svc, _ := newTestService(t, "user-123")

	// Deleting nothing is still a success
	if err := svc.Delete(context.Background(), "does-not-exist"); err != nil {
		t.Errorf("expected success, got %v", err)
	}
}

func TestDelete_StoreFailure(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		err     error
		message string
	}{
		{
			name:    "lookup fails",
			op:      memstore.OpSelect,
			err:     &store.Error{Code: store.CodeUnavailable, Message: "connection refused"},
			message: "connection refused",
		},
		{
			name:    "delete fails",
			op:      memstore.OpDelete,
			err:     &store.Error{Code: store.CodeConstraint, Message: "permission denied for table polls"},
			message: "permission denied for table polls",
		},
		{
			name:    "network error",
			op:      memstore.OpDelete,
			err:     errors.New("Network error"),
			message: "Network error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st := newTestService(t, "user-123")
			seedPoll(st, models.Poll{ID: "p1", Title: "Mine", CreatorID: "user-123"}, 0, 0)
			st.FailOn(tt.op, store.TablePolls, tt.err)

			err := svc.Delete(context.Background(), "p1")
			assertKind(t, err, KindPersistenceFailed)
			assertMessage(t, err, tt.message)
		})
	}
}

func TestDelete_Panic(t *testing.T) {
	svc, st := newTestService(t, "user-123")
	seedPoll(st, models.Poll{ID: "p1", Title: "Mine", CreatorID: "user-123"}, 0, 0)
	st.OnCall(func(c memstore.Call) {
		if c.Op == memstore.OpDelete {
			panic("connection reset by peer")
		}
	})

	err := svc.Delete(context.Background(), "p1")
	assertKind(t, err, KindPersistenceFailed)
	assertMessage(t, err, "connection reset by peer")
}
