// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/quickly-poll/store"
)

// Delete removes a poll owned by the current user. Options go with it
// through the store's cascade. Deleting a poll that does not exist
// succeeds.
func (s *Service) Delete(ctx context.Context, id string) (err error) {
	if id == "" {
		return validationFailed("Poll ID is required")
	}

	// Any panic below the store boundary is a failed delete
	defer func() {
		if r := recover(); r != nil {
			slog.Error("poll delete panicked", "poll_id", id, "panic", r)
			err = persistenceFailed(fmt.Sprint(r), nil)
		}
	}()

	// A failed lookup is a failed delete, not an unexpected error
	user, err := s.users.CurrentUser(ctx)
	if err != nil {
		slog.Error("error resolving user for delete", "poll_id", id, "error", err)
		return persistenceFailed(err.Error(), err)
	}
	if user == nil || user.ID == "" {
		return unauthorized()
	}

	rows, err := s.store.Select(ctx, store.From(store.TablePolls).Select("creator_id").Eq("id", id))
	if err != nil {
		slog.Error("error loading poll for delete", "poll_id", id, "error", err)
		return persistenceFailed(storeMessage(err), err)
	}
	if len(rows) == 0 {
		return nil
	}
	poll, err := pollFromRow(rows[0])
	if err != nil {
		return persistenceFailed(err.Error(), err)
	}
	if poll.CreatorID != user.ID {
		return forbidden("You can only delete your own polls")
	}

	if err := s.store.Delete(ctx, store.From(store.TablePolls).Eq("id", id)); err != nil {
		slog.Error("error deleting poll", "poll_id", id, "error", err)
		return persistenceFailed(storeMessage(err), err)
	}

	slog.Info("poll deleted", "poll_id", id, "user_id", user.ID)
	return nil
}
