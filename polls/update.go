// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"log/slog"
	"strings"

	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/pollutil"
	"github.com/danielhkuo/quickly-poll/store"
)

// Update changes the title and description of a poll owned by the current
// user. Options are never touched.
func (s *Service) Update(ctx context.Context, id string, req models.UpdatePollRequest) (models.PollWithOptions, error) {
	if id == "" {
		return models.PollWithOptions{}, validationFailed("Poll ID is required")
	}

	user, err := s.requireUser(ctx)
	if err != nil {
		return models.PollWithOptions{}, err
	}

	patch := store.Row{"updated_at": s.timestamp()}
	if req.Title != nil {
		if issues := pollutil.ValidateTitle(*req.Title); len(issues) > 0 {
			return models.PollWithOptions{}, validationFailed("Validation failed", issues...)
		}
		patch["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}

	poll, err := s.loadPoll(ctx, id)
	if err != nil {
		return models.PollWithOptions{}, err
	}
	if poll.CreatorID != user.ID {
		return models.PollWithOptions{}, forbidden("You can only update your own polls")
	}

	q := store.From(store.TablePolls).Eq("id", id).Eq("creator_id", user.ID)
	rows, err := s.store.Update(ctx, q, patch)
	if err != nil {
		slog.Error("error updating poll", "poll_id", id, "error", err)
		return models.PollWithOptions{}, persistenceFailed("Error updating poll", err)
	}
	if len(rows) == 0 {
		// deleted since it was loaded
		return models.PollWithOptions{}, notFound("Poll not found")
	}

	updated, err := pollFromRow(rows[0])
	if err != nil {
		return models.PollWithOptions{}, unexpected(err)
	}

	options, err := s.loadOptions(ctx, id)
	if err != nil {
		slog.Error("error fetching poll options", "poll_id", id, "error", err)
		return models.PollWithOptions{}, err
	}

	slog.Info("poll updated", "poll_id", id, "user_id", user.ID)
	return models.PollWithOptions{Poll: updated, Options: options}, nil
}
