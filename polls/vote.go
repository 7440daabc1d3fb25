// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/pollutil"
	"github.com/danielhkuo/quickly-poll/store"
)

// MaxVoteAttempts bounds the compare-and-set loop in Vote
const MaxVoteAttempts = 5

// Vote adds one vote to an option of an open poll and returns the option
// with its new count.
//
// Prior votes by the same user are not checked, even for polls that do not
// allow multiple votes.
func (s *Service) Vote(ctx context.Context, pollID, optionID string) (models.PollOption, error) {
	if pollID == "" {
		return models.PollOption{}, validationFailed("Poll ID is required")
	}
	if optionID == "" {
		return models.PollOption{}, validationFailed("Validation failed",
			models.FieldError{Field: "optionId", Message: "Option ID is required"})
	}

	poll, err := s.loadPoll(ctx, pollID)
	if err != nil {
		return models.PollOption{}, err
	}

	user, err := s.currentUser(ctx)
	if err != nil {
		return models.PollOption{}, err
	}
	var userID string
	if user != nil {
		userID = user.ID
	}

	now := s.now()
	if pollutil.IsPollExpiredAt(poll, now) {
		return models.PollOption{}, conflict("Poll has expired")
	}
	if !pollutil.CanUserVoteAt(poll, userID, now) {
		return models.PollOption{}, unauthorized()
	}

	find := store.From(store.TablePollOptions).Eq("id", optionID).Eq("poll_id", pollID)
	for attempt := 1; attempt <= MaxVoteAttempts; attempt++ {
		rows, err := s.store.Select(ctx, find)
		if err != nil {
			return models.PollOption{}, persistenceFailed(storeMessage(err), err)
		}
		if len(rows) == 0 {
			return models.PollOption{}, notFound("Option not found")
		}
		option, err := optionFromRow(rows[0])
		if err != nil {
			return models.PollOption{}, unexpected(err)
		}

		// Only applies if nobody voted since the read
		cas := find.Eq("vote_count", option.VoteCount)
		patch := store.Row{
			"vote_count": option.VoteCount + 1,
			"updated_at": s.timestamp(),
		}
		updated, err := s.store.Update(ctx, cas, patch)
		if err != nil {
			slog.Error("error recording vote", "poll_id", pollID, "option_id", optionID, "error", err)
			return models.PollOption{}, persistenceFailed("Error recording vote", err)
		}
		if len(updated) > 0 {
			option, err := optionFromRow(updated[0])
			if err != nil {
				return models.PollOption{}, unexpected(err)
			}
			slog.Info("vote recorded", "poll_id", pollID, "option_id", optionID, "votes", option.VoteCount)
			return option, nil
		}

		slog.Debug("vote lost a race, retrying", "poll_id", pollID, "option_id", optionID, "attempt", attempt)
	}

	return models.PollOption{}, conflict("Vote could not be recorded, please retry")
}
