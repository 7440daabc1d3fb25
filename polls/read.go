// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"log/slog"
	"math"

	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/pollutil"
	"github.com/danielhkuo/quickly-poll/store"
)

// List paging limits
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Get returns a poll merged with its options in position order.
func (s *Service) Get(ctx context.Context, id string) (models.PollWithOptions, error) {
	if id == "" {
		return models.PollWithOptions{}, validationFailed("Poll ID is required")
	}

	poll, err := s.loadPoll(ctx, id)
	if err != nil {
		return models.PollWithOptions{}, err
	}

	options, err := s.loadOptions(ctx, id)
	if err != nil {
		slog.Error("error fetching poll options", "poll_id", id, "error", err)
		return models.PollWithOptions{}, err
	}

	return models.PollWithOptions{Poll: poll, Options: options}, nil
}

// List returns public polls, newest first, skipping the first skip polls.
func (s *Service) List(ctx context.Context, skip, limit int) ([]models.PollWithOptions, error) {
	var issues []models.FieldError
	limitOK := limit >= 1 && limit <= MaxLimit
	switch {
	case skip < 0:
		issues = append(issues, models.FieldError{Field: "skip", Message: "Skip must not be negative"})
	case limitOK && skip > math.MaxInt-limit:
		// The last row index must stay representable
		issues = append(issues, models.FieldError{Field: "skip", Message: "Skip is too large"})
	}
	if !limitOK {
		issues = append(issues, models.FieldError{Field: "limit", Message: "Limit must be between 1 and 100"})
	}
	if len(issues) > 0 {
		return nil, validationFailed("Invalid pagination", issues...)
	}

	q := store.From(store.TablePolls).
		Eq("is_public", true).
		OrderBy("created_at", false).
		OrderBy("id", true).
		Limit(skip, skip+limit-1)

	rows, err := s.store.Select(ctx, q)
	if err != nil {
		slog.Error("error listing polls", "error", err)
		return nil, persistenceFailed(storeMessage(err), err)
	}

	polls := make([]models.PollWithOptions, 0, len(rows))
	for _, r := range rows {
		poll, err := pollFromRow(r)
		if err != nil {
			return nil, unexpected(err)
		}
		options, err := s.loadOptions(ctx, poll.ID)
		if err != nil {
			slog.Error("error fetching poll options", "poll_id", poll.ID, "error", err)
			return nil, err
		}
		polls = append(polls, models.PollWithOptions{Poll: poll, Options: options})
	}
	return polls, nil
}

// Results returns the derived vote results for a poll. Private polls are
// visible to their creator only.
func (s *Service) Results(ctx context.Context, id string) (models.ResultsResponse, error) {
	poll, err := s.Get(ctx, id)
	if err != nil {
		return models.ResultsResponse{}, err
	}

	if !poll.IsPublic {
		user, err := s.currentUser(ctx)
		if err != nil {
			return models.ResultsResponse{}, err
		}
		if user == nil || user.ID != poll.CreatorID {
			return models.ResultsResponse{}, forbidden("This poll is private")
		}
	}

	now := s.now()
	return models.ResultsResponse{
		Poll:            poll,
		Results:         pollutil.CalculatePollResults(poll),
		Analytics:       pollutil.GetPollAnalytics(poll),
		Status:          pollutil.GetPollStatusAt(poll.Poll, now),
		TimeUntilExpiry: pollutil.GetTimeUntilExpiryAt(poll.Poll, now),
		ShareText:       pollutil.GeneratePollShareText(s.baseURL, poll.Poll),
		URLs:            pollutil.PollURLs(s.baseURL, poll.ID),
	}, nil
}
