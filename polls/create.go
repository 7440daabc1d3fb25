// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/pollutil"
	"github.com/danielhkuo/quickly-poll/store"
)

// Create validates req and persists a poll with its options for the
// current user.
//
// The poll row is written before any option row. If the option batch fails
// the poll row is deleted again, so a failed create leaves nothing behind
// unless that cleanup fails too. A failure reading the options back does not
// fail the create; the poll is returned with no options.
func (s *Service) Create(ctx context.Context, req models.CreatePollRequest) (models.PollWithOptions, error) {
	user, err := s.requireUser(ctx)
	if err != nil {
		return models.PollWithOptions{}, err
	}

	now := s.timestamp()
	texts, issues := pollutil.ValidateCreatePoll(req, now)
	if len(issues) > 0 {
		return models.PollWithOptions{}, validationFailed("Validation failed", issues...)
	}

	poll := models.Poll{
		ID:                 s.newID(),
		Title:              strings.TrimSpace(req.Title),
		Description:        req.Description,
		CreatorID:          user.ID,
		AllowMultipleVotes: req.AllowMultipleVotes,
		IsPublic:           req.IsPublic == nil || *req.IsPublic,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if req.ExpiresAt != nil {
		expires := req.ExpiresAt.UTC().Truncate(time.Microsecond)
		poll.ExpiresAt = &expires
	}

	if _, err := s.store.Insert(ctx, store.TablePolls, []store.Row{pollRow(poll)}); err != nil {
		slog.Error("error creating poll", "creator_id", user.ID, "error", err)
		return models.PollWithOptions{}, persistenceFailed("Error creating poll", err)
	}

	// Positions follow input order after cleaning
	rows := make([]store.Row, len(texts))
	for i, text := range texts {
		rows[i] = optionRow(models.PollOption{
			ID:        s.newID(),
			PollID:    poll.ID,
			Text:      text,
			Position:  i,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if _, err := s.store.Insert(ctx, store.TablePollOptions, rows); err != nil {
		slog.Error("error creating poll options", "poll_id", poll.ID, "error", err)
		s.removePoll(ctx, poll.ID)
		return models.PollWithOptions{}, persistenceFailed("Error creating poll options", err)
	}

	options, err := s.createdOptions(ctx, poll.ID)
	if err != nil {
		slog.Error("error fetching created poll options", "poll_id", poll.ID, "error", err)
		options = []models.PollOption{}
	}

	slog.Info("poll created", "poll_id", poll.ID, "creator_id", user.ID, "options", len(texts))

	return models.PollWithOptions{Poll: poll, Options: options}, nil
}

// removePoll is the compensating delete for a half-created poll. It runs
// even if ctx was canceled, and its failure is only logged.
func (s *Service) removePoll(ctx context.Context, pollID string) {
	ctx = context.WithoutCancel(ctx)
	if err := s.store.Delete(ctx, store.From(store.TablePolls).Eq("id", pollID)); err != nil {
		slog.Warn("compensating poll delete failed", "poll_id", pollID, "error", err)
		return
	}
	slog.Info("removed poll after failed option insert", "poll_id", pollID)
}

// createdOptions reads back the id, text and position of each new option
func (s *Service) createdOptions(ctx context.Context, pollID string) ([]models.PollOption, error) {
	q := store.From(store.TablePollOptions).
		Select("id", "text", "position").
		Eq("poll_id", pollID).
		OrderBy("position", true)

	rows, err := s.store.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	options, err := optionsFromRows(rows)
	if err != nil {
		return nil, err
	}
	for i := range options {
		options[i].PollID = pollID
	}
	return options, nil
}
