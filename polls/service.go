// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-poll/auth"
	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/pollutil"
	"github.com/danielhkuo/quickly-poll/store"
)

// Service runs the poll workflows against an injected store. It holds no
// per-request state and is safe for concurrent use.
type Service struct {
	store   store.Store
	users   auth.Resolver
	baseURL string

	now   func() time.Time
	newID func() string
}

func NewService(st store.Store, users auth.Resolver, baseURL string) *Service {
	return &Service{
		store:   st,
		users:   users,
		baseURL: baseURL,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// timestamp is the current time as stored: UTC, microsecond precision
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// currentUser returns nil for an anonymous caller
func (s *Service) currentUser(ctx context.Context) (*models.User, error) {
	user, err := s.users.CurrentUser(ctx)
	if err != nil {
		return nil, unexpected(err)
	}
	return user, nil
}

// requireUser fails with KindUnauthorized for an anonymous caller
func (s *Service) requireUser(ctx context.Context) (*models.User, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil || user.ID == "" {
		return nil, unauthorized()
	}
	return user, nil
}

// findPoll loads one poll row; ok is false when no row matches
func (s *Service) findPoll(ctx context.Context, id string) (models.Poll, bool, error) {
	rows, err := s.store.Select(ctx, store.From(store.TablePolls).Eq("id", id))
	if err != nil {
		return models.Poll{}, false, persistenceFailed(storeMessage(err), err)
	}
	if len(rows) == 0 {
		return models.Poll{}, false, nil
	}
	poll, err := pollFromRow(rows[0])
	if err != nil {
		return models.Poll{}, false, unexpected(err)
	}
	return poll, true, nil
}

// loadPoll is findPoll with a missing row reported as KindNotFound
func (s *Service) loadPoll(ctx context.Context, id string) (models.Poll, error) {
	poll, ok, err := s.findPoll(ctx, id)
	if err != nil {
		return models.Poll{}, err
	}
	if !ok {
		return models.Poll{}, notFound("Poll not found")
	}
	return poll, nil
}

// loadOptions returns a poll's options ordered by position
func (s *Service) loadOptions(ctx context.Context, pollID string) ([]models.PollOption, error) {
	q := store.From(store.TablePollOptions).
		Eq("poll_id", pollID).
		OrderBy("position", true)

	rows, err := s.store.Select(ctx, q)
	if err != nil {
		return nil, persistenceFailed(storeMessage(err), err)
	}
	options, err := optionsFromRows(rows)
	if err != nil {
		return nil, unexpected(err)
	}
	return pollutil.SortPollOptions(options), nil
}
