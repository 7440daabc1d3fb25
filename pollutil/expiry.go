// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollutil

import (
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-poll/models"
)

// IsPollExpired reports whether the poll's expiry has passed.
func IsPollExpired(poll models.Poll) bool {
	return IsPollExpiredAt(poll, time.Now())
}

// IsPollExpiredAt reports whether the expiry is strictly before now.
// A poll without an expiry never expires.
func IsPollExpiredAt(poll models.Poll, now time.Time) bool {
	if poll.ExpiresAt == nil {
		return false
	}
	return poll.ExpiresAt.Before(now)
}

func IsPollActive(poll models.Poll) bool {
	return !IsPollExpired(poll)
}

func IsPollActiveAt(poll models.Poll, now time.Time) bool {
	return !IsPollExpiredAt(poll, now)
}

// GetPollStatus returns StatusExpired or StatusActive.
func GetPollStatus(poll models.Poll) string {
	return GetPollStatusAt(poll, time.Now())
}

func GetPollStatusAt(poll models.Poll, now time.Time) string {
	if IsPollExpiredAt(poll, now) {
		return models.StatusExpired
	}
	return models.StatusActive
}

// CanUserVote reports whether a vote may be cast. An empty userID means an
// anonymous caller. Prior votes by the same user are not considered.
func CanUserVote(poll models.Poll, userID string) bool {
	return CanUserVoteAt(poll, userID, time.Now())
}

func CanUserVoteAt(poll models.Poll, userID string, now time.Time) bool {
	if IsPollExpiredAt(poll, now) {
		return false
	}
	if !poll.IsPublic && userID == "" {
		return false
	}
	return true
}

var expiryUnits = []struct {
	size  time.Duration
	label string
}{
	{24 * time.Hour, "day"},
	{time.Hour, "hour"},
	{time.Minute, "minute"},
}

// GetTimeUntilExpiry renders the remaining time as the largest whole unit,
// e.g. "2 days" or "1 hour". It returns nil when the poll has no expiry.
func GetTimeUntilExpiry(poll models.Poll) *string {
	return GetTimeUntilExpiryAt(poll, time.Now())
}

func GetTimeUntilExpiryAt(poll models.Poll, now time.Time) *string {
	if poll.ExpiresAt == nil {
		return nil
	}

	var s string
	diff := poll.ExpiresAt.Sub(now)
	if diff <= 0 {
		s = "Expired"
		return &s
	}

	for _, unit := range expiryUnits {
		if n := int64(diff / unit.size); n > 0 {
			s = fmt.Sprintf("%d %s", n, unit.label)
			if n > 1 {
				s += "s"
			}
			return &s
		}
	}

	s = "Less than a minute"
	return &s
}
