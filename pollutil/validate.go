// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollutil

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danielhkuo/quickly-poll/models"
)

// ValidatePollOptions trims each option, drops blanks, and removes
// case-insensitive duplicates. The first spelling of a duplicate wins and
// relative order is preserved. It never fails; callers check the length.
func ValidatePollOptions(options []string) []string {
	seen := make(map[string]bool, len(options))
	cleaned := make([]string, 0, len(options))

	for _, opt := range options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		key := strings.ToLower(opt)
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, opt)
	}

	return cleaned
}

// ValidateTitle returns the issues for a poll title, or nil.
func ValidateTitle(title string) []models.FieldError {
	if strings.TrimSpace(title) == "" {
		return []models.FieldError{{Field: "title", Message: "Title is required"}}
	}
	if utf8.RuneCountInString(title) > models.MaxTitleLength {
		return []models.FieldError{{Field: "title", Message: "Title too long"}}
	}
	return nil
}

// ValidateCreatePoll checks a create request against the poll schema.
// Every violation is collected rather than stopping at the first. On success
// the cleaned option list is returned along with a nil issue slice.
func ValidateCreatePoll(req models.CreatePollRequest, now time.Time) ([]string, []models.FieldError) {
	issues := ValidateTitle(req.Title)

	for i, opt := range req.Options {
		if strings.TrimSpace(opt) == "" {
			issues = append(issues, models.FieldError{
				Field:   fmt.Sprintf("options[%d]", i),
				Message: "Option cannot be empty",
			})
		}
	}

	cleaned := ValidatePollOptions(req.Options)
	if len(cleaned) < models.MinOptions {
		issues = append(issues, models.FieldError{
			Field:   "options",
			Message: "At least 2 options required",
		})
	}

	if req.ExpiresAt != nil && !req.ExpiresAt.After(now) {
		issues = append(issues, models.FieldError{
			Field:   "expiresAt",
			Message: "Expiry must be in the future",
		})
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return cleaned, nil
}

// SortPollOptions returns a copy of options ordered by position.
func SortPollOptions(options []models.PollOption) []models.PollOption {
	sorted := make([]models.PollOption, len(options))
	copy(sorted, options)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return sorted
}
