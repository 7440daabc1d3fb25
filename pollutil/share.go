// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollutil

import (
	"strings"

	"github.com/danielhkuo/quickly-poll/models"
)

// FormatPollURL builds the absolute URL of a poll page. Unknown kinds fall
// back to the vote page.
func FormatPollURL(baseURL, pollID, kind string) string {
	var path string
	switch kind {
	case models.URLView:
		path = "/polls/" + pollID
	case models.URLResults:
		path = "/polls/" + pollID + "/results"
	default:
		path = "/vote/" + pollID
	}
	return strings.TrimRight(baseURL, "/") + path
}

// PollURLs returns all three page URLs for a poll.
func PollURLs(baseURL, pollID string) models.PollURLs {
	return models.PollURLs{
		Vote:    FormatPollURL(baseURL, pollID, models.URLVote),
		View:    FormatPollURL(baseURL, pollID, models.URLView),
		Results: FormatPollURL(baseURL, pollID, models.URLResults),
	}
}

func GeneratePollShareText(baseURL string, poll models.Poll) string {
	return "Vote on: " + poll.Title + " - " + FormatPollURL(baseURL, poll.ID, models.URLVote)
}
