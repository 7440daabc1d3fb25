// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollutil

import (
	"math"

	"github.com/danielhkuo/quickly-poll/models"
)

// round2 rounds half away from zero to two decimal places
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// percentOf is zero when total is zero so NaN and Inf never escape
func percentOf(votes, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(votes) / float64(total) * 100)
}

// GetPollTotalVotes sums the vote counts of every option.
func GetPollTotalVotes(poll models.PollWithOptions) int {
	total := 0
	for _, opt := range poll.Options {
		total += opt.VoteCount
	}
	return total
}

// CalculatePollResults returns each option with its votes and its share of
// the total as a percentage rounded to two decimals.
func CalculatePollResults(poll models.PollWithOptions) []models.OptionResult {
	total := GetPollTotalVotes(poll)

	results := make([]models.OptionResult, 0, len(poll.Options))
	for _, opt := range poll.Options {
		results = append(results, models.OptionResult{
			PollOption: opt,
			Votes:      opt.VoteCount,
			Percentage: percentOf(opt.VoteCount, total),
		})
	}
	return results
}

// GetPollAnalytics summarizes a poll. MostPopular is nil when the poll has no
// options; on ties the earliest option wins.
func GetPollAnalytics(poll models.PollWithOptions) models.PollAnalytics {
	total := GetPollTotalVotes(poll)
	analytics := models.PollAnalytics{
		TotalVotes:   total,
		TotalOptions: len(poll.Options),
	}

	if len(poll.Options) == 0 {
		return analytics
	}

	best := poll.Options[0]
	for _, opt := range poll.Options[1:] {
		if opt.VoteCount > best.VoteCount {
			best = opt
		}
	}

	analytics.MostPopular = &models.PopularOption{
		Text:       best.Text,
		Votes:      best.VoteCount,
		Percentage: percentOf(best.VoteCount, total),
	}
	analytics.AverageVotesPerOption = round2(float64(total) / float64(len(poll.Options)))

	return analytics
}
