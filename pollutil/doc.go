// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pollutil holds the pure poll logic: option cleaning, schema
validation, and values derived from a poll snapshot at read time.

# Validation

	cleaned := pollutil.ValidatePollOptions([]string{" Yes", "yes", "No"}) // ["Yes", "No"]
	options, issues := pollutil.ValidateCreatePoll(req, time.Now())

ValidateCreatePoll reports every violation as a models.FieldError.

# Derived State

	total := pollutil.GetPollTotalVotes(poll)
	results := pollutil.CalculatePollResults(poll)
	analytics := pollutil.GetPollAnalytics(poll)

Percentages and averages are rounded half away from zero to two decimals.
A poll with no votes yields 0% for every option.

Expiry helpers come in two forms: one that reads the wall clock and an At
variant taking an explicit time for deterministic callers.

	status := pollutil.GetPollStatusAt(poll.Poll, now) // "active" or "expired"
	left := pollutil.GetTimeUntilExpiryAt(poll.Poll, now) // "2 days", "Expired", nil
*/
package pollutil
