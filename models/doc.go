// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, description, options, allowMultipleVotes, expiresAt, isPublic
  - UpdatePollRequest: title, description
  - VoteRequest: optionId

# Response Types

Types for JSON responses:

  - PollResponse: poll (with options)
  - ListPollsResponse: polls
  - ResultsResponse: poll, results, analytics, status, share data
  - VoteResponse: option with its new vote count
  - MessageResponse: message
  - ErrorResponse: error, message, issues

# Domain Types

Stored records:

  - Poll: poll metadata, visibility and expiry
  - PollOption: one choice, ordered by position, with its vote count
  - PollWithOptions: a poll merged with its options

Derived at read time:

  - OptionResult: option with votes and percentage
  - PollAnalytics: totals, most popular option, average votes per option

# Constants

Status values:

	StatusActive  = "active"
	StatusExpired = "expired"

URL kinds:

	URLVote    = "vote"
	URLView    = "view"
	URLResults = "results"
*/
package models
