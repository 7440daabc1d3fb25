// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Poll API.

# Handler Types

Each handler is a thin struct over the poll service:

  - PollHandler: Poll lifecycle (create, list, get, update, delete)
  - VotingHandler: Vote counting
  - ResultsHandler: Results, analytics and share data

Handlers are created via constructor functions that accept *polls.Service:

	pollHandler := handlers.NewPollHandler(svc)

# Poll Lifecycle

	POST   /polls      → CreatePoll (signed-in users only)
	GET    /polls      → ListPolls (public polls, ?skip=&limit=)
	GET    /polls/{id} → GetPoll
	PUT    /polls/{id} → UpdatePoll (creator only)
	DELETE /polls/{id} → DeletePoll (creator only)

# Voting and Results

	POST /polls/{id}/vote    → Vote
	GET  /polls/{id}/results → GetResults

Anonymous users may vote on public polls. Results of private polls are
visible to their creator only.

# Errors

Workflow errors map to status codes:

	validation_failed  → 400 (with field issues)
	unauthorized       → 401
	forbidden          → 403
	not_found          → 404
	conflict           → 409
	persistence_failed → 500
	unexpected         → 500 (generic message)

The signed-in user comes from the request context, populated by
middleware.WithSession.
*/
package handlers
