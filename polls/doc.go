// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package polls runs the poll workflows: create, read, list, update, delete,
results and voting.

# Service

A Service is built from an injected store and a way to find the caller:

	svc := polls.NewService(st, auth.ContextResolver{}, cfg.BaseURL)
	poll, err := svc.Create(ctx, req)

Every operation is a single pass over the store with no shared state
between calls.

# Create

Create checks the caller, validates the request, then writes in order:

 1. the poll row
 2. all option rows in one batch, positions 0..n-1 in input order
 3. a read-back of the new options

If the option batch fails the poll row is deleted again and the caller gets
"Error creating poll options". Cleanup failures are logged, not returned.
A failed read-back is logged and the poll is returned with no options.

There is no transaction around the two inserts. A crash between them, or a
failed cleanup, can leave a poll without options.

# Delete

Delete rejects an empty id before touching the store, requires a signed-in
caller, and only removes polls the caller created. Options are removed by
the store's ON DELETE CASCADE. Deleting a missing poll succeeds.

# Voting

Vote increments an option's count with a compare-and-set update, retrying up
to MaxVoteAttempts times when another vote lands in between. Prior votes by
the same caller are not checked.

# Errors

Every failure is an *Error with a Kind:

	switch polls.KindOf(err) {
	case polls.KindValidationFailed:
		issues := polls.IssuesOf(err)
	case polls.KindNotFound:
	}

Store failures are KindPersistenceFailed and keep the store error as their
cause.
*/
package polls
