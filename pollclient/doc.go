// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pollclient is a read-only HTTP client for the Quickly Poll API.

	c := pollclient.New("http://localhost:3318")
	polls, err := c.ListPolls(ctx, 0, 10)
	results, err := c.GetResults(ctx, polls[0].ID)

Requests are retried through pester on network failures and 5xx responses:
one initial attempt and up to three retries, waiting 1s, 2s and 4s. 4xx
responses are returned at once as a *StatusError carrying the API message.
*/
package pollclient
