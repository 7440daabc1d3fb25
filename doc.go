// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Poll API server.

Quickly Poll is a simple polling service: signed-in users create polls with
two or more options, anyone may vote on public polls, and results come with
percentages, analytics and share links.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=polls.db SESSION_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." --session-secret ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - SESSION_SECRET (--session-secret): Secret for session token HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - APP_URL (--base-url): Public app URL for share links

# Architecture

The server uses a handler-based architecture with dependency injection:

  - polls: Poll workflows (create, delete with compensation, vote, results)
  - pollutil: Validation and derived poll state
  - store: Persistence port, with sqlstore and memstore implementations
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, sessions, recovery, JSON helpers
  - models: Request/response types
  - auth: Session tokens and the current user
  - db: Connection and schema creation
  - cliparse: Configuration parsing
  - pollclient, cmd/pollcli: HTTP client and command-line reader

See package documentation for each component.
*/
package main
