// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store defines the row-level data-access port used by the poll
workflows.

# Queries

A Query is an immutable description of which rows to touch:

	q := store.From(store.TablePolls).
		Select("id", "title").
		Eq("is_public", true).
		OrderBy("created_at", false).
		Limit(0, 9)

Builder methods return new values, so a base query can be shared and
extended freely. Filters are equality only.

# Implementations

  - sqlstore: PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite)
  - memstore: in-memory, with failure injection for tests

Failures reported by the store are *store.Error values carrying a code,
message and optional details.
*/
package store
