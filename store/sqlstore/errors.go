// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"context"
	"strconv"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/quickly-poll/store"
)

// toStoreError converts a driver failure into a *store.Error, keeping the
// driver's message so callers can pass it through.
func toStoreError(err error, op, table string) error {
	wrapped := errors.Wrapf(err, "%s %s", op, table)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		switch pqErr.Code.Class() {
		case "23":
			code = store.CodeConstraint
		case "08":
			code = store.CodeUnavailable
		}
		return &store.Error{Code: code, Message: pqErr.Message, Details: pqErr.Detail, Err: wrapped}
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := "SQLITE_" + strconv.Itoa(liteErr.Code())
		switch liteErr.Code() & 0xff {
		case sqlite3.SQLITE_CONSTRAINT:
			code = store.CodeConstraint
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN:
			code = store.CodeUnavailable
		}
		return &store.Error{Code: code, Message: liteErr.Error(), Err: wrapped}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &store.Error{Code: store.CodeUnavailable, Message: err.Error(), Err: wrapped}
	}

	return &store.Error{Code: store.CodeUnknown, Message: err.Error(), Err: wrapped}
}
