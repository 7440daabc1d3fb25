// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/pkg/errors"

	"github.com/danielhkuo/quickly-poll/middleware"
	"github.com/danielhkuo/quickly-poll/polls"
)

// statusFor maps a workflow error kind to its HTTP status
func statusFor(kind polls.Kind) int {
	switch kind {
	case polls.KindValidationFailed:
		return http.StatusBadRequest
	case polls.KindUnauthorized:
		return http.StatusUnauthorized
	case polls.KindForbidden:
		return http.StatusForbidden
	case polls.KindNotFound:
		return http.StatusNotFound
	case polls.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders a workflow error. Unexpected errors never leak their
// text to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := polls.KindOf(err)
	status := statusFor(kind)

	var perr *polls.Error
	if !errors.As(err, &perr) || kind == polls.KindUnexpected {
		slog.Error("unexpected error", "method", r.Method, "path", r.URL.Path, "error", err)
		middleware.ErrorResponse(w, status, "An unexpected error occurred")
		return
	}

	middleware.IssuesResponse(w, status, perr.Message, perr.Issues)
}
