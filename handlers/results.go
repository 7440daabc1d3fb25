// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-poll/middleware"
	"github.com/danielhkuo/quickly-poll/polls"
)

type ResultsHandler struct {
	svc *polls.Service
}

func NewResultsHandler(svc *polls.Service) *ResultsHandler {
	return &ResultsHandler{svc: svc}
}

// GetResults handles GET /polls/{id}/results
// Private polls are only visible to their creator
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.svc.Results(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}
