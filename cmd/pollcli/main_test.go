// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-poll/models"
)

var cliNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /polls", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.ListPollsResponse{Polls: []models.PollWithOptions{{
			Poll: models.Poll{ID: "p1", Title: "Lunch", CreatedAt: cliNow.Add(-3 * time.Hour)},
			Options: []models.PollOption{
				{ID: "o1", Text: "Pizza", VoteCount: 1200},
				{ID: "o2", Text: "Tacos", VoteCount: 34},
			},
		}}})
	})
	mux.HandleFunc("GET /polls/{id}/results", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "p1" {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Not Found", Message: "Poll not found"})
			return
		}
		json.NewEncoder(w).Encode(models.ResultsResponse{
			Poll:   models.PollWithOptions{Poll: models.Poll{ID: "p1", Title: "Lunch"}},
			Status: models.StatusActive,
			Results: []models.OptionResult{
				{PollOption: models.PollOption{Text: "Pizza"}, Votes: 3, Percentage: 75},
				{PollOption: models.PollOption{Text: "Tacos"}, Votes: 1, Percentage: 25},
			},
			Analytics: models.PollAnalytics{TotalVotes: 4, MostPopular: &models.PopularOption{Text: "Pizza", Votes: 3, Percentage: 75}},
			URLs:      models.PollURLs{Vote: "http://localhost:3000/vote/p1"},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRun(t *testing.T) {
	server := fakeAPI(t)

	tests := []struct {
		name      string
		args      []string
		wantErr   bool
		wantLines []string
	}{
		{
			name:      "list",
			args:      []string{"-url", server.URL, "list"},
			wantLines: []string{"p1  Lunch  (2 options, 1,234 votes, created 3 hours ago)"},
		},
		{
			name: "results",
			args: []string{"-url", server.URL, "results", "p1"},
			wantLines: []string{
				"Lunch [active]",
				"75.0%",
				"Total: 4 votes",
				"Leading: Pizza",
				"Share: http://localhost:3000/vote/p1",
			},
		},
		{name: "missing poll", args: []string{"-url", server.URL, "results", "nope"}, wantErr: true},
		{name: "no command", args: []string{"-url", server.URL}, wantErr: true},
		{name: "unknown command", args: []string{"-url", server.URL, "vote"}, wantErr: true},
		{name: "results without id", args: []string{"-url", server.URL, "results"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(context.Background(), tt.args, &out, func() time.Time { return cliNow })

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error, got output %q", out.String())
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			for _, line := range tt.wantLines {
				if !strings.Contains(out.String(), line) {
					t.Errorf("Output missing %q:\n%s", line, out.String())
				}
			}
		})
	}
}
