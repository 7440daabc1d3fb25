// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-poll/auth"
	"github.com/danielhkuo/quickly-poll/cliparse"
	"github.com/danielhkuo/quickly-poll/db"
	"github.com/danielhkuo/quickly-poll/store"
	"github.com/danielhkuo/quickly-poll/store/sqlstore"
)

// TestDBURL is an in-memory SQLite database, private to each connection pool
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory database with the full schema.
// It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, _, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore returns a SQL store over a fresh test database
func SetupTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	return sqlstore.New(SetupTestDB(t), sqlstore.SQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   TestDBURL,
		DatabaseType:  db.TypeSQLite,
		SessionSecret: "test-session-secret",
		BaseURL:       "http://localhost:3000",
	}
}

// AuthHeaders returns request headers carrying a session for userID
func AuthHeaders(cfg cliparse.Config, userID string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + auth.GenerateSessionToken(userID, cfg.SessionSecret),
	}
}

// TestPoll describes a poll written by CreateTestPoll
type TestPoll struct {
	CreatorID string
	Private   bool
	ExpiresAt *time.Time
	CreatedAt time.Time
	Options   []string
	Votes     []int // per option; missing entries are zero
}

// CreateTestPoll writes a poll and its options straight to the store and
// returns the poll ID and option IDs in position order
func CreateTestPoll(t *testing.T, st store.Store, p TestPoll) (pollID string, optionIDs []string) {
	t.Helper()

	if p.CreatorID == "" {
		p.CreatorID = "test-user"
	}
	if len(p.Options) == 0 {
		p.Options = []string{"Option A", "Option B"}
	}
	created := p.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC().Truncate(time.Microsecond)
	}

	var expires any
	if p.ExpiresAt != nil {
		expires = p.ExpiresAt.UTC()
	}

	ctx := context.Background()
	pollID = uuid.NewString()
	_, err := st.Insert(ctx, store.TablePolls, []store.Row{{
		"id":                   pollID,
		"title":                "Test Poll",
		"description":          "A test poll",
		"creator_id":           p.CreatorID,
		"allow_multiple_votes": false,
		"is_public":            !p.Private,
		"expires_at":           expires,
		"created_at":           created,
		"updated_at":           created,
	}})
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	rows := make([]store.Row, len(p.Options))
	for i, text := range p.Options {
		votes := 0
		if i < len(p.Votes) {
			votes = p.Votes[i]
		}
		id := uuid.NewString()
		optionIDs = append(optionIDs, id)
		rows[i] = store.Row{
			"id":         id,
			"poll_id":    pollID,
			"text":       text,
			"position":   i,
			"vote_count": votes,
			"created_at": created,
			"updated_at": created,
		}
	}
	if _, err := st.Insert(ctx, store.TablePollOptions, rows); err != nil {
		t.Fatalf("Failed to create test options: %v", err)
	}

	return pollID, optionIDs
}

// CountRows returns how many rows in table match column = value
func CountRows(t *testing.T, st store.Store, table, column string, value any) int {
	t.Helper()

	rows, err := st.Select(context.Background(), store.From(table).Select("id").Eq(column, value))
	if err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return len(rows)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
