// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-poll/auth"
	"github.com/danielhkuo/quickly-poll/models"
)

const testSecret = "test-session-secret"

// whoami echoes the context user, or "anonymous"
func whoami() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			w.Write([]byte("anonymous"))
			return
		}
		w.Write([]byte(user.ID))
	})
}

func TestWithSession(t *testing.T) {
	valid := auth.GenerateSessionToken("user-123", testSecret)
	forged := auth.GenerateSessionToken("user-123", "wrong-secret")

	testCases := []struct {
		name     string
		header   string
		cookie   string
		expected string
	}{
		{"no credentials", "", "", "anonymous"},
		{"bearer token", "Bearer " + valid, "", "user-123"},
		{"lowercase scheme", "bearer " + valid, "", "user-123"},
		{"session cookie", "", valid, "user-123"},
		{"forged bearer", "Bearer " + forged, "", "anonymous"},
		{"forged cookie", "", forged, "anonymous"},
		{"basic scheme ignored", "Basic dXNlcjpwYXNz", valid, "anonymous"},
		{"garbage token", "Bearer not-a-token", "", "anonymous"},
	}

	handler := WithSession(testSecret)(whoami())

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/polls", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tc.cookie})
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("Expected status 200, got %d", w.Code)
			}
			if w.Body.String() != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, w.Body.String())
			}
		})
	}
}

func TestWithRecovery(t *testing.T) {
	t.Run("panic becomes 500", func(t *testing.T) {
		handler := WithRecovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		req := httptest.NewRequest("GET", "/polls/abc", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("Expected status 500, got %d", w.Code)
		}

		var resp models.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}
		if resp.Message != "An unexpected error occurred" {
			t.Errorf("Unexpected message: %s", resp.Message)
		}
	})

	t.Run("normal requests pass through", func(t *testing.T) {
		handler := WithRecovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))

		req := httptest.NewRequest("POST", "/polls", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Errorf("Expected status 201, got %d", w.Code)
		}
	})
}
