// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/store"
	"github.com/danielhkuo/quickly-poll/store/memstore"
)

func optionVotes(t *testing.T, st *memstore.Store, optionID string) int {
	t.Helper()
	for _, r := range st.Rows(store.TablePollOptions) {
		if r["id"] == optionID {
			o, err := optionFromRow(r)
			if err != nil {
				t.Fatal(err)
			}
			return o.VoteCount
		}
	}
	t.Fatalf("option %s not found", optionID)
	return 0
}

func TestVote(t *testing.T) {
	svc, st := newTestService(t, "voter")
	seedPoll(st, models.Poll{ID: "p1", Title: "Colors", CreatorID: "user-123", IsPublic: true}, 3, 1)

	opt, err := svc.Vote(context.Background(), "p1", "p1-opt-1")
	if err != nil {
		t.Fatalf("Vote() error = %v", err)
	}

	if opt.VoteCount != 2 {
		t.Errorf("expected 2 votes, got %d", opt.VoteCount)
	}
	if optionVotes(t, st, "p1-opt-1") != 2 {
		t.Error("vote was not persisted")
	}
	if optionVotes(t, st, "p1-opt-0") != 3 {
		t.Error("other option should be unchanged")
	}
}

func TestVote_AnonymousPublic(t *testing.T) {
	svc, st := newTestService(t, "")
	seedPoll(st, models.Poll{ID: "p1", Title: "Colors", CreatorID: "user-123", IsPublic: true}, 0, 0)

	if _, err := svc.Vote(context.Background(), "p1", "p1-opt-0"); err != nil {
		t.Errorf("anonymous votes on public polls should succeed, got %v", err)
	}
}

func TestVote_RepeatVotesAllowed(t *testing.T) {
	// Prior votes are not tracked, so single-vote polls accept repeats
	svc, st := newTestService(t, "voter")
	seedPoll(st, models.Poll{ID: "p1", Title: "Colors", CreatorID: "user-123", IsPublic: true, AllowMultipleVotes: false}, 0, 0)

	for i := 0; i < 3; i++ {
		if _, err := svc.Vote(context.Background(), "p1", "p1-opt-0"); err != nil {
			t.Fatal(err)
		}
	}
	if optionVotes(t, st, "p1-opt-0") != 3 {
		t.Errorf("expected 3 votes, got %d", optionVotes(t, st, "p1-opt-0"))
	}
}

func TestVote_Rejected(t *testing.T) {
	expired := testNow.Add(-time.Minute)

	tests := []struct {
		name     string
		userID   string
		poll     models.Poll
		pollID   string
		optionID string
		want     Kind
	}{
		{
			name:     "missing poll id",
			userID:   "voter",
			poll:     models.Poll{ID: "p1", IsPublic: true},
			optionID: "p1-opt-0",
			want:     KindValidationFailed,
		},
		{
			name:   "missing option id",
			userID: "voter",
			poll:   models.Poll{ID: "p1", IsPublic: true},
			pollID: "p1",
			want:   KindValidationFailed,
		},
		{
			name:     "missing poll",
			userID:   "voter",
			poll:     models.Poll{ID: "p1", IsPublic: true},
			pollID:   "p9",
			optionID: "p1-opt-0",
			want:     KindNotFound,
		},
		{
			name:     "expired",
			userID:   "voter",
			poll:     models.Poll{ID: "p1", IsPublic: true, ExpiresAt: &expired},
			pollID:   "p1",
			optionID: "p1-opt-0",
			want:     KindConflict,
		},
		{
			name:     "private anonymous",
			poll:     models.Poll{ID: "p1", IsPublic: false},
			pollID:   "p1",
			optionID: "p1-opt-0",
			want:     KindUnauthorized,
		},
		{
			name:     "option of another poll",
			userID:   "voter",
			poll:     models.Poll{ID: "p1", IsPublic: true},
			pollID:   "p1",
			optionID: "p2-opt-0",
			want:     KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st := newTestService(t, tt.userID)
			tt.poll.Title = "Colors"
			tt.poll.CreatorID = "user-123"
			seedPoll(st, tt.poll, 0, 0)
			seedPoll(st, models.Poll{ID: "p2", Title: "Other", CreatorID: "user-123", IsPublic: true}, 0)

			_, err := svc.Vote(context.Background(), tt.pollID, tt.optionID)
			assertKind(t, err, tt.want)

			if countCalls(st, memstore.OpUpdate, store.TablePollOptions) != 0 {
				t.Error("expected no vote to be written")
			}
		})
	}
}

func TestVote_PrivateWithUser(t *testing.T) {
	svc, st := newTestService(t, "voter")
	seedPoll(st, models.Poll{ID: "p1", Title: "Secret", CreatorID: "user-123", IsPublic: false}, 0, 0)

	if _, err := svc.Vote(context.Background(), "p1", "p1-opt-0"); err != nil {
		t.Errorf("signed-in users can vote on private polls, got %v", err)
	}
}

// raceVotes makes another vote land on every attempted update, up to n times
func raceVotes(st *memstore.Store, optionID string, n int) {
	var mu sync.Mutex
	racing := false
	raced := 0
	st.OnCall(func(c memstore.Call) {
		if c.Op != memstore.OpUpdate || c.Table != store.TablePollOptions {
			return
		}
		mu.Lock()
		if racing || raced >= n {
			mu.Unlock()
			return
		}
		racing = true
		raced++
		mu.Unlock()

		q := store.From(store.TablePollOptions).Eq("id", optionID)
		rows, _ := st.Select(context.Background(), q)
		opt, _ := optionFromRow(rows[0])
		st.Update(context.Background(), q, store.Row{"vote_count": opt.VoteCount + 1})

		mu.Lock()
		racing = false
		mu.Unlock()
	})
}

func TestVote_RetriesLostRace(t *testing.T) {
	svc, st := newTestService(t, "voter")
	seedPoll(st, models.Poll{ID: "p1", Title: "Colors", CreatorID: "user-123", IsPublic: true}, 5, 0)
	raceVotes(st, "p1-opt-0", 1)

	opt, err := svc.Vote(context.Background(), "p1", "p1-opt-0")
	if err != nil {
		t.Fatalf("Vote() error = %v", err)
	}

	// One vote from the race, one from us
	if opt.VoteCount != 7 {
		t.Errorf("expected 7 votes, got %d", opt.VoteCount)
	}
	if optionVotes(t, st, "p1-opt-0") != 7 {
		t.Errorf("expected 7 stored votes, got %d", optionVotes(t, st, "p1-opt-0"))
	}
}

func TestVote_GivesUpAfterMaxAttempts(t *testing.T) {
	svc, st := newTestService(t, "voter")
	seedPoll(st, models.Poll{ID: "p1", Title: "Colors", CreatorID: "user-123", IsPublic: true}, 0, 0)
	raceVotes(st, "p1-opt-0", MaxVoteAttempts)

	_, err := svc.Vote(context.Background(), "p1", "p1-opt-0")
	assertKind(t, err, KindConflict)

	// Every racing vote counted, ours did not
	if optionVotes(t, st, "p1-opt-0") != MaxVoteAttempts {
		t.Errorf("expected %d votes, got %d", MaxVoteAttempts, optionVotes(t, st, "p1-opt-0"))
	}
}

func TestVote_Concurrent(t *testing.T) {
	svc, st := newTestService(t, "voter")
	seedPoll(st, models.Poll{ID: "p1", Title: "Colors", CreatorID: "user-123", IsPublic: true}, 0, 0)

	const voters = 4
	var wg sync.WaitGroup
	errs := make(chan error, voters)
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Vote(context.Background(), "p1", "p1-opt-0"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	failed := 0
	for err := range errs {
		assertKind(t, err, KindConflict)
		failed++
	}

	// No vote is lost or double counted
	if got := optionVotes(t, st, "p1-opt-0"); got != voters-failed {
		t.Errorf("expected %d votes, got %d", voters-failed, got)
	}
}
