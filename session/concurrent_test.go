// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session_test

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/classpulse/models"
	"github.com/danielhkuo/classpulse/session"
	"github.com/danielhkuo/classpulse/testutil"
)

// TestConcurrentAnswers verifies that simultaneous votes from different
// participants keep the tally-sum invariant and that each participant
// lands exactly once in the ledger.
func TestConcurrentAnswers(t *testing.T) {
	coord, _ := testutil.NewTestCoordinator(t)
	defer coord.Close()

	numVoters := 20
	for i := 0; i < numVoters; i++ {
		testutil.JoinParticipant(t, coord,
			fmt.Sprintf("conn-%d", i), fmt.Sprintf("Voter%d", i))
	}

	if _, err := coord.CreatePoll("Q?", []models.OptionInput{
		{Text: "A"}, {Text: "B"}, {Text: "C"},
	}, 60000); err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			optionID := fmt.Sprintf("%d", idx%3)
			if err := coord.SubmitAnswer(fmt.Sprintf("conn-%d", idx), optionID); err == nil {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	active, ok := coord.ActivePoll()
	if !ok {
		t.Fatal("Poll should still be active")
	}
	sum := 0
	for _, opt := range active.Options {
		sum += opt.Count
	}
	if sum != len(active.Answers) {
		t.Errorf("Tally sum (%d) != ledger size (%d)", sum, len(active.Answers))
	}
	if len(active.Answers) != numVoters {
		t.Errorf("Expected %d ledger entries, got %d", numVoters, len(active.Answers))
	}
}

// TestConcurrentDuplicateVotes verifies that one participant hammering
// the vote endpoint gets exactly one accepted vote.
func TestConcurrentDuplicateVotes(t *testing.T) {
	coord, _ := testutil.NewTestCoordinator(t)
	defer coord.Close()

	testutil.JoinParticipant(t, coord, "conn-1", "Alice")
	if _, err := coord.CreatePoll("Q?", testutil.TwoOptions(), 60000); err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}

	numAttempts := 10
	var successCount, duplicateCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			err := coord.SubmitAnswer("conn-1", fmt.Sprintf("%d", idx%2))
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, session.ErrAlreadyAnswered):
				duplicateCount.Add(1)
			default:
				t.Errorf("Unexpected error: %v", err)
			}
		}(i)
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 accepted vote, got %d", successCount.Load())
	}
	if duplicateCount.Load() != int32(numAttempts-1) {
		t.Errorf("Expected %d duplicate rejections, got %d", numAttempts-1, duplicateCount.Load())
	}

	active, _ := coord.ActivePoll()
	sum := 0
	for _, opt := range active.Options {
		sum += opt.Count
	}
	if sum != 1 {
		t.Errorf("Expected total count 1, got %d", sum)
	}
}

// TestConcurrentJoinsSameName verifies that when several connections
// race for the same display name, exactly one wins.
func TestConcurrentJoinsSameName(t *testing.T) {
	coord, _ := testutil.NewTestCoordinator(t)

	numAttempts := 8
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if err := coord.Join(fmt.Sprintf("conn-%d", idx), "ContestedName"); err == nil {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful join, got %d", successCount.Load())
	}
	if len(coord.Roster()) != 1 {
		t.Errorf("Expected 1 roster entry, got %d", len(coord.Roster()))
	}
}

// TestConcurrentCreatePoll verifies that racing creates install exactly
// one poll and the losers get ErrPollAlreadyActive.
func TestConcurrentCreatePoll(t *testing.T) {
	coord, gw := testutil.NewTestCoordinator(t)
	defer coord.Close()

	numAttempts := 5
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, err := coord.CreatePoll(fmt.Sprintf("Poll %d?", idx), testutil.TwoOptions(), 60000)
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, session.ErrPollAlreadyActive):
			default:
				t.Errorf("Unexpected error: %v", err)
			}
		}(i)
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful create, got %d", successCount.Load())
	}
	if n := gw.CountOfType(models.EventPollStarted); n != 1 {
		t.Errorf("Expected exactly 1 poll:started broadcast, got %d", n)
	}
}

// TestVoteExpiryRace fires votes across the expiry boundary. Every call
// must return either success or an error; an accepted vote must appear
// in the final snapshot, a rejected one must not.
func TestVoteExpiryRace(t *testing.T) {
	coord, _ := testutil.NewTestCoordinator(t)

	numVoters := 30
	for i := 0; i < numVoters; i++ {
		testutil.JoinParticipant(t, coord,
			fmt.Sprintf("conn-%d", i), fmt.Sprintf("Voter%d", i))
	}

	if _, err := coord.CreatePoll("Q?", testutil.TwoOptions(), 50); err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}

	var accepted, rejected atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			// Spread votes around the 50ms expiry boundary
			time.Sleep(time.Duration(idx*4) * time.Millisecond)
			err := coord.SubmitAnswer(fmt.Sprintf("conn-%d", idx), "0")
			switch {
			case err == nil:
				accepted.Add(1)
			case errors.Is(err, session.ErrNoActivePoll):
				rejected.Add(1)
			default:
				t.Errorf("Unexpected error: %v", err)
			}
		}(i)
	}

	wg.Wait()
	time.Sleep(150 * time.Millisecond)

	if accepted.Load()+rejected.Load() != int32(numVoters) {
		t.Errorf("Votes were silently dropped: accepted=%d rejected=%d of %d",
			accepted.Load(), rejected.Load(), numVoters)
	}

	history := coord.History()
	if len(history) != 1 {
		t.Fatalf("Expected exactly 1 history entry, got %d", len(history))
	}
	final := history[0]
	sum := 0
	for _, opt := range final.Options {
		sum += opt.Count
	}
	if sum != len(final.Answers) {
		t.Errorf("Final tally sum (%d) != ledger size (%d)", sum, len(final.Answers))
	}
	if sum != int(accepted.Load()) {
		t.Errorf("Final snapshot has %d votes, but %d were accepted", sum, accepted.Load())
	}
}

// TestParallelReadsDuringWrites verifies snapshot reads stay consistent
// while votes are flowing.
func TestParallelReadsDuringWrites(t *testing.T) {
	coord, _ := testutil.NewTestCoordinator(t)
	defer coord.Close()

	numVoters := 10
	for i := 0; i < numVoters; i++ {
		testutil.JoinParticipant(t, coord,
			fmt.Sprintf("conn-%d", i), fmt.Sprintf("Voter%d", i))
	}
	if _, err := coord.CreatePoll("Q?", testutil.TwoOptions(), 60000); err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}

	done := make(chan struct{})
	var readerWg sync.WaitGroup
	readerWg.Add(1)
	go func() {
		defer readerWg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			if poll, ok := coord.ActivePoll(); ok {
				sum := 0
				for _, opt := range poll.Options {
					sum += opt.Count
				}
				if sum != len(poll.Answers) {
					t.Errorf("Observed inconsistent snapshot: sum=%d ledger=%d", sum, len(poll.Answers))
					return
				}
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if err := coord.SubmitAnswer(fmt.Sprintf("conn-%d", idx), "1"); err != nil {
				t.Errorf("SubmitAnswer failed: %v", err)
			}
		}(i)
	}

	wg.Wait()
	close(done)
	readerWg.Wait()
}
