// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/danielhkuo/classpulse/models"
)

// Gateway delivers coordinator-emitted events to connected clients.
// Implementations must not block: delivery is fire-and-forget and a
// failed or dropped delivery never rolls back session state.
type Gateway interface {
	Broadcast(ev models.Event)
	SendTo(connectionID string, ev models.Event)
}

// Coordinator owns all live session state: the roster, the at-most-one
// active poll, and the poll history. Every mutation goes through the
// single mutex, so the answer ledger and option counts always move
// together and expiry can never race a vote into an inconsistent state.
type Coordinator struct {
	gateway            Gateway
	defaultTimeLimitMs int

	mu         sync.Mutex
	roster     *Roster
	current    *models.Poll
	expiry     *time.Timer
	history    []models.Poll
	lastPollID int64
}

func NewCoordinator(gateway Gateway, defaultTimeLimitMs int) *Coordinator {
	if defaultTimeLimitMs <= 0 {
		defaultTimeLimitMs = 60000
	}
	return &Coordinator{
		gateway:            gateway,
		defaultTimeLimitMs: defaultTimeLimitMs,
		roster:             NewRoster(),
	}
}

// Join registers a participant and broadcasts the updated roster. If a
// poll is in progress, the joiner additionally receives a private
// poll:started event so late joiners can still vote.
func (c *Coordinator) Join(connectionID, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.roster.Add(connectionID, name); err != nil {
		return err
	}

	slog.Info("participant joined", "connection_id", connectionID, "name", name)
	c.gateway.Broadcast(models.Event{
		Type:    models.EventStudentsUpdate,
		Payload: models.StudentsPayload{Students: c.roster.Snapshot()},
	})

	if c.current != nil {
		c.gateway.SendTo(connectionID, models.Event{
			Type:    models.EventPollStarted,
			Payload: models.PollPayload{Poll: ClonePoll(c.current)},
		})
	}
	return nil
}

// Disconnect removes a participant on connection close. Idempotent;
// already-recorded votes are not reverted.
func (c *Coordinator) Disconnect(connectionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.roster.Remove(connectionID) {
		return
	}
	slog.Info("participant disconnected", "connection_id", connectionID)
	c.gateway.Broadcast(models.Event{
		Type:    models.EventStudentsUpdate,
		Payload: models.StudentsPayload{Students: c.roster.Snapshot()},
	})
}

// Kick removes a participant, notifies the targeted connection, and
// broadcasts the updated roster. Votes the participant already cast
// remain in the tally; that is deliberate policy, not an oversight.
func (c *Coordinator) Kick(connectionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	name, ok := c.roster.NameOf(connectionID)
	if !ok {
		return ErrUnknownParticipant
	}
	c.roster.Remove(connectionID)

	slog.Info("participant kicked", "connection_id", connectionID, "name", name)
	c.gateway.SendTo(connectionID, models.Event{Type: models.EventStudentKicked})
	c.gateway.Broadcast(models.Event{
		Type:    models.EventStudentsUpdate,
		Payload: models.StudentsPayload{Students: c.roster.Snapshot()},
	})
	return nil
}

// CreatePoll starts a new poll, schedules its single expiry trigger,
// and broadcasts poll:started. Fails ErrPollAlreadyActive while a poll
// is in progress, leaving the active poll untouched. A zero time limit
// selects the configured default. Scheduling and broadcast happen in
// the same critical section: no poll starts without an expiry trigger.
func (c *Coordinator) CreatePoll(question string, options []models.OptionInput, timeLimitMs int) (models.Poll, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		return models.Poll{}, ErrPollAlreadyActive
	}
	if timeLimitMs == 0 {
		timeLimitMs = c.defaultTimeLimitMs
	}

	poll, err := NewPoll(c.nextPollID(), question, options, timeLimitMs)
	if err != nil {
		return models.Poll{}, err
	}

	c.current = poll
	pollID := poll.ID
	c.expiry = time.AfterFunc(time.Duration(timeLimitMs)*time.Millisecond, func() {
		c.expire(pollID)
	})

	slog.Info("poll started",
		"poll_id", poll.ID,
		"question", poll.Question,
		"options", len(poll.Options),
		"time_limit_ms", timeLimitMs,
	)
	c.gateway.Broadcast(models.Event{
		Type:    models.EventPollStarted,
		Payload: models.PollPayload{Poll: ClonePoll(poll)},
	})
	return ClonePoll(poll), nil
}

// SubmitAnswer records a vote for the connection's participant and
// broadcasts the updated tallies. A vote contending with expiry either
// lands before the poll is finalized or fails ErrNoActivePoll; it is
// never silently dropped.
func (c *Coordinator) SubmitAnswer(connectionID, optionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return ErrNoActivePoll
	}
	name, ok := c.roster.NameOf(connectionID)
	if !ok {
		return ErrUnknownParticipant
	}
	if err := RecordAnswer(c.current, name, optionID); err != nil {
		return err
	}

	slog.Info("answer recorded", "poll_id", c.current.ID, "name", name, "option_id", optionID)
	c.gateway.Broadcast(models.Event{
		Type:    models.EventPollResults,
		Payload: models.PollPayload{Poll: ClonePoll(c.current)},
	})
	return nil
}

// History returns expired polls, most recent first.
func (c *Coordinator) History() []models.Poll {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Poll, len(c.history))
	for i := range c.history {
		out[i] = ClonePoll(&c.history[i])
	}
	return out
}

// Roster returns a point-in-time connectionId -> name snapshot.
func (c *Coordinator) Roster() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.Snapshot()
}

// ActivePoll returns a snapshot of the poll in progress, if any.
func (c *Coordinator) ActivePoll() (models.Poll, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return models.Poll{}, false
	}
	return ClonePoll(c.current), true
}

// Close ends any active poll through the normal expiry path and cancels
// its timer. Used on shutdown; safe to call more than once.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endActiveLocked()
}

// expire is the timer callback for the poll with the given ID. The ID
// check makes a stale trigger (poll already ended by Close, or long
// gone) a no-op, so duplicate triggers can never double-append history.
func (c *Coordinator) expire(pollID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil || c.current.ID != pollID {
		return
	}
	c.endActiveLocked()
}

// endActiveLocked finalizes the active poll: stops the timer, moves the
// final snapshot to the front of history, broadcasts poll:ended, and
// returns the session to the no-active-poll state. Caller holds c.mu.
func (c *Coordinator) endActiveLocked() {
	if c.current == nil {
		return
	}
	if c.expiry != nil {
		c.expiry.Stop()
		c.expiry = nil
	}
	ExpirePoll(c.current)

	final := ClonePoll(c.current)
	c.history = append([]models.Poll{final}, c.history...)
	c.current = nil

	slog.Info("poll ended", "poll_id", final.ID, "answers", len(final.Answers))
	c.gateway.Broadcast(models.Event{
		Type:    models.EventPollEnded,
		Payload: models.PollPayload{Poll: final},
	})
}

// nextPollID issues a unix-millisecond timestamp ID, bumped by one when
// two polls land in the same millisecond so IDs stay strictly
// increasing within a process. Caller holds c.mu.
func (c *Coordinator) nextPollID() string {
	id := time.Now().UnixMilli()
	if id <= c.lastPollID {
		id = c.lastPollID + 1
	}
	c.lastPollID = id
	return strconv.FormatInt(id, 10)
}
