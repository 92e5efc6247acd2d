// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session implements the real-time classroom poll coordinator:
the roster of connected participants, the at-most-one active poll with
its tally, the expired-poll history, and the timed expiry of polls.

# Components

  - Roster: connectionId -> display name, with case-sensitive name
    uniqueness. Plain struct, serialized by the Coordinator.
  - Poll functions (NewPoll, RecordAnswer, ExpirePoll, ClonePoll): the
    per-poll state machine and tally engine.
  - Coordinator: the single owner of all session state and the only
    mutation point.

# Concurrency

All state lives behind one sync.Mutex on the Coordinator. Client
requests and the expiry timer contend on that lock, which guarantees:

  - a vote's ledger entry and count increment are observed together;
  - a poll cannot be created while another is active;
  - a vote racing expiry is either reflected in the final snapshot or
    rejected with ErrNoActivePoll, never silently dropped.

Each poll has exactly one cancellable expiry trigger (time.AfterFunc).
The trigger carries its poll's ID and no-ops if that poll has already
ended, so a stale or duplicate fire cannot double-append history.

# Events

The Coordinator emits events through the Gateway interface. Delivery is
fire-and-forget; implementations must not block, since events are
emitted while the session lock is held to keep event order consistent
with state order.

# Errors

All failures are recoverable, caller-facing sentinel errors
(ErrDuplicateName, ErrAlreadyAnswered, ...). Code maps them to stable
wire codes for acknowledgments. Nothing in this package panics or
requires crash recovery.
*/
package session
