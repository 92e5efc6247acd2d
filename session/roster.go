// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import "strings"

// Roster tracks connected participants by connection ID and enforces
// display-name uniqueness (case-sensitive exact match).
//
// Roster is not safe for concurrent use on its own. It is owned by the
// Coordinator, which serializes all access under its single lock.
type Roster struct {
	participants map[string]string // connectionId -> name
}

func NewRoster() *Roster {
	return &Roster{participants: make(map[string]string)}
}

// Add registers a connection under the given display name. The name is
// trimmed before registration; empty or whitespace-only names are
// rejected, as are names held by any currently connected participant.
func (r *Roster) Add(connectionID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	for _, existing := range r.participants {
		if existing == name {
			return ErrDuplicateName
		}
	}
	r.participants[connectionID] = name
	return nil
}

// Remove deletes the connection's entry. Idempotent; reports whether
// the connection was present.
func (r *Roster) Remove(connectionID string) bool {
	if _, ok := r.participants[connectionID]; !ok {
		return false
	}
	delete(r.participants, connectionID)
	return true
}

// NameOf resolves a connection ID to its display name.
func (r *Roster) NameOf(connectionID string) (string, bool) {
	name, ok := r.participants[connectionID]
	return name, ok
}

// Snapshot returns a point-in-time copy of the roster. Callers never
// see the live map, so broadcasts cannot race later mutations.
func (r *Roster) Snapshot() map[string]string {
	out := make(map[string]string, len(r.participants))
	for id, name := range r.participants {
		out[id] = name
	}
	return out
}

// Len reports the number of connected participants.
func (r *Roster) Len() int {
	return len(r.participants)
}
