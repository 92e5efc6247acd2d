// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import "errors"

var (
	ErrEmptyName          = errors.New("name required")
	ErrDuplicateName      = errors.New("name already taken")
	ErrInvalidPoll        = errors.New("invalid poll")
	ErrPollAlreadyActive  = errors.New("a poll is already active")
	ErrNoActivePoll       = errors.New("no active poll")
	ErrUnknownParticipant = errors.New("participant not found")
	ErrAlreadyAnswered    = errors.New("already answered")
	ErrInvalidOption      = errors.New("invalid option")
)

// Code maps a session error to its stable wire code for acks.
// Unrecognized errors map to INTERNAL.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrEmptyName):
		return "EMPTY_NAME"
	case errors.Is(err, ErrDuplicateName):
		return "DUPLICATE_NAME"
	case errors.Is(err, ErrInvalidPoll):
		return "INVALID_POLL"
	case errors.Is(err, ErrPollAlreadyActive):
		return "POLL_ALREADY_ACTIVE"
	case errors.Is(err, ErrNoActivePoll):
		return "NO_ACTIVE_POLL"
	case errors.Is(err, ErrUnknownParticipant):
		return "UNKNOWN_PARTICIPANT"
	case errors.Is(err, ErrAlreadyAnswered):
		return "ALREADY_ANSWERED"
	case errors.Is(err, ErrInvalidOption):
		return "INVALID_OPTION"
	default:
		return "INTERNAL"
	}
}
