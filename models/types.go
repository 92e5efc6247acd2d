// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Poll status constants
const (
	StatusActive = "active"
	StatusEnded  = "ended"
)

// Event type constants. Wire names match the classroom client protocol.
const (
	EventPollStarted    = "poll:started"
	EventPollResults    = "poll:results"
	EventPollEnded      = "poll:ended"
	EventStudentsUpdate = "students:update"
	EventStudentKicked  = "student:kicked"
	EventChatMessage    = "chat:message"
)

// Request types

type JoinRequest struct {
	Name string `json:"name"`
}

type OptionInput struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type CreatePollRequest struct {
	Question  string        `json:"question"`
	Options   []OptionInput `json:"options"`
	TimeLimit int           `json:"timeLimit"` // milliseconds; 0 means server default
}

type AnswerRequest struct {
	ChoiceID string `json:"choiceId"`
}

type KickRequest struct {
	ConnectionID string `json:"connectionId"`
}

type ChatMessage struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Domain types

type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
	Count     int    `json:"count"`
}

type Poll struct {
	ID        string            `json:"id"`
	Question  string            `json:"question"`
	Options   []Option          `json:"options"`
	Answers   map[string]string `json:"answers"` // participant name -> option id
	TimeLimit int               `json:"timeLimit"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	EndedAt   *time.Time        `json:"endedAt,omitempty"`
}

// Event is a coordinator-emitted message delivered to connected clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Event payloads

type PollPayload struct {
	Poll Poll `json:"poll"`
}

type StudentsPayload struct {
	Students map[string]string `json:"students"` // connectionId -> name
}

// Ack is the synchronous acknowledgment for an inbound client message.
// ID echoes the client-supplied request id, if any.
type Ack struct {
	ID    string `json:"id,omitempty"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// Ack data types

type HistoryData struct {
	Polls []Poll `json:"polls"`
}

type StudentsData struct {
	Students map[string]string `json:"students"`
}

// HTTP response types

type CurrentPollResponse struct {
	Poll *Poll `json:"poll"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
