// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"encoding/json"
	"log/slog"

	"github.com/danielhkuo/classpulse/models"
	"github.com/danielhkuo/classpulse/session"
)

// Inbound message types. Wire names match the classroom client protocol.
const (
	MsgStudentJoin        = "student:join"
	MsgStudentAnswer      = "student:answer"
	MsgTeacherCreate      = "teacher:create"
	MsgTeacherGetPast     = "teacher:getPast"
	MsgTeacherGetStudents = "teacher:getStudents"
	MsgTeacherKick        = "teacher:kick"
	MsgChatMessage        = "chat:message"
)

// Session is the coordinator surface the protocol layer needs.
// *session.Coordinator satisfies it.
type Session interface {
	Join(connectionID, name string) error
	Disconnect(connectionID string)
	Kick(connectionID string) error
	CreatePoll(question string, options []models.OptionInput, timeLimitMs int) (models.Poll, error)
	SubmitAnswer(connectionID, optionID string) error
	History() []models.Poll
	Roster() map[string]string
}

// ClientMessage is one inbound request from a connected client. ID is
// an optional client-chosen request id, echoed back in the ack.
type ClientMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// HandleMessage dispatches one client message to the coordinator and
// returns the synchronous ack for it. Chat messages are relayed through
// the hub without touching session state.
func HandleMessage(sess Session, hub *Hub, connectionID string, msg ClientMessage) models.Ack {
	switch msg.Type {
	case MsgStudentJoin:
		var req models.JoinRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return badPayload(msg.ID)
		}
		if err := sess.Join(connectionID, req.Name); err != nil {
			return ackError(msg.ID, err)
		}
		return ackOK(msg.ID, nil)

	case MsgTeacherCreate:
		var req models.CreatePollRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return badPayload(msg.ID)
		}
		poll, err := sess.CreatePoll(req.Question, req.Options, req.TimeLimit)
		if err != nil {
			return ackError(msg.ID, err)
		}
		return ackOK(msg.ID, models.PollPayload{Poll: poll})

	case MsgStudentAnswer:
		var req models.AnswerRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return badPayload(msg.ID)
		}
		if err := sess.SubmitAnswer(connectionID, req.ChoiceID); err != nil {
			return ackError(msg.ID, err)
		}
		return ackOK(msg.ID, nil)

	case MsgTeacherGetPast:
		return ackOK(msg.ID, models.HistoryData{Polls: sess.History()})

	case MsgTeacherGetStudents:
		return ackOK(msg.ID, models.StudentsData{Students: sess.Roster()})

	case MsgTeacherKick:
		var req models.KickRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return badPayload(msg.ID)
		}
		if err := sess.Kick(req.ConnectionID); err != nil {
			return ackError(msg.ID, err)
		}
		return ackOK(msg.ID, nil)

	case MsgChatMessage:
		var cm models.ChatMessage
		if err := json.Unmarshal(msg.Payload, &cm); err != nil {
			return badPayload(msg.ID)
		}
		hub.Broadcast(models.Event{Type: models.EventChatMessage, Payload: cm})
		return ackOK(msg.ID, nil)

	default:
		slog.Warn("unknown message type", "type", msg.Type, "connection_id", connectionID)
		return models.Ack{ID: msg.ID, OK: false, Error: "unknown message type", Code: "UNKNOWN_TYPE"}
	}
}

func ackOK(id string, data any) models.Ack {
	return models.Ack{ID: id, OK: true, Data: data}
}

func ackError(id string, err error) models.Ack {
	return models.Ack{ID: id, OK: false, Error: err.Error(), Code: session.Code(err)}
}

func badPayload(id string) models.Ack {
	return models.Ack{ID: id, OK: false, Error: "invalid payload", Code: "BAD_PAYLOAD"}
}
