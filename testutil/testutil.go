// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/danielhkuo/classpulse/cliparse"
	"github.com/danielhkuo/classpulse/models"
	"github.com/danielhkuo/classpulse/session"
)

// RecordedEvent is one gateway delivery. To is empty for broadcasts and
// holds the connection ID for targeted sends.
type RecordedEvent struct {
	Event models.Event
	To    string
}

// RecordingGateway implements session.Gateway and records every
// delivery for assertions. Safe for concurrent use.
type RecordingGateway struct {
	mu     sync.Mutex
	events []RecordedEvent
}

func NewRecordingGateway() *RecordingGateway {
	return &RecordingGateway{}
}

func (g *RecordingGateway) Broadcast(ev models.Event) {
	g.mu.Lock()
	g.events = append(g.events, RecordedEvent{Event: ev})
	g.mu.Unlock()
}

func (g *RecordingGateway) SendTo(connectionID string, ev models.Event) {
	g.mu.Lock()
	g.events = append(g.events, RecordedEvent{Event: ev, To: connectionID})
	g.mu.Unlock()
}

// Events returns a copy of everything recorded so far.
func (g *RecordingGateway) Events() []RecordedEvent {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]RecordedEvent, len(g.events))
	copy(out, g.events)
	return out
}

// EventsOfType returns recorded deliveries with the given event type.
func (g *RecordingGateway) EventsOfType(eventType string) []RecordedEvent {
	var out []RecordedEvent
	for _, rec := range g.Events() {
		if rec.Event.Type == eventType {
			out = append(out, rec)
		}
	}
	return out
}

// CountOfType reports how many deliveries had the given event type.
func (g *RecordingGateway) CountOfType(eventType string) int {
	return len(g.EventsOfType(eventType))
}

// Reset discards recorded events.
func (g *RecordingGateway) Reset() {
	g.mu.Lock()
	g.events = nil
	g.mu.Unlock()
}

// NewTestCoordinator builds a coordinator wired to a recording gateway.
func NewTestCoordinator(t *testing.T) (*session.Coordinator, *RecordingGateway) {
	t.Helper()
	gw := NewRecordingGateway()
	return session.NewCoordinator(gw, 60000), gw
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:               10000,
		AllowedOrigin:      "*",
		DefaultTimeLimitMs: 60000,
	}
}

// JoinParticipant joins a participant and fails the test on error.
func JoinParticipant(t *testing.T, coord *session.Coordinator, connectionID, name string) {
	t.Helper()
	if err := coord.Join(connectionID, name); err != nil {
		t.Fatalf("Failed to join %q: %v", name, err)
	}
}

// TwoOptions is a minimal valid option set for poll creation.
func TwoOptions() []models.OptionInput {
	return []models.OptionInput{
		{Text: "A"},
		{Text: "B", IsCorrect: true},
	}
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
