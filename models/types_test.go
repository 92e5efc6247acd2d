// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// The client protocol is camelCase throughout; the timestamp fields
// must follow timeLimit and choiceId rather than leak Go-side naming.
func TestPollTimestampWireNames(t *testing.T) {
	ended := time.Now()
	p := Poll{
		ID:        "1",
		Question:  "Pick one",
		Options:   []Option{{ID: "0", Text: "A"}},
		Answers:   map[string]string{},
		TimeLimit: 60000,
		Status:    StatusEnded,
		CreatedAt: time.Now(),
		EndedAt:   &ended,
	}

	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Failed to marshal poll: %v", err)
	}
	body := string(raw)

	for _, key := range []string{`"createdAt"`, `"endedAt"`} {
		if !strings.Contains(body, key) {
			t.Errorf("Expected %s in wire form, got %s", key, body)
		}
	}
	for _, key := range []string{`"created_at"`, `"ended_at"`} {
		if strings.Contains(body, key) {
			t.Errorf("Unexpected %s in wire form: %s", key, body)
		}
	}
}
