// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/classpulse/models"
)

// NewPoll validates the question and options and builds an active poll.
// Option IDs are sequential string indexes starting at "0". All counts
// start at zero and the answer ledger starts empty.
func NewPoll(id, question string, options []models.OptionInput, timeLimitMs int) (*models.Poll, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question is required", ErrInvalidPoll)
	}
	if len(options) < 2 {
		return nil, fmt.Errorf("%w: at least 2 options required", ErrInvalidPoll)
	}
	if timeLimitMs <= 0 {
		return nil, fmt.Errorf("%w: time limit must be positive", ErrInvalidPoll)
	}

	opts := make([]models.Option, len(options))
	for i, in := range options {
		if strings.TrimSpace(in.Text) == "" {
			return nil, fmt.Errorf("%w: option text is required", ErrInvalidPoll)
		}
		opts[i] = models.Option{
			ID:        strconv.Itoa(i),
			Text:      in.Text,
			IsCorrect: in.IsCorrect,
			Count:     0,
		}
	}

	return &models.Poll{
		ID:        id,
		Question:  question,
		Options:   opts,
		Answers:   make(map[string]string),
		TimeLimit: timeLimitMs,
		Status:    models.StatusActive,
		CreatedAt: time.Now(),
	}, nil
}

// RecordAnswer records a participant's vote and increments the chosen
// option's count. The ledger entry and the count increment are applied
// together; callers must hold the coordinator lock so the two writes
// are observed atomically. The first vote wins: a second vote from the
// same name fails ErrAlreadyAnswered and leaves the tally unchanged.
func RecordAnswer(p *models.Poll, name, optionID string) error {
	if p.Status != models.StatusActive {
		return ErrNoActivePoll
	}
	if _, voted := p.Answers[name]; voted {
		return ErrAlreadyAnswered
	}

	for i := range p.Options {
		if p.Options[i].ID == optionID {
			p.Answers[name] = optionID
			p.Options[i].Count++
			return nil
		}
	}
	return ErrInvalidOption
}

// ExpirePoll marks the poll as ended. Idempotent: expiring an already
// ended poll reports false and changes nothing.
func ExpirePoll(p *models.Poll) bool {
	if p.Status == models.StatusEnded {
		return false
	}
	p.Status = models.StatusEnded
	now := time.Now()
	p.EndedAt = &now
	return true
}

// ClonePoll returns a deep copy suitable for broadcast payloads and
// reads. The options slice and answer ledger are copied so holders of
// a snapshot never observe later mutations.
func ClonePoll(p *models.Poll) models.Poll {
	out := *p
	out.Options = make([]models.Option, len(p.Options))
	copy(out.Options, p.Options)
	out.Answers = make(map[string]string, len(p.Answers))
	for name, optionID := range p.Answers {
		out.Answers[name] = optionID
	}
	return out
}
