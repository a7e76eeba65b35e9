package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type FeedbackStatus string

const (
	FeedbackUnresolved FeedbackStatus = "Unresolved"
	FeedbackQueued     FeedbackStatus = "Queued"
	FeedbackResolved   FeedbackStatus = "Resolved"
)

func ParseFeedbackStatus(s string) (FeedbackStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unresolved":
		return FeedbackUnresolved, nil
	case "queued":
		return FeedbackQueued, nil
	case "resolved":
		return FeedbackResolved, nil
	}
	return "", fmt.Errorf("unknown feedback status %q: %w", s, ErrInvalidInput)
}

// Feedback - отзыв оператора ведомства о работе консоли
type Feedback struct {
	ID          uuid.UUID      `json:"id"`
	Ticket      string         `json:"ticket"`
	Message     string         `json:"message"`
	SubmittedBy Role           `json:"submittedBy"`
	Status      FeedbackStatus `json:"status"`
	Timestamp   time.Time      `json:"timestamp"`
}
