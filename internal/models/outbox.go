package models

import "time"

const (
	OutboxPending   = "pending"
	OutboxRetry     = "retry"
	OutboxCompleted = "completed"
	OutboxFailed    = "failed"
)

// OutboxEvent is a domain event persisted alongside the booking mutation and
// handed off to external consumers by the outbox worker.
type OutboxEvent struct {
	ID          int64      `json:"id"`
	EventType   string     `json:"event_type"`
	Payload     []byte     `json:"payload"`
	Status      string     `json:"status"`
	RetryCount  int        `json:"retry_count"`
	LastError   string     `json:"last_error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	NextRetryAt *time.Time `json:"next_retry_at,omitempty"`
}
