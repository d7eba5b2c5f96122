package models

import "time"

// Outbox task statuses.
const (
	TaskStatusPending = "pending"
	TaskStatusRetry   = "retry"
	TaskStatusDone    = "done"
	TaskStatusDead    = "dead"
)

// OutboxTask is a persisted notification unit consumed by the worker.
type OutboxTask struct {
	ID          int64
	EventType   string
	Payload     []byte
	Status      string
	RetryCount  int
	LastError   string
	CreatedAt   time.Time
	ProcessedAt *time.Time
	NextRetryAt *time.Time
}
