package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"arenda/internal/models"
)

func (db *DB) CreateOutboxTask(ctx context.Context, task *models.OutboxTask) error {
	query := `INSERT INTO outbox (event_type, payload, status, retry_count, last_error, created_at, next_retry_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	if task.Status == "" {
		task.Status = models.TaskStatusPending
	}
	result, err := db.ExecContext(ctx, query,
		task.EventType, task.Payload, task.Status, task.RetryCount, task.LastError, now, task.NextRetryAt)
	if err != nil {
		return fmt.Errorf("failed to create outbox task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	task.ID = id
	task.CreatedAt = now

	return nil
}

func (db *DB) GetPendingOutboxTasks(ctx context.Context, limit int) ([]models.OutboxTask, error) {
	query := `SELECT id, event_type, payload, status, retry_count, last_error, created_at, processed_at, next_retry_at
              FROM outbox
              WHERE status IN ('pending', 'retry') AND (next_retry_at IS NULL OR next_retry_at <= ?)
              ORDER BY created_at ASC LIMIT ?`
	rows, err := db.QueryContext(ctx, query, time.Now(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending outbox tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.OutboxTask
	for rows.Next() {
		var t models.OutboxTask
		var lastError sql.NullString
		var processedAt, nextRetryAt sql.NullTime
		err := rows.Scan(&t.ID, &t.EventType, &t.Payload, &t.Status, &t.RetryCount,
			&lastError, &t.CreatedAt, &processedAt, &nextRetryAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outbox task: %w", err)
		}
		t.LastError = lastError.String
		if processedAt.Valid {
			t.ProcessedAt = &processedAt.Time
		}
		if nextRetryAt.Valid {
			t.NextRetryAt = &nextRetryAt.Time
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (db *DB) MarkOutboxTaskDone(ctx context.Context, id int64) error {
	query := `UPDATE outbox SET status = ?, processed_at = ? WHERE id = ?`
	_, err := db.ExecContext(ctx, query, models.TaskStatusDone, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to mark outbox task done: %w", err)
	}
	return nil
}

// MarkOutboxTaskFailed records the failure and either schedules a retry
// or moves the task to the dead state once retries are exhausted.
func (db *DB) MarkOutboxTaskFailed(ctx context.Context, id int64, taskErr string, nextRetryAt time.Time, dead bool) error {
	status := models.TaskStatusRetry
	if dead {
		status = models.TaskStatusDead
	}
	query := `UPDATE outbox SET status = ?, retry_count = retry_count + 1, last_error = ?, next_retry_at = ? WHERE id = ?`
	_, err := db.ExecContext(ctx, query, status, taskErr, nextRetryAt, id)
	if err != nil {
		return fmt.Errorf("failed to mark outbox task failed: %w", err)
	}
	return nil
}
