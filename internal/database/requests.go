package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"arenda/internal/models"
)

func (db *DB) CreateRequest(ctx context.Context, request *models.Request) error {
	query := `INSERT INTO requests (requestor_id, description, created) VALUES (?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query, request.RequestorID, request.Description, formatTime(now))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	request.ID = id
	request.Created = models.NewLocalTime(now)

	return nil
}

func (db *DB) GetRequest(ctx context.Context, id int64) (*models.Request, error) {
	var request models.Request
	var created string
	query := `SELECT id, requestor_id, description, created FROM requests WHERE id = ?`
	err := db.QueryRowContext(ctx, query, id).Scan(
		&request.ID, &request.RequestorID, &request.Description, &created,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("request %d: %w", id, ErrRequestNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	createdAt, err := parseTime(created)
	if err != nil {
		return nil, fmt.Errorf("failed to parse request created %s: %w", created, err)
	}
	request.Created = models.NewLocalTime(createdAt)
	return &request, nil
}

func (db *DB) ListRequestsByRequestor(ctx context.Context, requestorID int64) ([]models.Request, error) {
	query := `SELECT id, requestor_id, description, created FROM requests
              WHERE requestor_id = ? ORDER BY created DESC, id DESC`
	return db.queryRequests(ctx, query, requestorID)
}

// ListRequests returns one page of all requests, newest first.
func (db *DB) ListRequests(ctx context.Context, offset, limit int) ([]models.Request, error) {
	query := `SELECT id, requestor_id, description, created FROM requests
              ORDER BY created DESC, id DESC LIMIT ? OFFSET ?`
	return db.queryRequests(ctx, query, limit, offset)
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...any) ([]models.Request, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []models.Request
	for rows.Next() {
		var request models.Request
		var created string
		if err := rows.Scan(&request.ID, &request.RequestorID, &request.Description, &created); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		createdAt, err := parseTime(created)
		if err != nil {
			return nil, fmt.Errorf("failed to parse request created %s: %w", created, err)
		}
		request.Created = models.NewLocalTime(createdAt)
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}
