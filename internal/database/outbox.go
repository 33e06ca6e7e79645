package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"innkeep/internal/models"
)

func (db *DB) EnqueueOutboxEvent(ctx context.Context, event *models.OutboxEvent) error {
	query := `INSERT INTO event_outbox (event_type, payload, status, retry_count, last_error, created_at, next_retry_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	if event.Status == "" {
		event.Status = models.OutboxPending
	}
	result, err := db.ExecContext(ctx, query,
		event.EventType,
		event.Payload,
		event.Status,
		event.RetryCount,
		event.LastError,
		now,
		event.NextRetryAt,
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue outbox event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	event.ID = id
	event.CreatedAt = now
	return nil
}

func (db *DB) GetPendingOutboxEvents(ctx context.Context, limit int) ([]models.OutboxEvent, error) {
	query := `SELECT id, event_type, payload, status, retry_count, COALESCE(last_error, ''), created_at, processed_at, next_retry_at
              FROM event_outbox
              WHERE status IN ('pending', 'retry') AND (next_retry_at IS NULL OR next_retry_at <= ?)
              ORDER BY created_at ASC LIMIT ?`
	rows, err := db.QueryContext(ctx, query, time.Now().UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending outbox events: %w", err)
	}
	defer rows.Close()

	var events []models.OutboxEvent
	for rows.Next() {
		event, err := scanOutboxEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (db *DB) UpdateOutboxEventStatus(ctx context.Context, id int64, status, errMsg string, nextRetryAt *time.Time) error {
	var query string
	var args []interface{}
	now := time.Now().UTC()

	switch status {
	case models.OutboxRetry:
		query = `UPDATE event_outbox SET status = ?, last_error = ?, next_retry_at = ?, retry_count = retry_count + 1 WHERE id = ?`
		args = []interface{}{status, errMsg, nextRetryAt, id}
	case models.OutboxCompleted, models.OutboxFailed:
		query = `UPDATE event_outbox SET status = ?, last_error = ?, next_retry_at = ?, processed_at = ? WHERE id = ?`
		args = []interface{}{status, errMsg, nextRetryAt, &now, id}
	default:
		query = `UPDATE event_outbox SET status = ?, last_error = ?, next_retry_at = ? WHERE id = ?`
		args = []interface{}{status, errMsg, nextRetryAt, id}
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update outbox event status: %w", err)
	}
	return nil
}

func (db *DB) GetFailedOutboxEvents(ctx context.Context) ([]models.OutboxEvent, error) {
	query := `SELECT id, event_type, payload, status, retry_count, COALESCE(last_error, ''), created_at, processed_at, next_retry_at
              FROM event_outbox WHERE status = 'failed' ORDER BY created_at DESC`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get failed outbox events: %w", err)
	}
	defer rows.Close()

	var events []models.OutboxEvent
	for rows.Next() {
		event, err := scanOutboxEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func scanOutboxEvent(rows *sql.Rows) (models.OutboxEvent, error) {
	var (
		e           models.OutboxEvent
		processedAt sql.NullTime
		nextRetryAt sql.NullTime
	)
	err := rows.Scan(&e.ID, &e.EventType, &e.Payload, &e.Status, &e.RetryCount, &e.LastError, &e.CreatedAt, &processedAt, &nextRetryAt)
	if err != nil {
		return e, fmt.Errorf("failed to scan outbox event: %w", err)
	}
	if processedAt.Valid {
		t := processedAt.Time
		e.ProcessedAt = &t
	}
	if nextRetryAt.Valid {
		t := nextRetryAt.Time
		e.NextRetryAt = &t
	}
	return e, nil
}
