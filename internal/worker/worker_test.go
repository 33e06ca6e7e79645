package worker

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"testing"
	"time"

	"innkeep/internal/database"
	"innkeep/internal/events"
	"innkeep/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func TestOutboxWorker_EnqueueAndDrain(t *testing.T) {
	db := newTestDB(t)
	mr, client := newTestRedis(t)
	logger := zerolog.New(io.Discard)
	worker := NewOutboxWorker(db, client, RetryPolicy{}, "events", "events:dead", time.Second, 10, &logger)

	ctx := context.Background()
	payload := events.BookingEventPayload{BookingID: 1, Reference: "ref-1", HotelID: 1}
	if err := worker.Enqueue(ctx, events.EventBookingCreated, payload); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	worker.Drain(ctx)

	items, err := mr.List("events")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 delivered event, got %d", len(items))
	}

	status, retryCount, _ := loadEventStatus(t, db, 1)
	if status != models.OutboxCompleted {
		t.Fatalf("expected status=completed, got %s", status)
	}
	if retryCount != 0 {
		t.Fatalf("expected retry_count=0, got %d", retryCount)
	}
}

func TestOutboxWorker_RetryOnDeliveryFailure(t *testing.T) {
	db := newTestDB(t)
	logger := zerolog.New(io.Discard)
	// nil redis client makes every delivery fail
	worker := NewOutboxWorker(db, nil, RetryPolicy{MaxRetries: 3, InitialDelay: time.Second}, "events", "events:dead", time.Second, 10, &logger)

	ctx := context.Background()
	if err := worker.Enqueue(ctx, events.EventBookingCreated, events.BookingEventPayload{BookingID: 2}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	worker.Drain(ctx)

	status, retryCount, nextRetry := loadEventStatus(t, db, 1)
	if status != models.OutboxRetry {
		t.Fatalf("expected status=retry, got %s", status)
	}
	if retryCount != 1 {
		t.Fatalf("expected retry_count=1, got %d", retryCount)
	}
	if !nextRetry.Valid || nextRetry.Time.Before(time.Now().UTC()) {
		t.Fatalf("expected next_retry_at in future, got %v", nextRetry)
	}
}

func TestOutboxWorker_FailAfterMaxRetries(t *testing.T) {
	db := newTestDB(t)
	logger := zerolog.New(io.Discard)
	worker := NewOutboxWorker(db, nil, RetryPolicy{MaxRetries: 1}, "events", "events:dead", time.Second, 10, &logger)

	ctx := context.Background()
	if err := worker.Enqueue(ctx, events.EventBookingCreated, events.BookingEventPayload{BookingID: 3}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	worker.Drain(ctx)

	status, _, _ := loadEventStatus(t, db, 1)
	if status != models.OutboxFailed {
		t.Fatalf("expected status=failed, got %s", status)
	}
}

func TestOutboxWorker_EnqueueEmptyType(t *testing.T) {
	db := newTestDB(t)
	logger := zerolog.New(io.Discard)
	worker := NewOutboxWorker(db, nil, RetryPolicy{}, "", "", 0, 0, &logger)

	if err := worker.Enqueue(context.Background(), "", nil); err == nil {
		t.Fatalf("expected error for empty event type")
	}
}

func TestRetryPolicyNextDelay(t *testing.T) {
	policy := RetryPolicy{InitialDelay: time.Second, BackoffFactor: 2, MaxDelay: 5 * time.Second}
	d1 := policy.NextDelay(1)
	d2 := policy.NextDelay(2)
	d3 := policy.NextDelay(5)

	if d1 != time.Second {
		t.Fatalf("attempt1 expected 1s, got %s", d1)
	}
	if d2 != 2*time.Second {
		t.Fatalf("attempt2 expected 2s, got %s", d2)
	}
	if d3 != 5*time.Second {
		t.Fatalf("attempt5 expected capped 5s, got %s", d3)
	}
}

// Helpers

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worker.db")
	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(path, &logger)
	if err != nil {
		t.Fatalf("new db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func loadEventStatus(t *testing.T, db *database.DB, id int64) (status string, retryCount int, nextRetry sql.NullTime) {
	t.Helper()
	row := db.QueryRowContext(context.Background(), `SELECT status, retry_count, next_retry_at FROM event_outbox WHERE id = ?`, id)
	if err := row.Scan(&status, &retryCount, &nextRetry); err != nil {
		t.Fatalf("scan event: %v", err)
	}
	return status, retryCount, nextRetry
}
