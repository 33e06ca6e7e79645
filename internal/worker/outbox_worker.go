package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"innkeep/internal/database"
	"innkeep/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// OutboxWorker drains the event_outbox table into a Redis list so external
// consumers see every booking mutation exactly as the ledger recorded it.
// Events that keep failing land in a dead-letter list for inspection.
type OutboxWorker struct {
	db            *database.DB
	redis         *redis.Client
	retryPolicy   RetryPolicy
	nudge         chan struct{}
	queueKey      string
	deadLetterKey string
	pollInterval  time.Duration
	batchSize     int
	logger        *zerolog.Logger
}

// NewOutboxWorker builds a worker with sane defaults.
func NewOutboxWorker(db *database.DB, redisClient *redis.Client, retry RetryPolicy, queueKey, deadLetterKey string, pollInterval time.Duration, batchSize int, logger *zerolog.Logger) *OutboxWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 5
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = 1 * time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}
	if queueKey == "" {
		queueKey = "innkeep:events"
	}
	if deadLetterKey == "" {
		deadLetterKey = "innkeep:events:dead"
	}
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 50
	}

	return &OutboxWorker{
		db:            db,
		redis:         redisClient,
		retryPolicy:   retry,
		nudge:         make(chan struct{}, 1),
		queueKey:      queueKey,
		deadLetterKey: deadLetterKey,
		pollInterval:  pollInterval,
		batchSize:     batchSize,
		logger:        logger,
	}
}

// Enqueue persists the event to the outbox table and nudges the drain loop.
func (w *OutboxWorker) Enqueue(ctx context.Context, eventType string, payload interface{}) error {
	if eventType == "" {
		return errors.New("event type is required")
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	event := &models.OutboxEvent{
		EventType: eventType,
		Payload:   raw,
		Status:    models.OutboxPending,
	}
	if err := w.db.EnqueueOutboxEvent(ctx, event); err != nil {
		return fmt.Errorf("persist outbox event: %w", err)
	}

	select {
	case w.nudge <- struct{}{}:
	default:
	}

	return nil
}

// Start launches the drain loop; stops when ctx is done.
func (w *OutboxWorker) Start(ctx context.Context) {
	w.logger.Info().Msg("outbox worker started")
	defer w.logger.Info().Msg("outbox worker stopped")

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		w.Drain(ctx)

		select {
		case <-ctx.Done():
			return
		case <-w.nudge:
		case <-ticker.C:
		}
	}
}

// Drain processes one batch of due events. Exposed for tests and shutdown.
func (w *OutboxWorker) Drain(ctx context.Context) {
	events, err := w.db.GetPendingOutboxEvents(ctx, w.batchSize)
	if err != nil {
		w.logger.Error().Err(err).Msg("fetch pending outbox events")
		return
	}

	for i := range events {
		w.processEvent(ctx, &events[i])
	}
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *models.OutboxEvent) {
	if err := w.deliver(ctx, event); err != nil {
		w.retryOrFail(ctx, event, err)
		return
	}

	if err := w.db.UpdateOutboxEventStatus(ctx, event.ID, models.OutboxCompleted, "", nil); err != nil {
		w.logger.Error().Err(err).Int64("event_id", event.ID).Msg("mark outbox event completed")
	}
}

func (w *OutboxWorker) deliver(ctx context.Context, event *models.OutboxEvent) error {
	if w.redis == nil {
		return errors.New("redis client is nil")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return w.redis.LPush(ctx, w.queueKey, data).Err()
}

func (w *OutboxWorker) retryOrFail(ctx context.Context, event *models.OutboxEvent, cause error) {
	attempt := event.RetryCount + 1
	if attempt >= w.retryPolicy.MaxRetries {
		if err := w.db.UpdateOutboxEventStatus(ctx, event.ID, models.OutboxFailed, cause.Error(), nil); err != nil {
			w.logger.Error().Err(err).Int64("event_id", event.ID).Msg("mark outbox event failed")
		}
		w.pushDeadLetter(ctx, event)
		return
	}

	nextTime := time.Now().UTC().Add(w.retryPolicy.NextDelay(attempt))
	if err := w.db.UpdateOutboxEventStatus(ctx, event.ID, models.OutboxRetry, cause.Error(), &nextTime); err != nil {
		w.logger.Error().Err(err).Int64("event_id", event.ID).Msg("mark outbox event for retry")
	}
}

func (w *OutboxWorker) pushDeadLetter(ctx context.Context, event *models.OutboxEvent) {
	if w.redis == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		w.logger.Error().Err(err).Int64("event_id", event.ID).Msg("encode deadletter event")
		return
	}
	if err := w.redis.LPush(ctx, w.deadLetterKey, data).Err(); err != nil {
		w.logger.Error().Err(err).Int64("event_id", event.ID).Msg("deadletter push")
	}
}
