package repository

import (
	"context"
	"sync/atomic"
	"time"

	"innkeep/internal/domain"
	"innkeep/internal/models"

	"github.com/rs/zerolog"
)

type FailoverDraftRepository struct {
	primary   domain.DraftRepository
	fallback  domain.DraftRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailoverDraftRepository(primary, fallback domain.DraftRepository, logger *zerolog.Logger) *FailoverDraftRepository {
	return &FailoverDraftRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverDraftRepository) GetDraft(ctx context.Context, clientID string) (*models.BookingDraft, error) {
	if !r.isDown.Load() {
		draft, err := r.primary.GetDraft(ctx, clientID)
		if err == nil {
			return draft, nil
		}
		r.logger.Error().Err(err).Msg("Primary draft repository failed, falling back to memory")
		r.isDown.Store(true)
		r.lastCheck = time.Now()
	}

	// Try to recover after 1 minute
	if r.isDown.Load() && time.Since(r.lastCheck) > time.Minute {
		draft, err := r.primary.GetDraft(ctx, clientID)
		if err == nil {
			r.isDown.Store(false)
			return draft, nil
		}
		r.lastCheck = time.Now()
	}

	return r.fallback.GetDraft(ctx, clientID)
}

func (r *FailoverDraftRepository) SetDraft(ctx context.Context, draft *models.BookingDraft) error {
	if !r.isDown.Load() {
		err := r.primary.SetDraft(ctx, draft)
		if err == nil {
			return nil
		}
		r.logger.Error().Err(err).Msg("Primary draft repository failed, falling back to memory")
		r.isDown.Store(true)
		r.lastCheck = time.Now()
	}

	return r.fallback.SetDraft(ctx, draft)
}

func (r *FailoverDraftRepository) ClearDraft(ctx context.Context, clientID string) error {
	if !r.isDown.Load() {
		err := r.primary.ClearDraft(ctx, clientID)
		if err == nil {
			return nil
		}
		r.logger.Error().Err(err).Msg("Primary draft repository failed, falling back to memory")
		r.isDown.Store(true)
		r.lastCheck = time.Now()
	}

	return r.fallback.ClearDraft(ctx, clientID)
}

func (r *FailoverDraftRepository) CheckRateLimit(ctx context.Context, clientID string, limit int, window time.Duration) (bool, error) {
	if !r.isDown.Load() {
		allowed, err := r.primary.CheckRateLimit(ctx, clientID, limit, window)
		if err == nil {
			return allowed, nil
		}
		r.logger.Error().Err(err).Msg("Primary draft repository failed, falling back to memory")
		r.isDown.Store(true)
		r.lastCheck = time.Now()
	}

	return r.fallback.CheckRateLimit(ctx, clientID, limit, window)
}
