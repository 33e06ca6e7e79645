package repository

import (
	"context"
	"sync"
	"time"

	"innkeep/internal/models"
)

type MemoryDraftRepository struct {
	drafts     sync.Map
	rateLimits sync.Map
	ttl        time.Duration
}

func NewMemoryDraftRepository(ttl time.Duration) *MemoryDraftRepository {
	return &MemoryDraftRepository{
		ttl: ttl,
	}
}

type draftEntry struct {
	draft     *models.BookingDraft
	expiresAt time.Time
}

func (r *MemoryDraftRepository) GetDraft(ctx context.Context, clientID string) (*models.BookingDraft, error) {
	val, ok := r.drafts.Load(clientID)
	if !ok {
		return nil, nil
	}
	entry := val.(*draftEntry)
	if r.ttl > 0 && time.Now().After(entry.expiresAt) {
		r.drafts.Delete(clientID)
		return nil, nil
	}
	return entry.draft, nil
}

func (r *MemoryDraftRepository) SetDraft(ctx context.Context, draft *models.BookingDraft) error {
	r.drafts.Store(draft.ID, &draftEntry{
		draft:     draft,
		expiresAt: time.Now().Add(r.ttl),
	})
	return nil
}

func (r *MemoryDraftRepository) ClearDraft(ctx context.Context, clientID string) error {
	r.drafts.Delete(clientID)
	return nil
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func (r *MemoryDraftRepository) CheckRateLimit(ctx context.Context, clientID string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	val, ok := r.rateLimits.Load(clientID)

	var entry *rateLimitEntry
	if !ok {
		entry = &rateLimitEntry{
			count:     1,
			expiresAt: now.Add(window),
		}
	} else {
		entry = val.(*rateLimitEntry)
		if now.After(entry.expiresAt) {
			entry.count = 1
			entry.expiresAt = now.Add(window)
		} else {
			entry.count++
		}
	}

	r.rateLimits.Store(clientID, entry)
	return entry.count <= limit, nil
}
