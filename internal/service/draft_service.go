package service

import (
	"context"
	"time"

	"innkeep/internal/database"
	"innkeep/internal/domain"
	"innkeep/internal/models"

	"github.com/rs/zerolog"
)

// DraftService drives the two-step quick-booking flow: a client picks a room
// and dates, then confirms with guest details. Drafts expire on their own;
// nothing is written to the ledger until confirmation.
type DraftService struct {
	drafts  domain.DraftRepository
	store   domain.Store
	booking *BookingService
	logger  *zerolog.Logger
}

func NewDraftService(drafts domain.DraftRepository, store domain.Store, booking *BookingService, logger *zerolog.Logger) *DraftService {
	return &DraftService{
		drafts:  drafts,
		store:   store,
		booking: booking,
		logger:  logger,
	}
}

func (s *DraftService) GetDraft(ctx context.Context, clientID string) (*models.BookingDraft, error) {
	return s.drafts.GetDraft(ctx, clientID)
}

func (s *DraftService) StartDraft(ctx context.Context, clientID string, hotelID, roomID int64, stay models.Stay, guestCount int64) (*models.BookingDraft, error) {
	allowed, err := s.drafts.CheckRateLimit(ctx, clientID, models.RateLimitRequests, models.RateLimitWindow*time.Second)
	if err != nil {
		s.logger.Error().Err(err).Str("client_id", clientID).Msg("rate limit check failed")
	} else if !allowed {
		return nil, database.ErrRateLimited
	}

	if !stay.Valid() {
		return nil, database.ErrInvalidDateRange
	}
	if guestCount < 1 {
		return nil, database.ErrInvalidGuestCount
	}

	room, err := s.store.GetRoom(ctx, hotelID, roomID)
	if err != nil {
		return nil, err
	}
	if guestCount > room.Capacity {
		return nil, database.ErrGuestCountExceedsCapacity
	}

	draft := &models.BookingDraft{
		ID:         clientID,
		HotelID:    hotelID,
		RoomID:     room.ID,
		RoomNumber: room.RoomNumber,
		Stay:       stay,
		GuestCount: guestCount,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.drafts.SetDraft(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *DraftService) ConfirmDraft(ctx context.Context, clientID string, guest models.GuestInfo) (*models.Booking, error) {
	draft, err := s.drafts.GetDraft(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, database.ErrDraftNotFound
	}

	booking, err := s.booking.CreateBooking(ctx, &models.BookingRequest{
		HotelID:    draft.HotelID,
		RoomID:     draft.RoomID,
		Guest:      guest,
		Stay:       draft.Stay,
		GuestCount: draft.GuestCount,
	})
	if err != nil {
		return nil, err
	}

	if err := s.drafts.ClearDraft(ctx, clientID); err != nil {
		s.logger.Error().Err(err).Str("client_id", clientID).Msg("failed to clear confirmed draft")
	}
	return booking, nil
}

func (s *DraftService) ClearDraft(ctx context.Context, clientID string) error {
	return s.drafts.ClearDraft(ctx, clientID)
}
