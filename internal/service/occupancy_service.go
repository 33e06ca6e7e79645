package service

import (
	"context"

	"innkeep/internal/domain"
	"innkeep/internal/events"
	"innkeep/internal/metrics"
	"innkeep/internal/models"

	"github.com/rs/zerolog"
)

type OccupancyService struct {
	store    domain.Store
	eventBus domain.EventPublisher
	outbox   domain.OutboxEnqueuer
	logger   *zerolog.Logger
}

func NewOccupancyService(store domain.Store, eventBus domain.EventPublisher, outbox domain.OutboxEnqueuer, logger *zerolog.Logger) *OccupancyService {
	return &OccupancyService{
		store:    store,
		eventBus: eventBus,
		outbox:   outbox,
		logger:   logger,
	}
}

func (s *OccupancyService) GetOccupancy(ctx context.Context, hotelID, bookingID int64) (*models.OccupancyRecord, error) {
	return s.store.GetOccupancy(ctx, hotelID, bookingID)
}

func (s *OccupancyService) CheckInGuest(ctx context.Context, hotelID, bookingID int64, notes string) (*models.OccupancyRecord, error) {
	if err := s.store.CheckInGuest(ctx, hotelID, bookingID, notes); err != nil {
		return nil, err
	}

	metrics.IncOccupancy("check_in")
	s.publishTransition(ctx, events.EventGuestCheckedIn, hotelID, bookingID)

	return s.store.GetOccupancy(ctx, hotelID, bookingID)
}

func (s *OccupancyService) CheckOutGuest(ctx context.Context, hotelID, bookingID int64) (*models.OccupancyRecord, error) {
	if err := s.store.CheckOutGuest(ctx, hotelID, bookingID); err != nil {
		return nil, err
	}

	metrics.IncOccupancy("check_out")
	s.publishTransition(ctx, events.EventGuestCheckedOut, hotelID, bookingID)

	return s.store.GetOccupancy(ctx, hotelID, bookingID)
}

func (s *OccupancyService) GetTodaysCheckins(ctx context.Context, hotelID int64) ([]models.Booking, error) {
	return s.store.GetTodaysCheckins(ctx, hotelID, models.Today())
}

func (s *OccupancyService) GetTodaysCheckouts(ctx context.Context, hotelID int64) ([]models.Booking, error) {
	return s.store.GetTodaysCheckouts(ctx, hotelID, models.Today())
}

func (s *OccupancyService) GetCurrentGuests(ctx context.Context, hotelID int64) ([]models.CurrentGuest, error) {
	return s.store.GetCurrentGuests(ctx, hotelID, models.Today())
}

func (s *OccupancyService) publishTransition(ctx context.Context, eventType string, hotelID, bookingID int64) {
	booking, err := s.store.GetBooking(ctx, hotelID, bookingID)
	if err != nil {
		s.logger.Error().Err(err).Int64("booking_id", bookingID).Msg("failed to load booking for event")
		return
	}

	payload := eventPayload(booking)
	if s.eventBus != nil {
		if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
			s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", bookingID).Msg("publish event error")
		}
	}
	if s.outbox != nil {
		if err := s.outbox.Enqueue(ctx, eventType, payload); err != nil {
			s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", bookingID).Msg("outbox enqueue error")
		}
	}
}
