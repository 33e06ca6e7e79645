package service

import (
	"context"
	"errors"
	"time"

	"innkeep/internal/database"
	"innkeep/internal/domain"
	"innkeep/internal/events"
	"innkeep/internal/metrics"
	"innkeep/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	store    domain.Store
	eventBus domain.EventPublisher
	outbox   domain.OutboxEnqueuer
	logger   *zerolog.Logger
}

func NewBookingService(store domain.Store, eventBus domain.EventPublisher, outbox domain.OutboxEnqueuer, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		store:    store,
		eventBus: eventBus,
		outbox:   outbox,
		logger:   logger,
	}
}

// ValidateStay rejects stays starting in the past or beyond the booking horizon.
func (s *BookingService) ValidateStay(stay models.Stay) error {
	if !stay.Valid() {
		return database.ErrInvalidDateRange
	}
	maxDate := models.Today().AddDate(0, 0, models.MaxBookingDays)
	if stay.CheckIn.After(maxDate) {
		return database.ErrInvalidDateRange
	}
	return nil
}

func (s *BookingService) FindAvailableRooms(ctx context.Context, hotelID int64, stay models.Stay, guestCount int64) ([]models.Room, error) {
	if !stay.Valid() {
		return nil, database.ErrInvalidDateRange
	}
	return s.store.FindAvailableRooms(ctx, hotelID, stay, guestCount)
}

func (s *BookingService) RoomStatusToday(ctx context.Context, hotelID int64) (*models.RoomStatus, error) {
	return s.store.RoomStatusToday(ctx, hotelID, models.Today())
}

func (s *BookingService) CreateBooking(ctx context.Context, req *models.BookingRequest) (*models.Booking, error) {
	if err := s.ValidateStay(req.Stay); err != nil {
		return nil, err
	}

	booking, err := s.store.CreateBooking(ctx, req)
	if err != nil {
		if errors.Is(err, database.ErrNotAvailable) {
			metrics.IncBookingConflict()
		}
		return nil, err
	}

	metrics.IncBookingCreated()
	s.publishEvent(events.EventBookingCreated, booking)
	s.enqueueOutbox(ctx, events.EventBookingCreated, booking)

	return booking, nil
}

func (s *BookingService) UpdateBooking(ctx context.Context, hotelID, bookingID int64, req *models.BookingRequest) (*models.Booking, error) {
	if err := s.ValidateStay(req.Stay); err != nil {
		return nil, err
	}

	booking, err := s.store.UpdateBooking(ctx, hotelID, bookingID, req)
	if err != nil {
		if errors.Is(err, database.ErrNotAvailable) {
			metrics.IncBookingConflict()
		}
		return nil, err
	}

	s.publishEvent(events.EventBookingUpdated, booking)
	s.enqueueOutbox(ctx, events.EventBookingUpdated, booking)

	return booking, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, hotelID, bookingID int64) (*models.Booking, error) {
	if err := s.store.CancelBooking(ctx, hotelID, bookingID); err != nil {
		return nil, err
	}

	metrics.IncBookingCancelled()

	booking, err := s.store.GetBooking(ctx, hotelID, bookingID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(events.EventBookingCancelled, booking)
	s.enqueueOutbox(ctx, events.EventBookingCancelled, booking)

	return booking, nil
}

func (s *BookingService) SetPaymentStatus(ctx context.Context, hotelID, bookingID int64, status string) (*models.Booking, error) {
	if err := s.store.SetPaymentStatus(ctx, hotelID, bookingID, status); err != nil {
		return nil, err
	}

	booking, err := s.store.GetBooking(ctx, hotelID, bookingID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(events.EventPaymentMarked, booking)
	s.enqueueOutbox(ctx, events.EventPaymentMarked, booking)

	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, hotelID, bookingID int64) (*models.Booking, error) {
	return s.store.GetBooking(ctx, hotelID, bookingID)
}

func (s *BookingService) ListBookings(ctx context.Context, hotelID int64, limit int) ([]models.Booking, error) {
	return s.store.ListBookings(ctx, hotelID, limit)
}

func (s *BookingService) GetCancelledBookings(ctx context.Context, hotelID int64, limit int) ([]models.Booking, error) {
	return s.store.GetCancelledBookings(ctx, hotelID, limit)
}

func (s *BookingService) GetBookingsByDateRange(ctx context.Context, hotelID int64, start, end time.Time) ([]models.Booking, error) {
	return s.store.GetBookingsByDateRange(ctx, hotelID, start, end)
}

func eventPayload(booking *models.Booking) events.BookingEventPayload {
	return events.BookingEventPayload{
		BookingID:     booking.ID,
		Reference:     booking.Reference,
		HotelID:       booking.HotelID,
		RoomID:        booking.RoomID,
		RoomNumber:    booking.RoomNumber,
		GuestName:     booking.GuestName,
		CheckIn:       booking.Stay.CheckIn.Format(models.DateLayout),
		CheckOut:      booking.Stay.CheckOut.Format(models.DateLayout),
		TotalAmount:   booking.TotalAmount.String(),
		PaymentStatus: booking.PaymentStatus,
		BookingStatus: booking.BookingStatus,
	}
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	if err := s.eventBus.PublishJSON(eventType, eventPayload(booking)); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}

func (s *BookingService) enqueueOutbox(ctx context.Context, eventType string, booking *models.Booking) {
	if s.outbox == nil {
		return
	}

	if err := s.outbox.Enqueue(ctx, eventType, eventPayload(booking)); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("outbox enqueue error")
	}
}
