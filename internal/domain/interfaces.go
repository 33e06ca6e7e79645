package domain

import (
	"context"
	"time"

	"innkeep/internal/models"
)

type Store interface {
	CreateHotel(ctx context.Context, hotel *models.Hotel) error
	GetHotel(ctx context.Context, id int64) (*models.Hotel, error)
	ListHotels(ctx context.Context) ([]models.Hotel, error)
	SetHotelActive(ctx context.Context, id int64, active bool) error
	DeleteHotel(ctx context.Context, id int64) error

	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, hotelID, roomID int64) (*models.Room, error)
	ListActiveRooms(ctx context.Context, hotelID int64) ([]models.Room, error)
	UpdateRoom(ctx context.Context, room *models.Room) error
	DeactivateRoom(ctx context.Context, hotelID, roomID int64) error
	DeleteRoom(ctx context.Context, hotelID, roomID int64) error

	FindAvailableRooms(ctx context.Context, hotelID int64, stay models.Stay, guestCount int64) ([]models.Room, error)
	RoomStatusToday(ctx context.Context, hotelID int64, today time.Time) (*models.RoomStatus, error)
	CreateBooking(ctx context.Context, req *models.BookingRequest) (*models.Booking, error)
	UpdateBooking(ctx context.Context, hotelID, bookingID int64, req *models.BookingRequest) (*models.Booking, error)
	CancelBooking(ctx context.Context, hotelID, bookingID int64) error
	SetPaymentStatus(ctx context.Context, hotelID, bookingID int64, status string) error
	GetBooking(ctx context.Context, hotelID, bookingID int64) (*models.Booking, error)
	ListBookings(ctx context.Context, hotelID int64, limit int) ([]models.Booking, error)
	GetCancelledBookings(ctx context.Context, hotelID int64, limit int) ([]models.Booking, error)
	GetBookingsByDateRange(ctx context.Context, hotelID int64, start, end time.Time) ([]models.Booking, error)
	GetStaysInRange(ctx context.Context, hotelID int64, start, end time.Time) ([]models.Booking, error)

	GetOccupancy(ctx context.Context, hotelID, bookingID int64) (*models.OccupancyRecord, error)
	CheckInGuest(ctx context.Context, hotelID, bookingID int64, notes string) error
	CheckOutGuest(ctx context.Context, hotelID, bookingID int64) error
	GetTodaysCheckins(ctx context.Context, hotelID int64, today time.Time) ([]models.Booking, error)
	GetTodaysCheckouts(ctx context.Context, hotelID int64, today time.Time) ([]models.Booking, error)
	GetCurrentGuests(ctx context.Context, hotelID int64, today time.Time) ([]models.CurrentGuest, error)

	SalesTotals(ctx context.Context, hotelID int64, start, end time.Time) (*models.SalesReport, error)
	Analytics(ctx context.Context, hotelID int64, today time.Time) (*models.Analytics, error)

	EnqueueOutboxEvent(ctx context.Context, event *models.OutboxEvent) error
	GetPendingOutboxEvents(ctx context.Context, limit int) ([]models.OutboxEvent, error)
	UpdateOutboxEventStatus(ctx context.Context, id int64, status, errMsg string, nextRetryAt *time.Time) error
}

type DraftRepository interface {
	GetDraft(ctx context.Context, clientID string) (*models.BookingDraft, error)
	SetDraft(ctx context.Context, draft *models.BookingDraft) error
	ClearDraft(ctx context.Context, clientID string) error
	CheckRateLimit(ctx context.Context, clientID string, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type OutboxEnqueuer interface {
	Enqueue(ctx context.Context, eventType string, payload interface{}) error
}
