package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Booking struct {
	ID            int64           `json:"id"`
	Reference     string          `json:"reference"`
	HotelID       int64           `json:"hotel_id"`
	RoomID        int64           `json:"room_id"`
	RoomNumber    string          `json:"room_number"`
	GuestName     string          `json:"guest_name"`
	GuestEmail    string          `json:"guest_email,omitempty"`
	GuestPhone    string          `json:"guest_phone,omitempty"`
	Stay          Stay            `json:"stay"`
	GuestCount    int64           `json:"guest_count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentStatus string          `json:"payment_status"` // pending, paid
	BookingStatus string          `json:"booking_status"` // confirmed, cancelled
	CreatedAt     time.Time       `json:"created_at"`
	CancelledAt   *time.Time      `json:"cancelled_at,omitempty"`
}

// Confirmed reports whether the booking still occupies its room.
func (b *Booking) Confirmed() bool {
	return b.BookingStatus == StatusConfirmed
}

// GuestInfo is the identity part of a booking request.
type GuestInfo struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// BookingRequest is the typed input for creating or updating a booking.
// OverrideAmount, when set, replaces the derived nights x price total.
type BookingRequest struct {
	HotelID        int64            `json:"hotel_id"`
	RoomID         int64            `json:"room_id"`
	Guest          GuestInfo        `json:"guest"`
	Stay           Stay             `json:"stay"`
	GuestCount     int64            `json:"guest_count"`
	OverrideAmount *decimal.Decimal `json:"override_amount,omitempty"`
}
