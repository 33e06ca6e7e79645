package models

import "time"

// BookingDraft is the typed session object for the two-step quick-booking
// flow. It replaces any per-conversation scratch state: every field the flow
// collects lives here explicitly and the draft is passed by value between
// steps.
type BookingDraft struct {
	ID         string    `json:"id"`
	HotelID    int64     `json:"hotel_id"`
	RoomID     int64     `json:"room_id"`
	RoomNumber string    `json:"room_number"`
	Guest      GuestInfo `json:"guest"`
	Stay       Stay      `json:"stay"`
	GuestCount int64     `json:"guest_count"`
	CreatedAt  time.Time `json:"created_at"`
}
