package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Room struct {
	ID            int64           `json:"id" yaml:"id"`
	HotelID       int64           `json:"hotel_id" yaml:"hotel_id"`
	RoomNumber    string          `json:"room_number" yaml:"room_number"`
	RoomType      string          `json:"room_type" yaml:"room_type"`
	PricePerNight decimal.Decimal `json:"price_per_night" yaml:"price_per_night"`
	Capacity      int64           `json:"capacity" yaml:"capacity"`
	IsActive      bool            `json:"is_active" yaml:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// OccupiedRoom pairs a room with the confirmed booking that holds it today.
type OccupiedRoom struct {
	Room    Room    `json:"room"`
	Booking Booking `json:"booking"`
}

// RoomStatus is the today view: rooms free right now (future bookings do not
// count) and rooms with a guest staying tonight.
type RoomStatus struct {
	Available []Room         `json:"available"`
	Occupied  []OccupiedRoom `json:"occupied"`
}
