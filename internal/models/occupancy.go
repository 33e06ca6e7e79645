package models

import "time"

// OccupancyState is the physical stay state of a booking, independent of its
// calendar dates and payment status.
type OccupancyState string

const (
	OccupancyNotArrived OccupancyState = "not_arrived"
	OccupancyCheckedIn  OccupancyState = "checked_in"
	OccupancyCheckedOut OccupancyState = "checked_out"
)

// OccupancyRecord tracks actual arrival and departure for a booking.
// CheckOutTime is only ever set after CheckInTime.
type OccupancyRecord struct {
	ID           int64      `json:"id"`
	BookingID    int64      `json:"booking_id"`
	CheckInTime  *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// State derives the named state from the timestamp pair.
func (r *OccupancyRecord) State() OccupancyState {
	switch {
	case r == nil || r.CheckInTime == nil:
		return OccupancyNotArrived
	case r.CheckOutTime == nil:
		return OccupancyCheckedIn
	default:
		return OccupancyCheckedOut
	}
}

// CurrentGuest is a checked-in booking whose stay has not ended.
type CurrentGuest struct {
	Booking     Booking   `json:"booking"`
	CheckInTime time.Time `json:"check_in_time"`
}
