package database

import "errors"

// Sentinel errors returned by the store. Callers classify them with the
// Is* helpers below; the HTTP layer maps each class to a status code.
var (
	// Validation: rejected before any write.
	ErrInvalidDateRange          = errors.New("check-out date must be after check-in date")
	ErrInvalidGuestCount         = errors.New("guest count must be at least 1")
	ErrInvalidAttribute          = errors.New("invalid room attribute")
	ErrGuestCountExceedsCapacity = errors.New("guest count exceeds room capacity")

	// Conflict: rejected at the atomic boundary, retryable with new input.
	ErrNotAvailable           = errors.New("room is not available for the requested dates")
	ErrDuplicateRoomNumber    = errors.New("room number already exists in this hotel")
	ErrAlreadyCancelled       = errors.New("booking is already cancelled")
	ErrRoomHasFutureBookings  = errors.New("room has confirmed future bookings")
	ErrRoomHasBookingHistory  = errors.New("room has bookings and cannot be deleted")
	ErrConcurrentModification = errors.New("booking was modified concurrently")

	// Not found.
	ErrHotelNotFound   = errors.New("hotel not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrDraftNotFound   = errors.New("booking draft not found or expired")

	// State: occupancy transition not legal from the current state.
	ErrNotCheckedIn      = errors.New("guest has not checked in")
	ErrAlreadyCheckedOut = errors.New("guest has already checked out")

	ErrHotelInactive = errors.New("hotel is not active")

	// Rate limiting on the quick-booking flow. Mapped to 429 upstream.
	ErrRateLimited = errors.New("too many requests")
)

func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrInvalidGuestCount) ||
		errors.Is(err, ErrInvalidAttribute) ||
		errors.Is(err, ErrGuestCountExceedsCapacity)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrNotAvailable) ||
		errors.Is(err, ErrDuplicateRoomNumber) ||
		errors.Is(err, ErrAlreadyCancelled) ||
		errors.Is(err, ErrRoomHasFutureBookings) ||
		errors.Is(err, ErrRoomHasBookingHistory) ||
		errors.Is(err, ErrConcurrentModification) ||
		errors.Is(err, ErrHotelInactive)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrHotelNotFound) ||
		errors.Is(err, ErrRoomNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrDraftNotFound)
}

func IsState(err error) bool {
	return errors.Is(err, ErrNotCheckedIn) || errors.Is(err, ErrAlreadyCheckedOut)
}
