package service

import (
	"context"
	"testing"

	"innkeep/internal/database"
	"innkeep/internal/events"
	"innkeep/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccupancyServiceTransitions(t *testing.T) {
	db := newTestStore(t)
	bus := events.NewEventBus()
	seen := collectEvents(bus, events.EventGuestCheckedIn, events.EventGuestCheckedOut)

	svc := NewOccupancyService(db, bus, nil, &testLogger)

	hotel := newTestHotel(t, db)
	room := newTestRoom(t, db, hotel.ID, "101", 2)
	booking, err := db.CreateBooking(context.Background(), &models.BookingRequest{
		HotelID:    hotel.ID,
		RoomID:     room.ID,
		Guest:      models.GuestInfo{Name: "Иванов"},
		Stay:       futureStay(0, 2),
		GuestCount: 1,
	})
	require.NoError(t, err)

	ctx := context.Background()
	rec, err := svc.CheckInGuest(ctx, hotel.ID, booking.ID, "поздний заезд")
	require.NoError(t, err)
	assert.Equal(t, models.OccupancyCheckedIn, rec.State())
	assert.Equal(t, "поздний заезд", rec.Notes)

	rec, err = svc.CheckOutGuest(ctx, hotel.ID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OccupancyCheckedOut, rec.State())

	_, err = svc.CheckOutGuest(ctx, hotel.ID, booking.ID)
	assert.ErrorIs(t, err, database.ErrAlreadyCheckedOut)
	assert.True(t, database.IsState(err))

	assert.Equal(t, []string{
		events.EventGuestCheckedIn,
		events.EventGuestCheckedOut,
	}, *seen)
}
