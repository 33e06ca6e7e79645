package service

import (
	"context"
	"io"
	"testing"
	"time"

	"innkeep/internal/database"
	"innkeep/internal/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testLogger = zerolog.New(io.Discard)

func newTestStore(t *testing.T) *database.DB {
	db, err := database.NewDB(":memory:", &testLogger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestHotel(t *testing.T, db *database.DB) *models.Hotel {
	hotel := &models.Hotel{Name: "Test Hotel", IsActive: true}
	require.NoError(t, db.CreateHotel(context.Background(), hotel))
	return hotel
}

func newTestRoom(t *testing.T, db *database.DB, hotelID int64, number string, capacity int64) *models.Room {
	room := &models.Room{
		HotelID:       hotelID,
		RoomNumber:    number,
		RoomType:      "standard",
		PricePerNight: decimal.RequireFromString("3500.00"),
		Capacity:      capacity,
		IsActive:      true,
	}
	require.NoError(t, db.CreateRoom(context.Background(), room))
	return room
}

func futureStay(daysAhead, nights int) models.Stay {
	checkIn := models.Today().AddDate(0, 0, daysAhead)
	return models.NewStay(checkIn, checkIn.AddDate(0, 0, nights))
}

func mustParseDate(t *testing.T, s string) time.Time {
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}
