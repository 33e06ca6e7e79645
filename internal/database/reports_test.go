package database

import (
	"context"
	"testing"

	"innkeep/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesTotals(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	hotel := seedHotel(t, db)
	roomA := seedRoom(t, db, hotel.ID, "101", "standard", 2, "3500.00")
	roomB := seedRoom(t, db, hotel.ID, "201", "deluxe", 4, "5200.00")

	// 2 nights x 3500 = 7000, paid
	paid := seedBooking(t, db, hotel.ID, roomA.ID, "Иванов", stay(t, "2026-09-10", "2026-09-12"))
	require.NoError(t, db.SetPaymentStatus(ctx, hotel.ID, paid.ID, models.PaymentPaid))
	// 2 nights x 5200 = 10400, pending
	seedBooking(t, db, hotel.ID, roomB.ID, "Петров", stay(t, "2026-09-11", "2026-09-13"))
	// Cancelled bookings are excluded from revenue.
	cancelled := seedBooking(t, db, hotel.ID, roomA.ID, "Сидоров", stay(t, "2026-09-20", "2026-09-22"))
	require.NoError(t, db.CancelBooking(ctx, hotel.ID, cancelled.ID))
	// Check-in outside the period is excluded.
	seedBooking(t, db, hotel.ID, roomB.ID, "Козлов", stay(t, "2026-10-01", "2026-10-03"))

	report, err := db.SalesTotals(ctx, hotel.ID, mustDate(t, "2026-09-01"), mustDate(t, "2026-09-30"))
	require.NoError(t, err)

	assert.Equal(t, int64(2), report.TotalBookings)
	assert.True(t, report.TotalRevenue.Equal(decimal.RequireFromString("17400.00")),
		"total revenue = %s", report.TotalRevenue)
	assert.True(t, report.AvgBooking.Equal(decimal.RequireFromString("8700.00")))
	assert.Equal(t, int64(1), report.PaidBookings)
	assert.True(t, report.PaidRevenue.Equal(decimal.RequireFromString("7000.00")))
	assert.InDelta(t, 50.0, report.PaymentRate, 0.001)
}

func TestSalesTotalsEmptyPeriod(t *testing.T) {
	db := setupTestDB(t)
	hotel := seedHotel(t, db)

	report, err := db.SalesTotals(context.Background(), hotel.ID, mustDate(t, "2026-09-01"), mustDate(t, "2026-09-30"))
	require.NoError(t, err)

	assert.Equal(t, int64(0), report.TotalBookings)
	assert.True(t, report.TotalRevenue.IsZero())
	assert.True(t, report.AvgBooking.IsZero())
	assert.Equal(t, 0.0, report.PaymentRate)
}

func TestAnalytics(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	hotel := seedHotel(t, db)
	roomA := seedRoom(t, db, hotel.ID, "101", "standard", 2, "3500.00")
	roomB := seedRoom(t, db, hotel.ID, "201", "deluxe", 4, "5200.00")
	seedRoom(t, db, hotel.ID, "301", "suite", 4, "8900.00")
	seedRoom(t, db, hotel.ID, "302", "suite", 4, "8900.00")

	today := mustDate(t, "2026-09-10")

	// Occupies roomA today; 7000 revenue this month.
	seedBooking(t, db, hotel.ID, roomA.ID, "Иванов", stay(t, "2026-09-09", "2026-09-12"))
	// Future stay this month: revenue counts, occupancy today does not.
	seedBooking(t, db, hotel.ID, roomB.ID, "Петров", stay(t, "2026-09-20", "2026-09-22"))

	a, err := db.Analytics(ctx, hotel.ID, today)
	require.NoError(t, err)

	assert.Equal(t, int64(4), a.TotalRooms)
	assert.Equal(t, int64(1), a.OccupiedRooms)
	assert.InDelta(t, 25.0, a.OccupancyRate, 0.001)
	assert.True(t, a.MonthRevenue.Equal(decimal.RequireFromString("20900.00")),
		"month revenue = %s", a.MonthRevenue)
	// One booking each for standard and deluxe: the tie breaks alphabetically.
	assert.Equal(t, "deluxe", a.MostPopular)
	assert.Equal(t, int64(1), a.MostPopularBookings)
}

func TestAnalyticsNoRooms(t *testing.T) {
	db := setupTestDB(t)
	hotel := seedHotel(t, db)

	a, err := db.Analytics(context.Background(), hotel.ID, mustDate(t, "2026-09-10"))
	require.NoError(t, err)

	assert.Equal(t, int64(0), a.TotalRooms)
	assert.Equal(t, 0.0, a.OccupancyRate)
	assert.True(t, a.MonthRevenue.IsZero())
	assert.Equal(t, "N/A", a.MostPopular)
}
