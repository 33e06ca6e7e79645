package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"innkeep/internal/models"

	"github.com/shopspring/decimal"
)

// SalesTotals aggregates confirmed bookings by check-in date over [start, end].
// Sums run in Go so the money stays decimal end to end.
func (db *DB) SalesTotals(ctx context.Context, hotelID int64, start, end time.Time) (*models.SalesReport, error) {
	query := `SELECT total_amount, payment_status FROM bookings
              WHERE hotel_id = ? AND booking_status = ?
              AND check_in_date BETWEEN ? AND ?`
	rows, err := db.QueryContext(ctx, query,
		hotelID, models.StatusConfirmed,
		models.Day(start).Format(models.DateLayout), models.Day(end).Format(models.DateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales totals: %w", err)
	}
	defer rows.Close()

	report := &models.SalesReport{
		StartDate:    models.Day(start),
		EndDate:      models.Day(end),
		TotalRevenue: decimal.Zero,
		AvgBooking:   decimal.Zero,
		PaidRevenue:  decimal.Zero,
	}
	for rows.Next() {
		var (
			amount decimal.Decimal
			status string
		)
		if err := rows.Scan(&amount, &status); err != nil {
			return nil, fmt.Errorf("failed to scan sales row: %w", err)
		}
		report.TotalBookings++
		report.TotalRevenue = report.TotalRevenue.Add(amount)
		if status == models.PaymentPaid {
			report.PaidBookings++
			report.PaidRevenue = report.PaidRevenue.Add(amount)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if report.TotalBookings > 0 {
		report.AvgBooking = report.TotalRevenue.Div(decimal.NewFromInt(report.TotalBookings)).Round(2)
		report.PaymentRate = float64(report.PaidBookings) / float64(report.TotalBookings) * 100
	}
	return report, nil
}

// Analytics computes the dashboard rollup: occupancy today, revenue since the
// start of the month, and the most booked room type. Popularity ties break
// alphabetically on the type label so the answer is stable.
func (db *DB) Analytics(ctx context.Context, hotelID int64, today time.Time) (*models.Analytics, error) {
	todayStr := models.Day(today).Format(models.DateLayout)
	monthStart := models.Day(today.AddDate(0, 0, -(today.Day() - 1))).Format(models.DateLayout)

	a := &models.Analytics{MonthRevenue: decimal.Zero, MostPopular: "N/A"}

	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rooms WHERE hotel_id = ? AND is_active = 1`, hotelID,
	).Scan(&a.TotalRooms)
	if err != nil {
		return nil, fmt.Errorf("failed to count rooms: %w", err)
	}

	err = db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT room_id) FROM bookings
         WHERE hotel_id = ? AND booking_status = ?
         AND check_in_date <= ? AND check_out_date > ?`,
		hotelID, models.StatusConfirmed, todayStr, todayStr,
	).Scan(&a.OccupiedRooms)
	if err != nil {
		return nil, fmt.Errorf("failed to count occupied rooms: %w", err)
	}

	rows, err := db.QueryContext(ctx,
		`SELECT total_amount FROM bookings
         WHERE hotel_id = ? AND booking_status = ? AND check_in_date >= ?`,
		hotelID, models.StatusConfirmed, monthStart,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query month revenue: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var amount decimal.Decimal
		if err := rows.Scan(&amount); err != nil {
			return nil, fmt.Errorf("failed to scan revenue row: %w", err)
		}
		a.MonthRevenue = a.MonthRevenue.Add(amount)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = db.QueryRowContext(ctx,
		`SELECT r.room_type, COUNT(*) AS cnt FROM bookings b
         JOIN rooms r ON b.room_id = r.id
         WHERE b.hotel_id = ? AND b.booking_status = ?
         GROUP BY r.room_type
         ORDER BY cnt DESC, r.room_type ASC
         LIMIT 1`,
		hotelID, models.StatusConfirmed,
	).Scan(&a.MostPopular, &a.MostPopularBookings)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get most popular room type: %w", err)
	}

	if a.TotalRooms > 0 {
		a.OccupancyRate = float64(a.OccupiedRooms) / float64(a.TotalRooms) * 100
	}
	return a, nil
}
