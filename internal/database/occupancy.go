package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"innkeep/internal/models"
)

// GetOccupancy returns the occupancy record for a booking, or a zero record
// in NotArrived state when none exists yet.
func (db *DB) GetOccupancy(ctx context.Context, hotelID, bookingID int64) (*models.OccupancyRecord, error) {
	if _, err := db.GetBooking(ctx, hotelID, bookingID); err != nil {
		return nil, err
	}

	query := `SELECT id, booking_id, check_in_time, check_out_time, COALESCE(notes, '')
              FROM check_in_out WHERE booking_id = ?`
	var (
		rec     models.OccupancyRecord
		inTime  sql.NullTime
		outTime sql.NullTime
	)
	err := db.QueryRowContext(ctx, query, bookingID).Scan(&rec.ID, &rec.BookingID, &inTime, &outTime, &rec.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.OccupancyRecord{BookingID: bookingID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get occupancy record: %w", err)
	}
	if inTime.Valid {
		t := inTime.Time
		rec.CheckInTime = &t
	}
	if outTime.Valid {
		t := outTime.Time
		rec.CheckOutTime = &t
	}
	return &rec, nil
}

// CheckInGuest records physical arrival. Re-entrant: a second check-in just
// refreshes the timestamp. Illegal once the guest has checked out.
func (db *DB) CheckInGuest(ctx context.Context, hotelID, bookingID int64, notes string) error {
	rec, err := db.GetOccupancy(ctx, hotelID, bookingID)
	if err != nil {
		return err
	}
	if rec.State() == models.OccupancyCheckedOut {
		return ErrAlreadyCheckedOut
	}

	now := time.Now().UTC()
	query := `INSERT INTO check_in_out (booking_id, check_in_time, notes) VALUES (?, ?, NULLIF(?, ''))
              ON CONFLICT(booking_id) DO UPDATE SET
                  check_in_time = excluded.check_in_time,
                  notes = COALESCE(excluded.notes, check_in_out.notes)`
	if _, err := db.ExecContext(ctx, query, bookingID, now, notes); err != nil {
		return fmt.Errorf("failed to check in guest: %w", err)
	}
	return nil
}

// CheckOutGuest records physical departure. Only legal from CheckedIn.
func (db *DB) CheckOutGuest(ctx context.Context, hotelID, bookingID int64) error {
	rec, err := db.GetOccupancy(ctx, hotelID, bookingID)
	if err != nil {
		return err
	}
	switch rec.State() {
	case models.OccupancyNotArrived:
		return ErrNotCheckedIn
	case models.OccupancyCheckedOut:
		return ErrAlreadyCheckedOut
	}

	now := time.Now().UTC()
	if _, err := db.ExecContext(ctx,
		`UPDATE check_in_out SET check_out_time = ? WHERE booking_id = ?`,
		now, bookingID,
	); err != nil {
		return fmt.Errorf("failed to check out guest: %w", err)
	}
	return nil
}

// GetTodaysCheckins lists confirmed bookings arriving today whose guests have
// not yet physically checked in.
func (db *DB) GetTodaysCheckins(ctx context.Context, hotelID int64, today time.Time) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b
              JOIN rooms r ON b.room_id = r.id
              WHERE b.hotel_id = ? AND b.check_in_date = ? AND b.booking_status = ?
              AND NOT EXISTS (
                  SELECT 1 FROM check_in_out c
                  WHERE c.booking_id = b.id AND c.check_in_time IS NOT NULL
              )
              ORDER BY r.room_number, b.id`
	return db.queryBookings(ctx, query, hotelID, models.Day(today).Format(models.DateLayout), models.StatusConfirmed)
}

// GetTodaysCheckouts lists confirmed bookings leaving today whose guests are
// checked in but not yet out.
func (db *DB) GetTodaysCheckouts(ctx context.Context, hotelID int64, today time.Time) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b
              JOIN rooms r ON b.room_id = r.id
              WHERE b.hotel_id = ? AND b.check_out_date = ? AND b.booking_status = ?
              AND EXISTS (
                  SELECT 1 FROM check_in_out c
                  WHERE c.booking_id = b.id AND c.check_in_time IS NOT NULL
              )
              AND NOT EXISTS (
                  SELECT 1 FROM check_in_out c
                  WHERE c.booking_id = b.id AND c.check_out_time IS NOT NULL
              )
              ORDER BY r.room_number, b.id`
	return db.queryBookings(ctx, query, hotelID, models.Day(today).Format(models.DateLayout), models.StatusConfirmed)
}

// GetCurrentGuests lists checked-in guests whose stay has not ended.
func (db *DB) GetCurrentGuests(ctx context.Context, hotelID int64, today time.Time) ([]models.CurrentGuest, error) {
	query := `SELECT ` + bookingColumns + `, c.check_in_time FROM bookings b
              JOIN rooms r ON b.room_id = r.id
              JOIN check_in_out c ON c.booking_id = b.id
              WHERE b.hotel_id = ? AND b.booking_status = ?
              AND c.check_in_time IS NOT NULL
              AND c.check_out_time IS NULL
              AND b.check_out_date >= ?
              ORDER BY r.room_number, b.id`
	rows, err := db.QueryContext(ctx, query, hotelID, models.StatusConfirmed, models.Day(today).Format(models.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to get current guests: %w", err)
	}
	defer rows.Close()

	var guests []models.CurrentGuest
	for rows.Next() {
		var (
			b           models.Booking
			inStr       string
			outStr      string
			cancelledAt sql.NullTime
			checkInTime time.Time
		)
		err := rows.Scan(
			&b.ID, &b.Reference, &b.HotelID, &b.RoomID, &b.RoomNumber, &b.GuestName,
			&b.GuestEmail, &b.GuestPhone, &inStr, &outStr,
			&b.GuestCount, &b.TotalAmount, &b.PaymentStatus, &b.BookingStatus,
			&b.CreatedAt, &cancelledAt,
			&checkInTime,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan current guest: %w", err)
		}
		b.Stay.CheckIn, _ = models.ParseDate(inStr)
		b.Stay.CheckOut, _ = models.ParseDate(outStr)
		guests = append(guests, models.CurrentGuest{Booking: b, CheckInTime: checkInTime})
	}
	return guests, rows.Err()
}
