package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"innkeep/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const bookingColumns = `b.id, b.reference, b.hotel_id, b.room_id, r.room_number, b.guest_name,
                 b.guest_email, b.guest_phone, b.check_in_date, b.check_out_date,
                 b.guest_count, b.total_amount, b.payment_status, b.booking_status,
                 b.created_at, b.cancelled_at`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var (
		b           models.Booking
		inStr       string
		outStr      string
		cancelledAt sql.NullTime
	)
	err := row.Scan(
		&b.ID, &b.Reference, &b.HotelID, &b.RoomID, &b.RoomNumber, &b.GuestName,
		&b.GuestEmail, &b.GuestPhone, &inStr, &outStr,
		&b.GuestCount, &b.TotalAmount, &b.PaymentStatus, &b.BookingStatus,
		&b.CreatedAt, &cancelledAt,
	)
	if err != nil {
		return b, err
	}

	checkIn, err := models.ParseDate(inStr)
	if err != nil {
		return b, fmt.Errorf("failed to parse check-in date %s: %w", inStr, err)
	}
	checkOut, err := models.ParseDate(outStr)
	if err != nil {
		return b, fmt.Errorf("failed to parse check-out date %s: %w", outStr, err)
	}
	b.Stay = models.Stay{CheckIn: checkIn, CheckOut: checkOut}
	if cancelledAt.Valid {
		t := cancelledAt.Time
		b.CancelledAt = &t
	}
	return b, nil
}

func validateRequest(req *models.BookingRequest) error {
	if !req.Stay.Valid() {
		return ErrInvalidDateRange
	}
	if req.GuestCount < 1 {
		return ErrInvalidGuestCount
	}
	return nil
}

// FindAvailableRooms returns active rooms of the hotel with enough capacity
// and no confirmed booking overlapping the requested stay. This is the same
// predicate CreateBooking re-checks inside its transaction.
func (db *DB) FindAvailableRooms(ctx context.Context, hotelID int64, stay models.Stay, guestCount int64) ([]models.Room, error) {
	if !stay.Valid() {
		return nil, ErrInvalidDateRange
	}
	if guestCount < 1 {
		return nil, ErrInvalidGuestCount
	}

	query := `SELECT ` + roomColumns + ` FROM rooms
              WHERE hotel_id = ? AND is_active = 1 AND capacity >= ?
              AND id NOT IN (
                  SELECT room_id FROM bookings
                  WHERE hotel_id = ? AND booking_status = ?
                  AND NOT (check_out_date <= ? OR check_in_date >= ?)
              )
              ORDER BY room_number, id`
	rows, err := db.QueryContext(ctx, query,
		hotelID, guestCount, hotelID, models.StatusConfirmed,
		stay.CheckIn.Format(models.DateLayout), stay.CheckOut.Format(models.DateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find available rooms: %w", err)
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// RoomStatusToday splits active rooms into available-today and occupied-today.
// A room is occupied when a confirmed stay contains today; future bookings do
// not make a room unavailable today.
func (db *DB) RoomStatusToday(ctx context.Context, hotelID int64, today time.Time) (*models.RoomStatus, error) {
	todayStr := models.Day(today).Format(models.DateLayout)

	occupiedQuery := `SELECT r.id, r.hotel_id, r.room_number, r.room_type, r.price_per_night,
                 r.capacity, r.is_active, r.created_at, r.updated_at, ` + bookingColumns + `
              FROM rooms r
              JOIN bookings b ON b.room_id = r.id
              WHERE r.hotel_id = ? AND r.is_active = 1
              AND b.booking_status = ?
              AND b.check_in_date <= ? AND b.check_out_date > ?
              ORDER BY r.room_number, r.id`

	rows, err := db.QueryContext(ctx, occupiedQuery, hotelID, models.StatusConfirmed, todayStr, todayStr)
	if err != nil {
		return nil, fmt.Errorf("failed to get occupied rooms: %w", err)
	}
	defer rows.Close()

	status := &models.RoomStatus{}
	occupiedIDs := make(map[int64]bool)
	for rows.Next() {
		var (
			room        models.Room
			b           models.Booking
			inStr       string
			outStr      string
			cancelledAt sql.NullTime
		)
		err := rows.Scan(
			&room.ID, &room.HotelID, &room.RoomNumber, &room.RoomType, &room.PricePerNight,
			&room.Capacity, &room.IsActive, &room.CreatedAt, &room.UpdatedAt,
			&b.ID, &b.Reference, &b.HotelID, &b.RoomID, &b.RoomNumber, &b.GuestName,
			&b.GuestEmail, &b.GuestPhone, &inStr, &outStr,
			&b.GuestCount, &b.TotalAmount, &b.PaymentStatus, &b.BookingStatus,
			&b.CreatedAt, &cancelledAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan occupied room: %w", err)
		}
		b.Stay.CheckIn, _ = models.ParseDate(inStr)
		b.Stay.CheckOut, _ = models.ParseDate(outStr)
		occupiedIDs[room.ID] = true
		status.Occupied = append(status.Occupied, models.OccupiedRoom{Room: room, Booking: b})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	allRooms, err := db.ListActiveRooms(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	for _, room := range allRooms {
		if !occupiedIDs[room.ID] {
			status.Available = append(status.Available, room)
		}
	}
	return status, nil
}

// CreateBooking validates the request and inserts the booking. The overlap
// check runs inside the same transaction as the insert: this check, not the
// read-only availability query, is the gate against double-booking.
func (db *DB) CreateBooking(ctx context.Context, req *models.BookingRequest) (*models.Booking, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := db.requireActiveHotel(ctx, req.HotelID); err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	room, err := roomForBookingTx(ctx, tx, req.HotelID, req.RoomID)
	if err != nil {
		return nil, err
	}
	if req.GuestCount > room.Capacity {
		return nil, ErrGuestCountExceedsCapacity
	}

	if err := checkOverlapTx(ctx, tx, req.RoomID, req.Stay, 0); err != nil {
		return nil, err
	}

	total := totalAmount(req, room)
	now := time.Now().UTC()
	booking := &models.Booking{
		Reference:     uuid.NewString(),
		HotelID:       req.HotelID,
		RoomID:        room.ID,
		RoomNumber:    room.RoomNumber,
		GuestName:     req.Guest.Name,
		GuestEmail:    req.Guest.Email,
		GuestPhone:    req.Guest.Phone,
		Stay:          req.Stay,
		GuestCount:    req.GuestCount,
		TotalAmount:   total,
		PaymentStatus: models.PaymentPending,
		BookingStatus: models.StatusConfirmed,
		CreatedAt:     now,
	}

	query := `INSERT INTO bookings (
                reference, hotel_id, room_id, guest_name, guest_email, guest_phone,
                check_in_date, check_out_date, guest_count, total_amount,
                payment_status, booking_status, created_at
              ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, query,
		booking.Reference,
		booking.HotelID,
		booking.RoomID,
		booking.GuestName,
		booking.GuestEmail,
		booking.GuestPhone,
		booking.Stay.CheckIn.Format(models.DateLayout),
		booking.Stay.CheckOut.Format(models.DateLayout),
		booking.GuestCount,
		booking.TotalAmount,
		booking.PaymentStatus,
		booking.BookingStatus,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}
	return booking, nil
}

// UpdateBooking re-runs the full create validation against the (possibly new)
// room and re-checks overlap against every other confirmed booking, all inside
// one transaction.
func (db *DB) UpdateBooking(ctx context.Context, hotelID, bookingID int64, req *models.BookingRequest) (*models.Booking, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	existing, err := getBookingTx(ctx, tx, hotelID, bookingID)
	if err != nil {
		return nil, err
	}

	room, err := roomForBookingTx(ctx, tx, hotelID, req.RoomID)
	if err != nil {
		return nil, err
	}
	if req.GuestCount > room.Capacity {
		return nil, ErrGuestCountExceedsCapacity
	}

	// Cancelled bookings occupy nothing, so only confirmed ones are gated.
	if existing.Confirmed() {
		if err := checkOverlapTx(ctx, tx, req.RoomID, req.Stay, bookingID); err != nil {
			return nil, err
		}
	}

	total := totalAmount(req, room)
	query := `UPDATE bookings SET room_id = ?, guest_name = ?, guest_email = ?, guest_phone = ?,
                check_in_date = ?, check_out_date = ?, guest_count = ?, total_amount = ?
              WHERE id = ? AND hotel_id = ?`
	if _, err := tx.ExecContext(ctx, query,
		room.ID, req.Guest.Name, req.Guest.Email, req.Guest.Phone,
		req.Stay.CheckIn.Format(models.DateLayout), req.Stay.CheckOut.Format(models.DateLayout),
		req.GuestCount, total,
		bookingID, hotelID,
	); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking update: %w", err)
	}
	return db.GetBooking(ctx, hotelID, bookingID)
}

// CancelBooking is terminal: the booking stops occupying its room but stays
// queryable for lost-revenue reporting. cancelled_at is stamped exactly once.
func (db *DB) CancelBooking(ctx context.Context, hotelID, bookingID int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	booking, err := getBookingTx(ctx, tx, hotelID, bookingID)
	if err != nil {
		return err
	}
	if booking.BookingStatus == models.StatusCancelled {
		return ErrAlreadyCancelled
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE bookings SET booking_status = ?, cancelled_at = ? WHERE id = ? AND booking_status != ?`,
		models.StatusCancelled, time.Now().UTC(), bookingID, models.StatusCancelled,
	); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	return tx.Commit()
}

// SetPaymentStatus is idempotent and reversible: corrections may flip a paid
// booking back to pending.
func (db *DB) SetPaymentStatus(ctx context.Context, hotelID, bookingID int64, status string) error {
	if status != models.PaymentPending && status != models.PaymentPaid {
		return fmt.Errorf("unknown payment status %q", status)
	}
	result, err := db.ExecContext(ctx,
		`UPDATE bookings SET payment_status = ? WHERE id = ? AND hotel_id = ?`,
		status, bookingID, hotelID,
	)
	if err != nil {
		return fmt.Errorf("failed to set payment status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (db *DB) GetBooking(ctx context.Context, hotelID, bookingID int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b
              JOIN rooms r ON b.room_id = r.id
              WHERE b.id = ? AND b.hotel_id = ?`
	booking, err := scanBooking(db.QueryRowContext(ctx, query, bookingID, hotelID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

// ListBookings returns the most recent confirmed bookings.
func (db *DB) ListBookings(ctx context.Context, hotelID int64, limit int) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b
              JOIN rooms r ON b.room_id = r.id
              WHERE b.hotel_id = ? AND b.booking_status = ?
              ORDER BY b.id DESC LIMIT ?`
	return db.queryBookings(ctx, query, hotelID, models.StatusConfirmed, limit)
}

// GetCancelledBookings returns recent cancellations, newest first.
func (db *DB) GetCancelledBookings(ctx context.Context, hotelID int64, limit int) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b
              JOIN rooms r ON b.room_id = r.id
              WHERE b.hotel_id = ? AND b.booking_status = ?
              ORDER BY b.cancelled_at DESC LIMIT ?`
	return db.queryBookings(ctx, query, hotelID, models.StatusCancelled, limit)
}

// GetBookingsByDateRange returns confirmed bookings whose check-in falls in
// [start, end], ordered by check-in date.
func (db *DB) GetBookingsByDateRange(ctx context.Context, hotelID int64, start, end time.Time) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b
              JOIN rooms r ON b.room_id = r.id
              WHERE b.hotel_id = ? AND b.booking_status = ?
              AND b.check_in_date BETWEEN ? AND ?
              ORDER BY b.check_in_date, b.id`
	return db.queryBookings(ctx, query, hotelID, models.StatusConfirmed,
		models.Day(start).Format(models.DateLayout), models.Day(end).Format(models.DateLayout))
}

// GetStaysInRange returns confirmed bookings whose stay overlaps [start, end),
// used by the schedule export.
func (db *DB) GetStaysInRange(ctx context.Context, hotelID int64, start, end time.Time) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b
              JOIN rooms r ON b.room_id = r.id
              WHERE b.hotel_id = ? AND b.booking_status = ?
              AND NOT (b.check_out_date <= ? OR b.check_in_date >= ?)
              ORDER BY b.check_in_date, b.id`
	return db.queryBookings(ctx, query, hotelID, models.StatusConfirmed,
		models.Day(start).Format(models.DateLayout), models.Day(end).Format(models.DateLayout))
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func getBookingTx(ctx context.Context, tx *sql.Tx, hotelID, bookingID int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b
              JOIN rooms r ON b.room_id = r.id
              WHERE b.id = ? AND b.hotel_id = ?`
	booking, err := scanBooking(tx.QueryRowContext(ctx, query, bookingID, hotelID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking in tx: %w", err)
	}
	return &booking, nil
}

func roomForBookingTx(ctx context.Context, tx *sql.Tx, hotelID, roomID int64) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = ? AND hotel_id = ? AND is_active = 1`
	room, err := scanRoom(tx.QueryRowContext(ctx, query, roomID, hotelID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room in tx: %w", err)
	}
	return &room, nil
}

// checkOverlapTx enforces the no-double-booking invariant. excludeID skips the
// booking being updated.
func checkOverlapTx(ctx context.Context, tx *sql.Tx, roomID int64, stay models.Stay, excludeID int64) error {
	query := `SELECT COUNT(*) FROM bookings
              WHERE room_id = ? AND booking_status = ? AND id != ?
              AND NOT (check_out_date <= ? OR check_in_date >= ?)`
	var overlapping int64
	err := tx.QueryRowContext(ctx, query,
		roomID, models.StatusConfirmed, excludeID,
		stay.CheckIn.Format(models.DateLayout), stay.CheckOut.Format(models.DateLayout),
	).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("failed to check overlap in tx: %w", err)
	}
	if overlapping > 0 {
		return ErrNotAvailable
	}
	return nil
}

func totalAmount(req *models.BookingRequest, room *models.Room) decimal.Decimal {
	if req.OverrideAmount != nil {
		return *req.OverrideAmount
	}
	return room.PricePerNight.Mul(decimal.NewFromInt(int64(req.Stay.Nights())))
}
