package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"innkeep/internal/models"
)

const roomColumns = `id, hotel_id, room_number, room_type, price_per_night, capacity, is_active, created_at, updated_at`

func scanRoom(row interface{ Scan(...any) error }) (models.Room, error) {
	var r models.Room
	err := row.Scan(
		&r.ID, &r.HotelID, &r.RoomNumber, &r.RoomType, &r.PricePerNight,
		&r.Capacity, &r.IsActive, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (db *DB) CreateRoom(ctx context.Context, room *models.Room) error {
	if room.PricePerNight.IsNegative() {
		return ErrInvalidAttribute
	}
	if room.Capacity < 1 {
		return ErrInvalidAttribute
	}
	if err := db.requireActiveHotel(ctx, room.HotelID); err != nil {
		return err
	}

	query := `INSERT INTO rooms (hotel_id, room_number, room_type, price_per_night, capacity, is_active, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query,
		room.HotelID,
		room.RoomNumber,
		room.RoomType,
		room.PricePerNight,
		room.Capacity,
		room.IsActive,
		now,
		now,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateRoomNumber
		}
		return fmt.Errorf("failed to create room: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	room.ID = id
	room.CreatedAt = now
	room.UpdatedAt = now
	return nil
}

func (db *DB) GetRoom(ctx context.Context, hotelID, roomID int64) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = ? AND hotel_id = ?`
	room, err := scanRoom(db.QueryRowContext(ctx, query, roomID, hotelID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return &room, nil
}

// ListActiveRooms returns active rooms ordered by room number. Room numbers
// are free-form text, so the ordering is lexicographic.
func (db *DB) ListActiveRooms(ctx context.Context, hotelID int64) ([]models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE hotel_id = ? AND is_active = 1 ORDER BY room_number, id`
	rows, err := db.QueryContext(ctx, query, hotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active rooms: %w", err)
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

func (db *DB) UpdateRoom(ctx context.Context, room *models.Room) error {
	if room.PricePerNight.IsNegative() || room.Capacity < 1 {
		return ErrInvalidAttribute
	}
	query := `UPDATE rooms SET room_number = ?, room_type = ?, price_per_night = ?, capacity = ?, updated_at = ?
              WHERE id = ? AND hotel_id = ?`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query,
		room.RoomNumber, room.RoomType, room.PricePerNight, room.Capacity, now,
		room.ID, room.HotelID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateRoomNumber
		}
		return fmt.Errorf("failed to update room: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrRoomNotFound
	}
	room.UpdatedAt = now
	return nil
}

// DeactivateRoom soft-disables a room. Blocked while the room still has
// confirmed bookings checking out today or later.
func (db *DB) DeactivateRoom(ctx context.Context, hotelID, roomID int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var exists int64
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms WHERE id = ? AND hotel_id = ?`, roomID, hotelID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check room: %w", err)
	}
	if exists == 0 {
		return ErrRoomNotFound
	}

	today := models.Today().Format(models.DateLayout)
	var future int64
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE room_id = ? AND booking_status = ? AND check_out_date >= ?`,
		roomID, models.StatusConfirmed, today,
	).Scan(&future)
	if err != nil {
		return fmt.Errorf("failed to check future bookings: %w", err)
	}
	if future > 0 {
		return ErrRoomHasFutureBookings
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE rooms SET is_active = 0, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), roomID,
	); err != nil {
		return fmt.Errorf("failed to deactivate room: %w", err)
	}

	return tx.Commit()
}

// DeleteRoom hard-deletes a room. Only legal when no booking has ever
// referenced it; rooms with history are deactivated instead.
func (db *DB) DeleteRoom(ctx context.Context, hotelID, roomID int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var bookings int64
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE room_id = ?`, roomID).Scan(&bookings)
	if err != nil {
		return fmt.Errorf("failed to check booking history: %w", err)
	}
	if bookings > 0 {
		return ErrRoomHasBookingHistory
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = ? AND hotel_id = ?`, roomID, hotelID)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrRoomNotFound
	}

	return tx.Commit()
}
