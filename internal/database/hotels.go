package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"innkeep/internal/models"
)

func (db *DB) CreateHotel(ctx context.Context, hotel *models.Hotel) error {
	query := `INSERT INTO hotels (name, address, phone, email, owner_name, owner_email, is_active, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query,
		hotel.Name,
		hotel.Address,
		hotel.Phone,
		hotel.Email,
		hotel.OwnerName,
		hotel.OwnerEmail,
		hotel.IsActive,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	hotel.ID = id
	hotel.CreatedAt = now
	hotel.UpdatedAt = now
	return nil
}

func (db *DB) GetHotel(ctx context.Context, id int64) (*models.Hotel, error) {
	query := `SELECT id, name, address, phone, email, owner_name, owner_email, is_active, created_at, updated_at
              FROM hotels WHERE id = ?`
	var h models.Hotel
	err := db.QueryRowContext(ctx, query, id).Scan(
		&h.ID, &h.Name, &h.Address, &h.Phone, &h.Email,
		&h.OwnerName, &h.OwnerEmail, &h.IsActive, &h.CreatedAt, &h.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}
	return &h, nil
}

// requireActiveHotel gates every tenant-scoped write.
func (db *DB) requireActiveHotel(ctx context.Context, id int64) error {
	hotel, err := db.GetHotel(ctx, id)
	if err != nil {
		return err
	}
	if !hotel.IsActive {
		return ErrHotelInactive
	}
	return nil
}

func (db *DB) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	query := `SELECT id, name, address, phone, email, owner_name, owner_email, is_active, created_at, updated_at
              FROM hotels ORDER BY created_at DESC`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}
	defer rows.Close()

	var hotels []models.Hotel
	for rows.Next() {
		var h models.Hotel
		if err := rows.Scan(
			&h.ID, &h.Name, &h.Address, &h.Phone, &h.Email,
			&h.OwnerName, &h.OwnerEmail, &h.IsActive, &h.CreatedAt, &h.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan hotel: %w", err)
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

func (db *DB) SetHotelActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE hotels SET is_active = ?, updated_at = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query, active, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to set hotel active flag: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrHotelNotFound
	}
	return nil
}

// DeleteHotel removes a hotel and everything it owns in one transaction.
func (db *DB) DeleteHotel(ctx context.Context, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM check_in_out WHERE booking_id IN (SELECT id FROM bookings WHERE hotel_id = ?)`, id); err != nil {
		return fmt.Errorf("failed to delete occupancy records: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE hotel_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete bookings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE hotel_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete rooms: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM hotels WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete hotel: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrHotelNotFound
	}

	return tx.Commit()
}
