package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

type DB struct {
	*sql.DB
	logger *zerolog.Logger
}

func NewDB(path string, logger *zerolog.Logger) (*DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// SQLite allows a single writer; one connection serializes all
	// transactions and the busy timeout covers callers waiting on it.
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Info().Str("path", path).Msg("database initialized")
	return &DB{DB: db, logger: logger}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS hotels (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            address TEXT,
            phone TEXT,
            email TEXT,
            owner_name TEXT,
            owner_email TEXT,
            is_active BOOLEAN NOT NULL DEFAULT 1,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS rooms (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            hotel_id INTEGER NOT NULL REFERENCES hotels(id),
            room_number TEXT NOT NULL,
            room_type TEXT NOT NULL,
            price_per_night TEXT NOT NULL,
            capacity INTEGER NOT NULL,
            is_active BOOLEAN NOT NULL DEFAULT 1,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL,
            UNIQUE(hotel_id, room_number)
        )`,
		// Dates are ISO-8601 text; lexicographic order equals calendar order.
		`CREATE TABLE IF NOT EXISTS bookings (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            reference TEXT NOT NULL UNIQUE,
            hotel_id INTEGER NOT NULL REFERENCES hotels(id),
            room_id INTEGER NOT NULL REFERENCES rooms(id),
            guest_name TEXT NOT NULL,
            guest_email TEXT,
            guest_phone TEXT,
            check_in_date TEXT NOT NULL,
            check_out_date TEXT NOT NULL,
            guest_count INTEGER NOT NULL,
            total_amount TEXT NOT NULL,
            payment_status TEXT NOT NULL DEFAULT 'pending',
            booking_status TEXT NOT NULL DEFAULT 'confirmed',
            created_at DATETIME NOT NULL,
            cancelled_at DATETIME
        )`,
		`CREATE TABLE IF NOT EXISTS check_in_out (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            booking_id INTEGER NOT NULL UNIQUE REFERENCES bookings(id),
            check_in_time DATETIME,
            check_out_time DATETIME,
            notes TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS event_outbox (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            event_type TEXT NOT NULL,
            payload BLOB NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            retry_count INTEGER NOT NULL DEFAULT 0,
            last_error TEXT,
            created_at DATETIME NOT NULL,
            processed_at DATETIME,
            next_retry_at DATETIME
        )`,

		`CREATE INDEX IF NOT EXISTS idx_rooms_hotel_id ON rooms(hotel_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_hotel_id ON bookings(hotel_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_room_id ON bookings(room_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(booking_status)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_check_in ON bookings(check_in_date)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_check_out ON bookings(check_out_date)`,
		`CREATE INDEX IF NOT EXISTS idx_outbox_status ON event_outbox(status)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}
	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
