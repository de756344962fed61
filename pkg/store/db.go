// Package store persists local portal data in SQLite: a key-value table
// used as the anonymous user's local storage, and consultation bookings.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // "sqlite3" driver (cgo)
	_ "modernc.org/sqlite"          // "sqlite" driver (pure Go)

	"github.com/Dicklesworthstone/skillport/pkg/model"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// ErrNotFound is returned when a key has no value.
var ErrNotFound = errors.New("not found")

// DB handles local data persistence
type DB struct {
	db *sql.DB
}

// Open opens or creates the database at path using the named driver
// ("sqlite" or "sqlite3").
func Open(driver, path string) (*DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows one writer; an in-memory database also lives and dies
	// with its connection.
	db.SetMaxOpenConns(1)

	sdb := &DB{db: db}
	if err := sdb.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return sdb, nil
}

// TryOpen opens the database, falling back to an in-memory store when the
// file cannot be opened. Local data then lasts only for the session.
func TryOpen(driver, path string) *DB {
	db, err := Open(driver, path)
	if err == nil {
		return db
	}
	log.Printf("Warning: could not open local store %s: %v; using in-memory store", path, err)

	db, err = Open("sqlite", MemoryPath)
	if err != nil {
		// The pure Go driver opening :memory: only fails on programmer error.
		panic(fmt.Sprintf("open in-memory store: %v", err))
	}
	return db
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS bookings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		consultant_id TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		topic TEXT NOT NULL,
		slot TEXT NOT NULL,
		notes TEXT DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_bookings_consultant ON bookings(consultant_id);
	`
	_, err := d.db.Exec(schema)
	return err
}

// Get returns the raw value stored under key, or ErrNotFound.
func (d *DB) Get(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (d *DB) Set(key, value string) error {
	_, err := d.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (d *DB) Delete(key string) error {
	if _, err := d.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// CreateBooking validates and inserts a booking, filling its ID and
// CreatedAt.
func (d *DB) CreateBooking(b *model.Booking) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	result, err := d.db.Exec(`
		INSERT INTO bookings (consultant_id, name, email, topic, slot, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, b.ConsultantID, b.Name, b.Email, b.Topic, b.Slot, b.Notes, b.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

// ListBookings returns all bookings, newest first.
func (d *DB) ListBookings() ([]model.Booking, error) {
	rows, err := d.db.Query(`
		SELECT id, consultant_id, name, email, topic, slot, notes, created_at
		FROM bookings
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		var created string
		if err := rows.Scan(&b.ID, &b.ConsultantID, &b.Name, &b.Email, &b.Topic, &b.Slot, &b.Notes, &created); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			b.CreatedAt = t
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// SlotTaken reports whether a consultant's slot is already booked.
func (d *DB) SlotTaken(consultantID, slot string) (bool, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM bookings WHERE consultant_id = ? AND slot = ?`, consultantID, slot).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
