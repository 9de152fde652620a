// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// SQLite is an embedded database (a single file, no server to run), which
// matches this system's scale: three independent collections and short
// request/response queries. We use modernc.org/sqlite, a pure-Go translation
// of SQLite, so builds need no C compiler and cross-compile cleanly.
//
// The one piece of real integrity enforcement lives here: the unique index on
// appointments(professor_id, time_slot). Booking inserts are conditional
// writes against that index, which is what makes concurrent double-booking
// impossible without any application-level locking.
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements the repository interfaces
// (user.go, slot.go, appointment.go in this package).
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
// Use ":memory:" for a throwaway in-memory database in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// SQLite allows one writer at a time; a second pooled connection writing
	// concurrently would surface as SQLITE_BUSY. A single connection also
	// keeps ":memory:" databases coherent; every pooled connection to
	// ":memory:" would otherwise get its own empty database.
	conn.SetMaxOpenConns(1)

	// sql.Open doesn't touch the file; Ping forces a real connection so a bad
	// path fails here rather than on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight; required for a web
	// server where list and booking requests overlap.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Off by default in SQLite for historical reasons.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool. Always defer Close() next to
// New(); it flushes the WAL and releases the file lock.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the three collections. CREATE ... IF NOT EXISTS keeps this
// idempotent, so it runs unconditionally at every startup.
//
// Schema notes:
//   - users.username UNIQUE: duplicate registrations are rejected instead of
//     silently shadowing each other at login.
//   - no duplicate-time constraint on slots: a professor may publish the same
//     meeting time twice and both records share one derived booking state.
//   - appointments(professor_id, time_slot) UNIQUE: the booking invariant.
//     time_slot matches the slot's meeting_time by exact string comparison.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			is_professor  INTEGER NOT NULL DEFAULT 0,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS availability_slots (
			meeting_id   TEXT PRIMARY KEY,
			professor_id TEXT NOT NULL,
			meeting_time TEXT NOT NULL,
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_slots_professor_id
			ON availability_slots(professor_id);
	`)
	if err != nil {
		return fmt.Errorf("creating availability_slots table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS appointments (
			appointment_id TEXT PRIMARY KEY,
			student_id     TEXT NOT NULL,
			professor_id   TEXT NOT NULL,
			time_slot      TEXT NOT NULL,
			created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_professor_slot
			ON appointments(professor_id, time_slot);
		CREATE INDEX IF NOT EXISTS idx_appointments_student_id
			ON appointments(student_id);
	`)
	if err != nil {
		return fmt.Errorf("creating appointments table: %w", err)
	}

	return nil
}
