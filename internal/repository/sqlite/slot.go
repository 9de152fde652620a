package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/campus-bookings/internal/model"
	"github.com/sakif/campus-bookings/internal/repository"
)

// compile-time check that *DB implements repository.SlotRepository
var _ repository.SlotRepository = (*DB)(nil)

// CreateSlot inserts a new availability slot and fills in the generated
// meeting ID and timestamp. No duplicate-time check: publishing the same
// meeting time twice yields two distinct rows.
func (db *DB) CreateSlot(ctx context.Context, slot *model.AvailabilitySlot) error {
	slot.MeetingID = xid.New().String()
	slot.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO availability_slots (meeting_id, professor_id, meeting_time, created_at)
		 VALUES (?, ?, ?, ?)`,
		slot.MeetingID,
		slot.ProfessorID,
		slot.MeetingTime,
		slot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting slot for professor %s: %w", slot.ProfessorID, err)
	}

	return nil
}

// ListSlotsByProfessor returns the professor's slots in insertion (rowid)
// order. Callers must not assume chronological ordering; meeting_time is an
// opaque string here.
func (db *DB) ListSlotsByProfessor(ctx context.Context, professorID string) ([]model.AvailabilitySlot, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT meeting_id, professor_id, meeting_time, created_at
		 FROM availability_slots WHERE professor_id = ? ORDER BY rowid`,
		professorID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing slots for professor %s: %w", professorID, err)
	}
	defer rows.Close()

	slots := []model.AvailabilitySlot{}
	for rows.Next() {
		var s model.AvailabilitySlot
		if err := rows.Scan(&s.MeetingID, &s.ProfessorID, &s.MeetingTime, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning slot row: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating slot rows: %w", err)
	}

	return slots, nil
}

// SlotExists reports whether the professor has published the exact
// meeting-time string.
func (db *DB) SlotExists(ctx context.Context, professorID, meetingTime string) (bool, error) {
	var exists int
	err := db.conn.QueryRowContext(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM availability_slots
			WHERE professor_id = ? AND meeting_time = ?
		)`,
		professorID, meetingTime,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking slot (%s, %s): %w", professorID, meetingTime, err)
	}

	return exists == 1, nil
}
