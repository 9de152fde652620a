package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/campus-bookings/internal/apperror"
	"github.com/sakif/campus-bookings/internal/model"
	"github.com/sakif/campus-bookings/internal/repository"
)

// compile-time check that *DB implements repository.AppointmentRepository
var _ repository.AppointmentRepository = (*DB)(nil)

// CreateAppointment books a slot as a single conditional write.
//
// The unique index on (professor_id, time_slot) is the serialization point:
// ON CONFLICT DO NOTHING turns a duplicate booking into a zero-row no-op
// instead of an error, and we translate zero rows into Conflict. When two
// requests race on the same pair, SQLite admits exactly one insert; there is
// no separate existence check for a second request to slip past.
func (db *DB) CreateAppointment(ctx context.Context, appt *model.Appointment) error {
	appt.AppointmentID = xid.New().String()
	appt.CreatedAt = time.Now().UTC()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO appointments (appointment_id, student_id, professor_id, time_slot, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(professor_id, time_slot) DO NOTHING`,
		appt.AppointmentID,
		appt.StudentID,
		appt.ProfessorID,
		appt.TimeSlot,
		appt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting appointment (%s, %s): %w", appt.ProfessorID, appt.TimeSlot, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking insert result for appointment: %w", err)
	}
	if affected == 0 {
		return apperror.Conflict("the appointment is already booked")
	}

	return nil
}

// ListAppointmentsByStudent returns the student's bookings in insertion
// (rowid) order.
func (db *DB) ListAppointmentsByStudent(ctx context.Context, studentID string) ([]model.Appointment, error) {
	return db.listAppointments(ctx,
		`SELECT appointment_id, student_id, professor_id, time_slot, created_at
		 FROM appointments WHERE student_id = ? ORDER BY rowid`, studentID)
}

// ListAppointmentsByProfessor returns every booking against the professor's
// slots. One call here replaces a per-slot existence query when deriving
// booking state for an availability listing.
func (db *DB) ListAppointmentsByProfessor(ctx context.Context, professorID string) ([]model.Appointment, error) {
	return db.listAppointments(ctx,
		`SELECT appointment_id, student_id, professor_id, time_slot, created_at
		 FROM appointments WHERE professor_id = ? ORDER BY rowid`, professorID)
}

func (db *DB) listAppointments(ctx context.Context, query, key string) ([]model.Appointment, error) {
	rows, err := db.conn.QueryContext(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing appointments for %s: %w", key, err)
	}
	defer rows.Close()

	appts := []model.Appointment{}
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(&a.AppointmentID, &a.StudentID, &a.ProfessorID, &a.TimeSlot, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning appointment row: %w", err)
		}
		appts = append(appts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating appointment rows: %w", err)
	}

	return appts, nil
}
