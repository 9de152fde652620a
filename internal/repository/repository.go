// Package repository defines the storage interfaces consumed by the service
// layer. Services depend on these interfaces, never on the sqlite package, so
// tests inject in-memory mocks and the backend could be swapped without
// touching business logic.
package repository

import (
	"context"

	"github.com/sakif/campus-bookings/internal/model"
)

// UserRepository stores user accounts. Accounts are immutable after creation.
type UserRepository interface {
	// CreateUser inserts a new user. Returns apperror.ErrConflict if the
	// username is already taken.
	CreateUser(ctx context.Context, user *model.User) error

	// GetUserByUsername looks a user up by their unique username.
	// Returns apperror.ErrNotFound if absent.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// GetUserByID looks a user up by internal ID.
	// Returns apperror.ErrNotFound if absent.
	GetUserByID(ctx context.Context, id string) (*model.User, error)

	// ListProfessors returns every user with the professor role, in
	// insertion order.
	ListProfessors(ctx context.Context) ([]model.User, error)
}

// SlotRepository stores availability slots. Slots are never mutated or
// deleted; duplicate meeting times for one professor are allowed.
type SlotRepository interface {
	CreateSlot(ctx context.Context, slot *model.AvailabilitySlot) error

	// ListSlotsByProfessor returns the professor's slots in insertion order.
	ListSlotsByProfessor(ctx context.Context, professorID string) ([]model.AvailabilitySlot, error)

	// SlotExists reports whether the professor has published the exact
	// meeting-time string.
	SlotExists(ctx context.Context, professorID, meetingTime string) (bool, error)
}

// AppointmentRepository stores bookings. The (professorID, timeSlot) pair is
// unique: CreateAppointment is the single serialization point for the
// at-most-one-booking invariant.
type AppointmentRepository interface {
	// CreateAppointment inserts the appointment as a conditional write.
	// If an appointment for the same (professorID, timeSlot) already exists
	// it writes nothing and returns apperror.ErrConflict; including when two
	// concurrent requests race, where exactly one wins.
	CreateAppointment(ctx context.Context, appt *model.Appointment) error

	// ListAppointmentsByStudent returns the student's bookings in insertion
	// order.
	ListAppointmentsByStudent(ctx context.Context, studentID string) ([]model.Appointment, error)

	// ListAppointmentsByProfessor returns every booking against the
	// professor's slots, used to derive per-slot booking state in one query
	// instead of one lookup per slot.
	ListAppointmentsByProfessor(ctx context.Context, professorID string) ([]model.Appointment, error)
}
