package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/campus-bookings/internal/apperror"
	"github.com/sakif/campus-bookings/internal/model"
	"github.com/sakif/campus-bookings/internal/repository"
)

// BookingService books appointments against published slots and lists a
// student's bookings.
type BookingService struct {
	slots        repository.SlotRepository
	appointments repository.AppointmentRepository
	logger       *slog.Logger
}

// NewBookingService creates a BookingService.
func NewBookingService(
	slots repository.SlotRepository,
	appointments repository.AppointmentRepository,
	logger *slog.Logger,
) *BookingService {
	return &BookingService{
		slots:        slots,
		appointments: appointments,
		logger:       logger,
	}
}

// Book creates an appointment for (studentID, professorID, timeSlot).
//
// The time must match a slot the professor actually published; booking an
// arbitrary time string would create an appointment no availability listing
// ever shows.
//
// There is no separate "is it already booked" check before the write. The
// insert itself is conditional on the store's unique (professor, time) key,
// so when two requests race on the same slot exactly one insert succeeds and
// the other surfaces Conflict with nothing written. A read-then-write here
// would reintroduce the window where both requests pass the read.
func (s *BookingService) Book(ctx context.Context, studentID, professorID, timeSlot string) (*model.Appointment, error) {
	studentID = strings.TrimSpace(studentID)
	professorID = strings.TrimSpace(professorID)
	timeSlot = strings.TrimSpace(timeSlot)

	if studentID == "" {
		return nil, apperror.ValidationFailed("studentId", "studentId is required")
	}
	if professorID == "" {
		return nil, apperror.ValidationFailed("professorId", "professorId is required")
	}
	if timeSlot == "" {
		return nil, apperror.ValidationFailed("timeSlot", "timeSlot is required")
	}

	exists, err := s.slots.SlotExists(ctx, professorID, timeSlot)
	if err != nil {
		s.logger.Error("failed to check slot existence",
			slog.String("professorId", professorID),
			slog.String("timeSlot", timeSlot),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("checking slot: %w", err)
	}
	if !exists {
		return nil, apperror.NotFound("availability slot", professorID+" @ "+timeSlot)
	}

	appt := &model.Appointment{
		StudentID:   studentID,
		ProfessorID: professorID,
		TimeSlot:    timeSlot,
	}

	if err := s.appointments.CreateAppointment(ctx, appt); err != nil {
		// Conflict is a normal outcome (someone else got the slot first),
		// not a store failure, so pass it through untouched.
		return nil, err
	}

	s.logger.Info("appointment booked",
		slog.String("appointmentId", appt.AppointmentID),
		slog.String("studentId", studentID),
		slog.String("professorId", professorID),
		slog.String("timeSlot", timeSlot),
	)

	return appt, nil
}

// ListForStudent returns the student's appointments. No professor-name
// enrichment; the records come back exactly as stored.
func (s *BookingService) ListForStudent(ctx context.Context, studentID string) ([]model.Appointment, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, apperror.ValidationFailed("userId", "user ID is required")
	}

	appts, err := s.appointments.ListAppointmentsByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("failed to list appointments",
			slog.String("studentId", studentID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing appointments: %w", err)
	}

	return appts, nil
}
