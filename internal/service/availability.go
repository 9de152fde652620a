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

// AvailabilityService lets professors publish meeting slots and serves the
// annotated slot listing students book from.
type AvailabilityService struct {
	users        repository.UserRepository
	slots        repository.SlotRepository
	appointments repository.AppointmentRepository
	logger       *slog.Logger
}

// NewAvailabilityService creates an AvailabilityService.
func NewAvailabilityService(
	users repository.UserRepository,
	slots repository.SlotRepository,
	appointments repository.AppointmentRepository,
	logger *slog.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		users:        users,
		slots:        slots,
		appointments: appointments,
		logger:       logger,
	}
}

// Publish creates a new availability slot for a professor.
//
// The professor must exist and hold the professor role: an unknown ID is
// NotFound, a student ID is a validation failure. There is deliberately no
// duplicate-time check: publishing the same meeting time twice yields two
// distinct records that collapse to one derived booking state.
func (s *AvailabilityService) Publish(ctx context.Context, professorID, meetingTime string) (*model.AvailabilitySlot, error) {
	professorID = strings.TrimSpace(professorID)
	meetingTime = strings.TrimSpace(meetingTime)

	if professorID == "" {
		return nil, apperror.ValidationFailed("professorId", "professorId is required")
	}
	if meetingTime == "" {
		return nil, apperror.ValidationFailed("meetingTime", "meetingTime is required")
	}

	professor, err := s.users.GetUserByID(ctx, professorID)
	if err != nil {
		return nil, err
	}
	if !professor.IsProfessor {
		return nil, apperror.ValidationFailed("professorId", "user is not a professor")
	}

	slot := &model.AvailabilitySlot{
		ProfessorID: professorID,
		MeetingTime: meetingTime,
	}

	if err := s.slots.CreateSlot(ctx, slot); err != nil {
		s.logger.Error("failed to publish slot",
			slog.String("professorId", professorID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("publishing slot: %w", err)
	}

	s.logger.Info("slot published",
		slog.String("meetingId", slot.MeetingID),
		slog.String("professorId", professorID),
		slog.String("meetingTime", meetingTime),
	)

	return slot, nil
}

// ListForProfessor returns the professor's slots, each annotated with its
// derived booking state.
//
// The annotation is a single batched join: one query for the slots, one for
// all of the professor's appointments, then an in-memory set lookup per slot.
// Checking each slot with its own appointment query would issue 1+P store
// round trips for P slots for the same observable result.
func (s *AvailabilityService) ListForProfessor(ctx context.Context, professorID string) ([]model.SlotStatus, error) {
	professorID = strings.TrimSpace(professorID)
	if professorID == "" {
		return nil, apperror.ValidationFailed("professorId", "professorId is required")
	}

	slots, err := s.slots.ListSlotsByProfessor(ctx, professorID)
	if err != nil {
		s.logger.Error("failed to list slots",
			slog.String("professorId", professorID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing slots: %w", err)
	}

	appts, err := s.appointments.ListAppointmentsByProfessor(ctx, professorID)
	if err != nil {
		s.logger.Error("failed to list appointments for slot annotation",
			slog.String("professorId", professorID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing appointments: %w", err)
	}

	booked := make(map[string]struct{}, len(appts))
	for _, a := range appts {
		booked[a.TimeSlot] = struct{}{}
	}

	statuses := make([]model.SlotStatus, 0, len(slots))
	for _, slot := range slots {
		_, isBooked := booked[slot.MeetingTime]
		statuses = append(statuses, model.SlotStatus{
			AvailabilitySlot: slot,
			IsBooked:         isBooked,
		})
	}

	return statuses, nil
}
