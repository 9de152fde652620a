package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/sakif/campus-bookings/internal/apperror"
	"github.com/sakif/campus-bookings/internal/auth"
	"github.com/sakif/campus-bookings/internal/model"
)

// Hand-written in-memory mocks for the repository interfaces. The services
// only see the interfaces, so these swap in for the sqlite implementation
// without the services noticing. Each mock has a failWith field to simulate
// store failures.

type mockUserRepo struct {
	users    map[string]*model.User // keyed by ID
	nextID   int
	failWith error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	if m.failWith != nil {
		return m.failWith
	}
	for _, u := range m.users {
		if u.Username == user.Username {
			return apperror.Conflict(fmt.Sprintf("username %q is already taken", user.Username))
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, u := range m.users {
		if u.Username == username {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}

func (m *mockUserRepo) ListProfessors(_ context.Context) ([]model.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	// Deterministic insertion order: IDs are user-1, user-2, ...
	result := []model.User{}
	for i := 1; i <= m.nextID; i++ {
		if u, ok := m.users[fmt.Sprintf("user-%d", i)]; ok && u.IsProfessor {
			result = append(result, *u)
		}
	}
	return result, nil
}

type mockSlotRepo struct {
	slots    []model.AvailabilitySlot
	nextID   int
	failWith error
}

func (m *mockSlotRepo) CreateSlot(_ context.Context, slot *model.AvailabilitySlot) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.nextID++
	slot.MeetingID = fmt.Sprintf("slot-%d", m.nextID)
	m.slots = append(m.slots, *slot)
	return nil
}

func (m *mockSlotRepo) ListSlotsByProfessor(_ context.Context, professorID string) ([]model.AvailabilitySlot, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	result := []model.AvailabilitySlot{}
	for _, s := range m.slots {
		if s.ProfessorID == professorID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockSlotRepo) SlotExists(_ context.Context, professorID, meetingTime string) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	for _, s := range m.slots {
		if s.ProfessorID == professorID && s.MeetingTime == meetingTime {
			return true, nil
		}
	}
	return false, nil
}

type mockApptRepo struct {
	appts    []model.Appointment
	nextID   int
	failWith error
}

func (m *mockApptRepo) CreateAppointment(_ context.Context, appt *model.Appointment) error {
	if m.failWith != nil {
		return m.failWith
	}
	for _, a := range m.appts {
		if a.ProfessorID == appt.ProfessorID && a.TimeSlot == appt.TimeSlot {
			return apperror.Conflict("the appointment is already booked")
		}
	}
	m.nextID++
	appt.AppointmentID = fmt.Sprintf("appt-%d", m.nextID)
	m.appts = append(m.appts, *appt)
	return nil
}

func (m *mockApptRepo) ListAppointmentsByStudent(_ context.Context, studentID string) ([]model.Appointment, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	result := []model.Appointment{}
	for _, a := range m.appts {
		if a.StudentID == studentID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockApptRepo) ListAppointmentsByProfessor(_ context.Context, professorID string) ([]model.Appointment, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	result := []model.Appointment{}
	for _, a := range m.appts {
		if a.ProfessorID == professorID {
			result = append(result, a)
		}
	}
	return result, nil
}

// testLogger discards everything below Error so test output stays readable.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// testPasswords uses bcrypt cost 4 so account tests don't pay ~250ms a hash.
func testPasswords(t *testing.T) *auth.PasswordService {
	t.Helper()
	return auth.NewPasswordServiceForTest(4)
}
