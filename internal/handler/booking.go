package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/campus-bookings/internal/apperror"
	"github.com/sakif/campus-bookings/internal/service"
)

// BookingHandler serves appointment creation and per-student listing.
type BookingHandler struct {
	bookings *service.BookingService
	logger   *slog.Logger
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookings *service.BookingService, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{bookings: bookings, logger: logger}
}

type bookRequest struct {
	StudentID   string `json:"studentId"`
	ProfessorID string `json:"professorId"`
	TimeSlot    string `json:"timeSlot"`
}

// HandleBook books an appointment for a published slot.
//
// HTTP: POST /appointments
// REQUEST BODY: {"studentId": "...", "professorId": "...", "timeSlot": "2024-05-01T10:00"}
//
// Responds 201 with the appointment. A (professor, timeSlot) pair that is
// already booked responds 409 regardless of how the two requests were
// interleaved; the store admits exactly one insert per pair.
func (h *BookingHandler) HandleBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	appt, err := h.bookings.Book(r.Context(), req.StudentID, req.ProfessorID, req.TimeSlot)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("appointment booked",
		slog.String("appointmentId", appt.AppointmentID),
		slog.String("professorId", appt.ProfessorID),
		slog.String("timeSlot", appt.TimeSlot))
	writeJSON(w, http.StatusCreated, appt)
}

// HandleListForStudent returns the appointments a student has booked.
//
// HTTP: GET /appointments/{userId}
//
// A student with no bookings gets an empty list.
func (h *BookingHandler) HandleListForStudent(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeError(w, apperror.ValidationFailed("userId", "user ID is required"))
		return
	}

	appts, err := h.bookings.ListForStudent(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, appts)
}
