package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/campus-bookings/internal/apperror"
	"github.com/sakif/campus-bookings/internal/service"
)

// AvailabilityHandler serves slot publishing and the per-professor listing.
type AvailabilityHandler struct {
	availability *service.AvailabilityService
	logger       *slog.Logger
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(availability *service.AvailabilityService, logger *slog.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability, logger: logger}
}

type publishRequest struct {
	ProfessorID string `json:"professorId"`
	MeetingTime string `json:"meetingTime"`
}

// HandlePublish opens a new meeting time for booking.
//
// HTTP: POST /availability
// REQUEST BODY: {"professorId": "...", "meetingTime": "2024-05-01T10:00"}
//
// Responds 201 with the created slot, 404 for an unknown professor.
func (h *AvailabilityHandler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	slot, err := h.availability.Publish(r.Context(), req.ProfessorID, req.MeetingTime)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("availability published",
		slog.String("meetingId", slot.MeetingID),
		slog.String("professorId", slot.ProfessorID))
	writeJSON(w, http.StatusCreated, slot)
}

// HandleList returns a professor's slots with their booking state.
//
// HTTP: GET /availability/{professorId}
//
// RESPONSE FORMAT:
//
//	[{"meetingId":"...","professorId":"...","meetingTime":"...","isBooked":false}, ...]
//
// An unknown professor yields an empty list, not a 404: the listing reflects
// published slots, of which an unknown ID has none.
func (h *AvailabilityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	professorID := chi.URLParam(r, "professorId")
	if professorID == "" {
		writeError(w, apperror.ValidationFailed("professorId", "professor ID is required"))
		return
	}

	statuses, err := h.availability.ListForProfessor(r.Context(), professorID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statuses)
}
