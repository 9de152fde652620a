package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/campus-bookings/internal/apperror"
	"github.com/sakif/campus-bookings/internal/service"
)

// DirectoryHandler serves the read-only professor directory students browse
// before picking a slot.
type DirectoryHandler struct {
	directory *service.DirectoryService
	logger    *slog.Logger
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(directory *service.DirectoryService, logger *slog.Logger) *DirectoryHandler {
	return &DirectoryHandler{directory: directory, logger: logger}
}

// professorResponse is the single-professor shape. The listing returns full
// User values; the detail endpoint trims to the two fields the booking form
// needs.
type professorResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// HandleList returns every professor account.
//
// HTTP: GET /professors
func (h *DirectoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	professors, err := h.directory.ListProfessors(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, professors)
}

// HandleGet returns a single professor by ID.
//
// HTTP: GET /professors/{id}
//
// Responds 404 for unknown IDs and for IDs that belong to students.
func (h *DirectoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, apperror.ValidationFailed("id", "professor ID is required"))
		return
	}

	prof, err := h.directory.GetProfessor(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, professorResponse{ID: prof.ID, Username: prof.Username})
}
