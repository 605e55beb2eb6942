package httpx

import (
	"errors"
	"net/http"

	"github.com/campushub/intranet-api/internal/domain/model"
	"github.com/campushub/intranet-api/internal/service"
)

// AbsenceHandlers provides HTTP handlers for marking and reading absences.
type AbsenceHandlers struct {
	Svc   *service.AbsenceService
	Users *service.UserService
}

// Create marks an absence. The marking teacher is taken from the session.
// POST /api/absences.
func (h *AbsenceHandlers) Create(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		writeAuthRequired(w)
		return
	}

	var req *model.CreateAbsenceRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	absence, err := h.Svc.Mark(r.Context(), req, session.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			writeForbidden(w)
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, absence)
}

// ListByStudent returns a student's absences, newest first.
// GET /api/students/{id}/absences.
func (h *AbsenceHandlers) ListByStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if !canViewStudent(w, r, h.Users, studentID) {
		return
	}

	absences, err := h.Svc.ListByStudent(r.Context(), studentID)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"absences": absences})
}
