package httpx

import (
	"errors"
	"net/http"

	"github.com/campushub/intranet-api/internal/data"
	"github.com/campushub/intranet-api/internal/domain/model"
	"github.com/campushub/intranet-api/internal/service"
)

// ScheduleHandlers provides HTTP handlers for timetable slots.
type ScheduleHandlers struct {
	Svc *service.ScheduleService
}

// Create adds a timetable slot.
// POST /api/schedules.
func (h *ScheduleHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req *model.CreateScheduleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	schedule, err := h.Svc.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrCourseNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "course_not_found", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, schedule)
}

// List returns the timetable for a class group, ordered by day then start.
// GET /api/schedules?class_group=….
func (h *ScheduleHandlers) List(w http.ResponseWriter, r *http.Request) {
	classGroup := r.URL.Query().Get("class_group")
	if classGroup == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     errors.New("class_group is required"),
		})
		return
	}

	schedules, err := h.Svc.ListByClassGroup(r.Context(), classGroup)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"schedules": schedules})
}

// ListByCourse returns the slots of one course.
// GET /api/courses/{id}/schedule.
func (h *ScheduleHandlers) ListByCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	schedules, err := h.Svc.ListByCourse(r.Context(), courseID)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"schedules": schedules})
}

// Delete removes a timetable slot.
// DELETE /api/schedules/{id}.
func (h *ScheduleHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}

	if !deleted {
		WriteError(
			w,
			ErrorParams{Code: http.StatusNotFound, ErrCode: "schedule_not_found", Err: errors.New("schedule not found")},
		)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
