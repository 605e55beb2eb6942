package httpx

import (
	"errors"
	"net/http"

	"github.com/campushub/intranet-api/internal/data"
	domainauth "github.com/campushub/intranet-api/internal/domain/auth"
	"github.com/campushub/intranet-api/internal/domain/model"
	"github.com/campushub/intranet-api/internal/service"
)

// GradeHandlers provides HTTP handlers for recording and reading grades.
type GradeHandlers struct {
	Svc   *service.GradeService
	Users *service.UserService
}

// Create records a grade. The teacher is taken from the session, and the
// service refuses grades for courses the teacher does not own.
// POST /api/grades.
func (h *GradeHandlers) Create(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		writeAuthRequired(w)
		return
	}

	var req *model.CreateGradeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	grade, err := h.Svc.Record(r.Context(), req, session.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			writeForbidden(w)
		case errors.Is(err, data.ErrCourseNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "course_not_found", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, grade)
}

// ListByStudent returns all grades for a student, newest first.
// GET /api/students/{id}/grades.
func (h *GradeHandlers) ListByStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if !canViewStudent(w, r, h.Users, studentID) {
		return
	}

	grades, err := h.Svc.ListByStudent(r.Context(), studentID)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"grades": grades})
}

// ListByCourse returns all grades recorded for a course.
// GET /api/courses/{id}/grades.
func (h *GradeHandlers) ListByCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	grades, err := h.Svc.ListByCourse(r.Context(), courseID)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"grades": grades})
}

// canViewStudent enforces who may read a student's records: the student
// themself, a linked parent, any teacher, or an admin. Writes the error
// response and returns false when access is denied.
func canViewStudent(w http.ResponseWriter, r *http.Request, users *service.UserService, studentID int64) bool {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		writeAuthRequired(w)
		return false
	}

	switch session.Role {
	case domainauth.RoleAdmin, domainauth.RoleTeacher:
		return true
	case domainauth.RoleStudent:
		if session.UserID == studentID {
			return true
		}
	case domainauth.RoleParent:
		linked, err := users.IsParentOf(r.Context(), session.UserID, studentID)
		if err != nil {
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "access_check_failed", Err: err})
			return false
		}
		if linked {
			return true
		}
	}

	writeForbidden(w)
	return false
}
