// Package httpx provides the JSON API surface of the intranet.
package httpx

import (
	"errors"
	"net/http"

	"github.com/campushub/intranet-api/internal/data"
	domainauth "github.com/campushub/intranet-api/internal/domain/auth"
	"github.com/campushub/intranet-api/internal/domain/model"
	"github.com/campushub/intranet-api/internal/service"
)

const maxUserListLimit = 100 // Maximum number of users that can be requested in one call

// UserHandlers provides HTTP handlers for user administration and parent links.
type UserHandlers struct {
	Svc  *service.UserService
	Auth AuthServiceInterface
}

// Create handles admin account creation. It runs through the same path as
// self-registration so the attempt lands in the audit log.
func (h *UserHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req *model.CreateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.Auth.Register(r.Context(), req, RequestMetaFrom(r))
	if err != nil {
		switch {
		case errors.Is(err, data.ErrEmailTaken):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "email_taken", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, user)
}

// List handles HTTP requests to list users with pagination and filters.
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxUserListLimit)

	opts := model.UsersListOptions{Limit: limit, Offset: offset}
	if roleParam := r.URL.Query().Get("role"); roleParam != "" {
		role := domainauth.Role(roleParam)
		if !role.Valid() {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "validation_failed",
				Err:     errors.New("role must be one of: student, parent, teacher, admin"),
			})
			return
		}
		opts.Role = &role
	}
	if q := r.URL.Query().Get("q"); q != "" {
		opts.Q = &q
	}

	users, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"users":  users,
		"limit":  limit,
		"offset": offset,
	})
}

// GetByID handles HTTP requests to fetch one user. Admins may fetch anyone;
// everyone else only their own record.
func (h *UserHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	session := GetSessionFromContext(r.Context())
	if session == nil || (session.Role != domainauth.RoleAdmin && session.UserID != id) {
		writeForbidden(w)
		return
	}

	user, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "user_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

// Me returns the caller's own account record.
func (h *UserHandlers) Me(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		writeAuthRequired(w)
		return
	}

	user, err := h.Svc.GetByID(r.Context(), session.UserID)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "user_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

// Update handles HTTP requests to update a user.
func (h *UserHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrUserNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "user_not_found", Err: err})
		case errors.Is(err, data.ErrEmailTaken):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "email_taken", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

// Delete handles HTTP requests to delete a user.
func (h *UserHandlers) Delete(w http.ResponseWriter, r *http.Request) {
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
			ErrorParams{Code: http.StatusNotFound, ErrCode: "user_not_found", Err: errors.New("user not found")},
		)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

type linkChildRequest struct {
	StudentID    int64  `json:"student_id"`
	Relationship string `json:"relationship,omitempty"`
}

// LinkChild ties a parent account to a student account (admin only).
// POST /api/users/{id}/children.
func (h *UserHandlers) LinkChild(w http.ResponseWriter, r *http.Request) {
	parentID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req linkChildRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.StudentID <= 0 {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     errors.New("student_id is required"),
		})
		return
	}

	link, err := h.Svc.LinkChild(r.Context(), parentID, req.StudentID, req.Relationship)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrLinkExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "link_exists", Err: err})
		case errors.Is(err, data.ErrUserNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "user_not_found", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "link_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, link)
}

// ListChildren returns the students linked to a parent. Admins may look at
// any parent; a parent only at their own links.
// GET /api/users/{id}/children.
func (h *UserHandlers) ListChildren(w http.ResponseWriter, r *http.Request) {
	parentID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	session := GetSessionFromContext(r.Context())
	if session == nil || (session.Role != domainauth.RoleAdmin && session.UserID != parentID) {
		writeForbidden(w)
		return
	}

	children, err := h.Svc.ListChildren(r.Context(), parentID)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"children": children})
}

// MyChildren returns the caller's own linked students (parent shortcut).
// GET /api/children.
func (h *UserHandlers) MyChildren(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		writeAuthRequired(w)
		return
	}

	children, err := h.Svc.ListChildren(r.Context(), session.UserID)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"children": children})
}
