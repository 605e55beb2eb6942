package httpx

import (
	"errors"
	"net/http"

	"github.com/campushub/intranet-api/internal/domain/model"
	"github.com/campushub/intranet-api/internal/service"
)

const maxAuthLogListLimit = 200 // Maximum number of audit rows per page

// AuthLogHandlers exposes the append-only audit log to admins.
type AuthLogHandlers struct {
	Svc *service.AuditRecorder
}

// List returns a page of audit events, newest first, with optional
// email/action/success filters.
// GET /api/auth-logs.
func (h *AuthLogHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxAuthLogListLimit)

	opts := model.AuthEventsListOptions{Limit: limit, Offset: offset}
	if email := r.URL.Query().Get("email"); email != "" {
		opts.Email = &email
	}
	if action := r.URL.Query().Get("action"); action != "" {
		a := model.AuthAction(action)
		opts.Action = &a
	}
	switch r.URL.Query().Get("success") {
	case "":
	case "true":
		v := true
		opts.Success = &v
	case "false":
		v := false
		opts.Success = &v
	default:
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     errors.New("success must be one of: true, false"),
		})
		return
	}

	events, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"limit":  limit,
		"offset": offset,
	})
}
