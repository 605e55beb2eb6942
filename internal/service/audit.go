package service

import (
	"context"
	"log/slog"

	"github.com/campushub/intranet-api/internal/core"
	"github.com/campushub/intranet-api/internal/domain/model"
)

// RequestMeta carries client metadata attached to audit events.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// AuditRecorder appends authentication events. Write failures are logged and
// swallowed so a broken audit sink can never block the auth flow itself.
type AuditRecorder struct {
	repo   core.AuthLogRepository
	logger *slog.Logger
}

// NewAuditRecorder constructs an AuditRecorder. A nil logger falls back to
// slog.Default.
func NewAuditRecorder(repo core.AuthLogRepository, logger *slog.Logger) *AuditRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditRecorder{repo: repo, logger: logger.With("component", "audit")}
}

// Record appends one event. userID may be nil when the attempt did not
// resolve to an account.
func (a *AuditRecorder) Record(ctx context.Context, userID *int64, email string, action model.AuthAction, success bool, detail string, meta RequestMeta) {
	event := &model.AuthEvent{
		UserID:  userID,
		Email:   email,
		Action:  action,
		Success: success,
	}
	if detail != "" {
		event.Details = &detail
	}
	if meta.IPAddress != "" {
		event.IPAddress = &meta.IPAddress
	}
	if meta.UserAgent != "" {
		event.UserAgent = &meta.UserAgent
	}

	if err := a.repo.Append(ctx, event); err != nil {
		a.logger.ErrorContext(ctx, "audit append failed",
			"action", string(action),
			"email", email,
			"err", err,
		)
	}
}

// List returns a page of audit events for admin reporting.
func (a *AuditRecorder) List(ctx context.Context, opts model.AuthEventsListOptions) ([]*model.AuthEvent, error) {
	return a.repo.List(ctx, opts)
}
