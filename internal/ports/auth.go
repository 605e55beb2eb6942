package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/campushub/intranet-api/internal/domain/auth"
)

// SessionStore persists and retrieves client sessions, both the pending
// (password-verified) and the authenticated shape. TTL semantics follow the
// session's ExpiresAt.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers transactional email (MFA codes, reset links). Delivery
// failure is reported to the caller but must never be treated as fatal by
// the issuing flow.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
