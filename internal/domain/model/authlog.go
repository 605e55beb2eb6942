package model

import "time"

// AuthAction is the kind of authentication event being recorded.
type AuthAction string

const (
	AuthActionLoginAttempt       AuthAction = "login_attempt"
	AuthActionMFACodeSent        AuthAction = "mfa_code_sent"
	AuthActionMFADeliveryFailed  AuthAction = "mfa_delivery_failed"
	AuthActionMFAFailed          AuthAction = "mfa_failed"
	AuthActionLoginSuccess       AuthAction = "login_success"
	AuthActionLogout             AuthAction = "logout"
	AuthActionRegister           AuthAction = "register"
	AuthActionPasswordResetReq   AuthAction = "password_reset_requested"
	AuthActionPasswordReset      AuthAction = "password_reset"
	AuthActionSessionInvalidated AuthAction = "session_invalidated"
)

// AuthEvent is an append-only audit record of one authentication-relevant
// action. Rows are never mutated or deleted after creation.
type AuthEvent struct {
	ID        int64      `json:"id"         db:"id"`
	UserID    *int64     `json:"user_id,omitempty" db:"user_id"`
	Email     string     `json:"email"      db:"email"`
	Action    AuthAction `json:"action"     db:"action"`
	Success   bool       `json:"success"    db:"success"`
	IPAddress *string    `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent *string    `json:"user_agent,omitempty" db:"user_agent"`
	Details   *string    `json:"details,omitempty" db:"details"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// AuthEventsListOptions controls paging and filtering when listing audit
// events (admin reporting).
type AuthEventsListOptions struct {
	Limit   int
	Offset  int
	Email   *string     // exact match
	Action  *AuthAction // exact match
	Success *bool       // exact match
}

// Normalize applies defaults to list options.
func (o *AuthEventsListOptions) Normalize() {
	if o.Limit <= 0 {
		o.Limit = 50
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
}
