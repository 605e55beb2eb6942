package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleParent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// Session is the server-side record persisted for a client. A session moves
// through three shapes:
//
//	anonymous:          no user fields set
//	password-verified:  PendingUserID/PendingIssuedAt set, UserID zero
//	authenticated:      UserID set, MFAVerified true
//
// A session carrying UserID without MFAVerified is a stuck state; callers
// must destroy it rather than honoring it.
type Session struct {
	ID string `json:"id"`

	// Pre-auth state: password check passed, MFA outstanding.
	PendingUserID   int64     `json:"pending_user_id,omitempty"`
	PendingIssuedAt time.Time `json:"pending_issued_at,omitzero"`

	// Authenticated state.
	UserID      int64  `json:"user_id,omitempty"`
	Email       string `json:"email,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Role        Role   `json:"role,omitempty"`
	MFAVerified bool   `json:"mfa_verified,omitempty"`

	ExpiresAt time.Time `json:"expires_at"`
}

// IsPending returns true if the session has passed the password check but
// not yet completed MFA.
func (s Session) IsPending() bool { return s.PendingUserID != 0 && s.UserID == 0 }

// IsAuthenticated returns true if the session completed the full login flow.
func (s Session) IsAuthenticated() bool { return s.UserID != 0 && s.MFAVerified }

// IsStuck returns true for the repair case: an authenticated marker without
// completed MFA.
func (s Session) IsStuck() bool { return s.UserID != 0 && !s.MFAVerified }
