package service

import "errors"

// Authentication flow sentinels. Handlers map these to stable error codes;
// everything else is treated as an internal failure.
var (
	// ErrInvalidCredentials covers unknown email, disabled account, and
	// password mismatch. The three causes are indistinguishable to the
	// caller (anti-enumeration) but distinguished in the audit detail.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoPendingSession is returned when MFA verification is attempted
	// without a prior successful password check in this session.
	ErrNoPendingSession = errors.New("no pending authentication session")

	// ErrMFAExpired is returned when the verification code's validity
	// window has elapsed. The pending session is cleared; the user must
	// restart from login.
	ErrMFAExpired = errors.New("verification code expired")

	// ErrInvalidCode is returned on a code mismatch inside the validity
	// window. The pending session stays active for a retry.
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrInvalidOrExpiredToken is returned for any password-reset token
	// verification failure.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")

	// ErrSessionExpired is returned when a session exists but its expiry
	// has passed.
	ErrSessionExpired = errors.New("session expired")

	// ErrAlreadyAuthenticated is returned when login is attempted on a
	// session that already completed MFA.
	ErrAlreadyAuthenticated = errors.New("already authenticated")

	// ErrForbidden is returned when the principal's role does not grant
	// the requested operation.
	ErrForbidden = errors.New("forbidden")
)
