package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/campushub/intranet-api/internal/core"
	"github.com/campushub/intranet-api/internal/crypto"
	"github.com/campushub/intranet-api/internal/domain/model"
)

// MFAEngine drives the per-account verification-code state machine:
// NoCode -> CodeIssued -> Verified | Expired. The code lives in a single
// mutable slot on the account; issuing a new code overwrites the previous
// one, so concurrent logins race with last-write-wins semantics.
type MFAEngine struct {
	users  core.UserRepository
	window time.Duration
}

// NewMFAEngine constructs an MFAEngine with the given validity window.
func NewMFAEngine(users core.UserRepository, window time.Duration) *MFAEngine {
	return &MFAEngine{users: users, window: window}
}

// Window returns the configured code validity window.
func (e *MFAEngine) Window() time.Duration { return e.window }

// IssueCode generates a fresh code for the account and stores it,
// invalidating any previous code. The code is returned for out-of-band
// delivery and must never be logged.
func (e *MFAEngine) IssueCode(ctx context.Context, userID int64) (string, error) {
	code, err := crypto.NewMFACode()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	if err := e.users.SetMFACode(ctx, userID, code); err != nil {
		return "", fmt.Errorf("store code: %w", err)
	}
	return code, nil
}

// VerifyCode checks a submitted code against the account's current slot.
// Expiry is checked first: past the window the code is rejected regardless
// of correctness. On match the account is marked verified and last_login is
// stamped. On mismatch inside the window the stored code stays valid for a
// retry.
func (e *MFAEngine) VerifyCode(ctx context.Context, user *model.User, submitted string, issuedAt, now time.Time) error {
	if now.Sub(issuedAt) > e.window {
		return ErrMFAExpired
	}
	if user.MFASecret == nil || *user.MFASecret == "" {
		return ErrInvalidCode
	}
	if subtle.ConstantTimeCompare([]byte(*user.MFASecret), []byte(submitted)) != 1 {
		return ErrInvalidCode
	}
	if err := e.users.MarkMFAVerified(ctx, user.ID, now); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	return nil
}
