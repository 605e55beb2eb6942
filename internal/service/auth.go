package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/intranet-api/internal/core"
	"github.com/campushub/intranet-api/internal/crypto"
	"github.com/campushub/intranet-api/internal/data"
	domainauth "github.com/campushub/intranet-api/internal/domain/auth"
	"github.com/campushub/intranet-api/internal/domain/model"
	"github.com/campushub/intranet-api/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users    core.UserRepository
	Sessions ports.SessionStore
	MFA      *MFAEngine
	Audit    *AuditRecorder
	Mailer   ports.Mailer
	Reset    *crypto.ResetTokenSigner
	Logger   *slog.Logger

	// SessionTTL bounds an authenticated session; RememberTTL replaces it
	// when the client asks to be remembered. PendingTTL bounds the window
	// between password check and MFA completion.
	SessionTTL  time.Duration
	RememberTTL time.Duration
	PendingTTL  time.Duration

	// ResetLinkBase is prepended to the reset token when building the
	// emailed link, e.g. "https://intranet.example.com/auth/reset-password".
	ResetLinkBase string

	// Now overrides the clock in tests.
	Now func() time.Time
}

// AuthService orchestrates the login state machine: password check, MFA code
// issuance and verification, session promotion, logout, registration, and
// password reset. Each flow records its outcome in the audit log.
type AuthService struct {
	users    core.UserRepository
	sessions ports.SessionStore
	mfa      *MFAEngine
	audit    *AuditRecorder
	mailer   ports.Mailer
	reset    *crypto.ResetTokenSigner
	logger   *slog.Logger

	sessionTTL    time.Duration
	rememberTTL   time.Duration
	pendingTTL    time.Duration
	resetLinkBase string

	now func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		users:         opts.Users,
		sessions:      opts.Sessions,
		mfa:           opts.MFA,
		audit:         opts.Audit,
		mailer:        opts.Mailer,
		reset:         opts.Reset,
		logger:        logger.With("component", "auth"),
		sessionTTL:    opts.SessionTTL,
		rememberTTL:   opts.RememberTTL,
		pendingTTL:    opts.PendingTTL,
		resetLinkBase: opts.ResetLinkBase,
		now:           now,
	}
}

// Login verifies the password for email and, on success, issues an MFA code,
// binds a pending session, and dispatches the code by email. The returned
// session is the pending shape; the caller is not authenticated until
// VerifyMFA succeeds. Unknown email, disabled account, and password mismatch
// all surface as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string, meta RequestMeta) (*domainauth.Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			s.audit.Record(ctx, nil, email, model.AuthActionLoginAttempt, false, "unknown email", meta)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	if !user.IsActive {
		s.audit.Record(ctx, &user.ID, email, model.AuthActionLoginAttempt, false, "account disabled", meta)
		return nil, ErrInvalidCredentials
	}
	if !crypto.CheckPassword(user.PasswordHash, password) {
		s.audit.Record(ctx, &user.ID, email, model.AuthActionLoginAttempt, false, "password mismatch", meta)
		return nil, ErrInvalidCredentials
	}

	code, err := s.mfa.IssueCode(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue verification code: %w", err)
	}

	now := s.now()
	session := domainauth.Session{
		ID:              generateSessionID(),
		PendingUserID:   user.ID,
		PendingIssuedAt: now,
		ExpiresAt:       now.Add(s.pendingTTL),
	}
	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save pending session: %w", saveErr)
	}

	s.audit.Record(ctx, &user.ID, email, model.AuthActionMFACodeSent, true, "", meta)

	// Delivery failure does not invalidate the issued code; the user can
	// retry login to get a fresh one.
	if sendErr := s.deliverCode(ctx, user, code); sendErr != nil {
		s.logger.ErrorContext(ctx, "verification code delivery failed", "err", sendErr)
		s.audit.Record(ctx, &user.ID, email, model.AuthActionMFADeliveryFailed, false, sendErr.Error(), meta)
	}

	return &session, nil
}

// VerifyMFA completes the second factor for a pending session. On success the
// session is promoted to the authenticated shape under a fresh ID. On expiry
// the pending session is cleared and the user must restart from Login; on a
// wrong code the pending session stays live for a retry.
func (s *AuthService) VerifyMFA(ctx context.Context, sessionID, code string, rememberMe bool, meta RequestMeta) (*domainauth.Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil || !sess.IsPending() {
		return nil, ErrNoPendingSession
	}

	user, err := s.users.GetByID(ctx, sess.PendingUserID)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			_ = s.sessions.Delete(ctx, sessionID)
			return nil, ErrNoPendingSession
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	now := s.now()
	if verifyErr := s.mfa.VerifyCode(ctx, user, code, sess.PendingIssuedAt, now); verifyErr != nil {
		switch {
		case errors.Is(verifyErr, ErrMFAExpired):
			if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
				s.logger.ErrorContext(ctx, "clear expired pending session", "err", deleteErr)
			}
			s.audit.Record(ctx, &user.ID, user.Email, model.AuthActionMFAFailed, false, "code expired", meta)
			return nil, ErrMFAExpired
		case errors.Is(verifyErr, ErrInvalidCode):
			s.audit.Record(ctx, &user.ID, user.Email, model.AuthActionMFAFailed, false, "code mismatch", meta)
			return nil, ErrInvalidCode
		default:
			return nil, verifyErr
		}
	}

	ttl := s.sessionTTL
	if rememberMe {
		ttl = s.rememberTTL
	}
	authenticated := domainauth.Session{
		ID:          generateSessionID(),
		UserID:      user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        user.Role,
		MFAVerified: true,
		ExpiresAt:   now.Add(ttl),
	}
	if saveErr := s.sessions.Save(ctx, authenticated); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}
	// Drop the pending session so a replayed code hits ErrNoPendingSession.
	if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
		s.logger.ErrorContext(ctx, "clear pending session after promotion", "err", deleteErr)
	}

	s.audit.Record(ctx, &user.ID, user.Email, model.AuthActionLoginSuccess, true, "", meta)

	return &authenticated, nil
}

// Logout ends a session. For an authenticated session the account's verified
// flag is cleared so the next login requires a fresh MFA pass. Calling with
// an unknown or empty session ID is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string, meta RequestMeta) error {
	if sessionID == "" {
		return nil
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil // Nothing to log out
	}

	if sess.UserID != 0 {
		if clearErr := s.users.ClearMFAVerified(ctx, sess.UserID); clearErr != nil && !errors.Is(clearErr, data.ErrUserNotFound) {
			return fmt.Errorf("clear verified flag: %w", clearErr)
		}
		s.audit.Record(ctx, &sess.UserID, sess.Email, model.AuthActionLogout, true, "", meta)
	}

	if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
		return fmt.Errorf("delete session: %w", deleteErr)
	}
	return nil
}

// InvalidateSession destroys a session that carries an authenticated marker
// without completed MFA (the stuck state), returning the caller to anonymous.
func (s *AuthService) InvalidateSession(ctx context.Context, sessionID string, meta RequestMeta) error {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil
	}
	if sess.UserID != 0 {
		s.audit.Record(ctx, &sess.UserID, sess.Email, model.AuthActionSessionInvalidated, true, "authenticated without mfa", meta)
	}
	if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
		return fmt.Errorf("delete session: %w", deleteErr)
	}
	return nil
}

// Register creates a new account with a hashed password. Duplicate email
// surfaces as data.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, req *model.CreateUserRequest, meta RequestMeta) (*model.User, error) {
	if req == nil {
		return nil, errors.New("register request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req, hash)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &user.ID, user.Email, model.AuthActionRegister, true, string(user.Role), meta)
	return user, nil
}

// RequestReset issues a signed password-reset token and emails the reset
// link. It reports success regardless of whether the email exists, so the
// endpoint cannot be used to enumerate accounts.
func (s *AuthService) RequestReset(ctx context.Context, email string, meta RequestMeta) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			s.audit.Record(ctx, nil, email, model.AuthActionPasswordResetReq, false, "unknown email", meta)
			return nil
		}
		return fmt.Errorf("lookup account: %w", err)
	}

	token, err := s.reset.Sign(user.ID, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("sign reset token: %w", err)
	}

	msg := ports.Message{
		To:      user.Email,
		Subject: "Password reset",
		Body: fmt.Sprintf(
			"Hello %s,\n\nA password reset was requested for your account. Open the link below to choose a new password:\n\n%s/%s\n\nThe link expires in one hour. If you did not request this, you can ignore this message.\n",
			user.FirstName, s.resetLinkBase, token,
		),
	}
	if sendErr := s.mailer.Send(ctx, msg); sendErr != nil {
		s.logger.ErrorContext(ctx, "reset link delivery failed", "err", sendErr)
	}

	s.audit.Record(ctx, &user.ID, user.Email, model.AuthActionPasswordResetReq, true, "", meta)
	return nil
}

// RedeemReset verifies a reset token and sets the new password. The token
// embeds a digest of the password hash it was issued against, so it stops
// verifying once the password changes; a redeemed token cannot be replayed.
func (s *AuthService) RedeemReset(ctx context.Context, token, newPassword string, meta RequestMeta) error {
	userID, version, err := s.reset.Verify(token)
	if err != nil {
		return ErrInvalidOrExpiredToken
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("lookup account: %w", err)
	}
	if !crypto.VerifyVersion(version, user.PasswordHash) {
		return ErrInvalidOrExpiredToken
	}

	if strengthErr := model.ValidatePasswordStrength(newPassword); strengthErr != nil {
		return strengthErr
	}
	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if setErr := s.users.SetPasswordHash(ctx, user.ID, hash); setErr != nil {
		return fmt.Errorf("set password: %w", setErr)
	}

	s.audit.Record(ctx, &user.ID, user.Email, model.AuthActionPasswordReset, true, "", meta)
	return nil
}

// GetSession retrieves a session by ID, cleaning it up if its expiry has
// passed.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if s.now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(ErrSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, ErrSessionExpired
	}

	return &session, nil
}

func (s *AuthService) deliverCode(ctx context.Context, user *model.User, code string) error {
	msg := ports.Message{
		To:      user.Email,
		Subject: "Your verification code",
		Body: fmt.Sprintf(
			"Hello %s,\n\nYour verification code is: %s\n\nIt expires in %d seconds.\n",
			user.FirstName, code, int(s.mfa.Window().Seconds()),
		),
	}
	return s.mailer.Send(ctx, msg)
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	// Use UUID for session ID - it's URL-safe and has good entropy
	return uuid.New().String()
}
