package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/campushub/intranet-api/internal/data"
	domainauth "github.com/campushub/intranet-api/internal/domain/auth"
	"github.com/campushub/intranet-api/internal/domain/model"
	"github.com/campushub/intranet-api/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string, meta service.RequestMeta) (*domainauth.Session, error)
	VerifyMFA(ctx context.Context, sessionID, code string, rememberMe bool, meta service.RequestMeta) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string, meta service.RequestMeta) error
	InvalidateSession(ctx context.Context, sessionID string, meta service.RequestMeta) error
	Register(ctx context.Context, req *model.CreateUserRequest, meta service.RequestMeta) (*model.User, error)
	RequestReset(ctx context.Context, email string, meta service.RequestMeta) error
	RedeemReset(ctx context.Context, token, newPassword string, meta service.RequestMeta) error
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	CookieDomain string
	CookieSecure bool
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyMFARequest struct {
	Code       string `json:"code"`
	RememberMe bool   `json:"remember_me"`
}

type resetRequestBody struct {
	Email string `json:"email"`
}

type resetPasswordBody struct {
	Password string `json:"password"`
}

// Login handles the first step of the login flow: password verification.
// On success the client holds a pending session cookie and must complete
// the emailed verification code within the MFA window.
// POST /auth/login {email, password}.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	// A fully signed-in caller has nothing to gain here; tell it so instead
	// of silently issuing a second pending session.
	if cookie, err := r.Cookie("session_id"); err == nil {
		if existing, getErr := h.Svc.GetSession(r.Context(), cookie.Value); getErr == nil && existing.IsAuthenticated() {
			WriteError(w, ErrorParams{
				Code:    http.StatusConflict,
				ErrCode: "already_authenticated",
				Err:     errors.New("already logged in; log out first"),
			})
			return
		}
	}

	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	session, err := h.Svc.Login(r.Context(), req.Email, req.Password, RequestMetaFrom(r))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "invalid_credentials", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "login_failed", Err: err})
		return
	}

	h.setSessionCookie(w, session)
	WriteJSON(w, http.StatusOK, map[string]any{
		"mfa_required": true,
		"message":      "verification code sent by email",
	})
}

// VerifyMFA completes the login flow by checking the emailed code against
// the pending session. Success rotates the session ID and returns the
// signed-in user.
// POST /auth/mfa-verify {code, remember_me}.
func (h *AuthHandlers) VerifyMFA(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("session_id")
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "no_pending_session",
			Err:     errors.New("no login in progress"),
		})
		return
	}

	var req verifyMFARequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     errors.New("code is required"),
		})
		return
	}

	session, err := h.Svc.VerifyMFA(r.Context(), cookie.Value, req.Code, req.RememberMe, RequestMetaFrom(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoPendingSession):
			// A live authenticated session also fails the pending check; its
			// cookie must survive a stray verify call.
			if existing, getErr := h.Svc.GetSession(r.Context(), cookie.Value); getErr != nil || !existing.IsAuthenticated() {
				h.clearCookie(w, "session_id")
			}
			WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "no_pending_session", Err: err})
		case errors.Is(err, service.ErrMFAExpired):
			h.clearCookie(w, "session_id")
			WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "mfa_expired", Err: err})
		case errors.Is(err, service.ErrInvalidCode):
			// Pending session survives a mistyped code; the cookie stays.
			WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "invalid_code", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "mfa_verify_failed", Err: err})
		}
		return
	}

	h.setSessionCookie(w, session)
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          sessionUserPayload(session),
		"expires_at":    session.ExpiresAt,
	})
}

// Logout terminates the session named by the cookie. Idempotent: a missing
// or dead session still yields success and a cleared cookie.
// POST /auth/logout (GET accepted for plain links).
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session_id"); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), cookie.Value, RequestMetaFrom(r)); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}

	h.clearCookie(w, "session_id")
	WriteJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Register creates a new account.
// POST /auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req *model.CreateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.Svc.Register(r.Context(), req, RequestMetaFrom(r))
	if err != nil {
		switch {
		case errors.Is(err, data.ErrEmailTaken):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "email_taken", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "register_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, user)
}

// RequestReset starts the password reset flow. The response is identical
// whether or not the email maps to an account.
// POST /auth/reset-request {email}.
func (h *AuthHandlers) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequestBody
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     errors.New("email is required"),
		})
		return
	}

	if err := h.Svc.RequestReset(r.Context(), req.Email, RequestMetaFrom(r)); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "reset_request_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"message": "if the account exists, a reset link has been sent",
	})
}

// ResetPassword redeems a reset token and sets the new password.
// POST /auth/reset-password/{token} {password}.
func (h *AuthHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("reset token is required"),
		})
		return
	}

	var req resetPasswordBody
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := h.Svc.RedeemReset(r.Context(), token, req.Password, RequestMetaFrom(r)); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrExpiredToken):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_or_expired_token", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "reset_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("session_id")
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	session, err := h.Svc.GetSession(r.Context(), cookie.Value)
	if err != nil {
		// Session is invalid or expired, clear the cookie.
		h.clearCookie(w, "session_id")
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	if session.IsPending() {
		WriteJSON(w, http.StatusOK, map[string]any{
			"authenticated": false,
			"mfa_pending":   true,
		})
		return
	}
	if !session.IsAuthenticated() {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          sessionUserPayload(session),
		"expires_at":    session.ExpiresAt,
	})
}

// sessionUserPayload shapes the user block returned by Status and VerifyMFA.
func sessionUserPayload(s *domainauth.Session) map[string]any {
	return map[string]any{
		"id":         s.UserID,
		"first_name": s.FirstName,
		"last_name":  s.LastName,
		"email":      s.Email,
		"role":       s.Role,
	}
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, s *domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

// clearCookie clears a cookie by setting it to expire immediately.
// It mirrors key attributes (Secure, Path, Domain, SameSite) used when setting cookies
// to maximize compatibility across browsers during deletion.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// RequestMetaFrom extracts the client IP and user agent for audit records.
// X-Forwarded-For wins over RemoteAddr when a proxy sits in front.
func RequestMetaFrom(r *http.Request) service.RequestMeta {
	ip := r.Header.Get("X-Forwarded-For")
	if idx := strings.IndexByte(ip, ','); idx != -1 {
		ip = ip[:idx]
	}
	ip = strings.TrimSpace(ip)
	if ip == "" {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err == nil {
			ip = host
		} else {
			ip = r.RemoteAddr
		}
	}
	return service.RequestMeta{IPAddress: ip, UserAgent: r.UserAgent()}
}
