package config

import "time"

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// SecretKey signs password-reset tokens. Required outside dev mode.
	SecretKey string `env:"APP_SECRET_KEY"`

	// SessionTTL is the lifetime of an authenticated session.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"2h"`

	// RememberTTL is the session lifetime when the user checks "remember me".
	RememberTTL time.Duration `env:"AUTH_REMEMBER_TTL" envDefault:"720h"`

	// PendingTTL bounds how long a password-verified session may sit on the
	// MFA step before the session store reclaims it. It must be at least the
	// MFA window; expiry of the code itself is enforced by MFAWindow.
	PendingTTL time.Duration `env:"AUTH_PENDING_TTL" envDefault:"15m"`

	// MFAWindow is the validity window of an emailed verification code,
	// measured from issuance.
	MFAWindow time.Duration `env:"AUTH_MFA_WINDOW" envDefault:"120s"`

	// ResetTokenTTL is the validity window of a password-reset token.
	ResetTokenTTL time.Duration `env:"AUTH_RESET_TOKEN_TTL" envDefault:"1h"`
}

// Sanitize applies guardrails to authentication configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 2 * time.Hour
	}
	if a.RememberTTL < a.SessionTTL {
		a.RememberTTL = a.SessionTTL
	}
	if a.MFAWindow <= 0 {
		a.MFAWindow = 120 * time.Second
	}
	if a.PendingTTL < a.MFAWindow {
		a.PendingTTL = a.MFAWindow
	}
	if a.ResetTokenTTL <= 0 {
		a.ResetTokenTTL = time.Hour
	}
}
