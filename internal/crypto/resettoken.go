package crypto

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidResetToken is returned for any reset-token verification failure:
// bad signature, expiry, malformed claims, or a stale password version.
var ErrInvalidResetToken = errors.New("invalid or expired reset token")

const resetTokenIssuer = "intranet-api"

// resetClaims is the payload of a password-reset token. The token is
// self-describing and verifiable without server-side storage.
type resetClaims struct {
	// PasswordVersion pins the token to the password hash current at
	// issuance. Redeeming the token rotates the hash, so the token cannot
	// be replayed within its expiry window.
	PasswordVersion string `json:"pwv"`
	jwt.RegisteredClaims
}

// ResetTokenSigner mints and verifies password-reset tokens with an HS256
// signature over the server's secret key.
type ResetTokenSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewResetTokenSigner creates a signer. ttl bounds token validity.
func NewResetTokenSigner(secret string, ttl time.Duration) (*ResetTokenSigner, error) {
	if secret == "" {
		return nil, errors.New("reset token secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("reset token ttl must be > 0")
	}
	return &ResetTokenSigner{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Sign issues a token for the given user, pinned to their current password
// hash.
func (s *ResetTokenSigner) Sign(userID int64, passwordHash string) (string, error) {
	now := s.now().UTC()
	claims := resetClaims{
		PasswordVersion: PasswordVersion(passwordHash),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    resetTokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign reset token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded user ID.
// currentPasswordHash must be the hash stored for that user right now; a
// mismatch means the password changed after issuance and the token is dead.
// Verification is two-phase because the user ID must be decoded before the
// caller can look up the current hash: call Verify first, then VerifyVersion
// with the loaded hash.
func (s *ResetTokenSigner) Verify(token string) (int64, string, error) {
	parsed, err := jwt.ParseWithClaims(token, &resetClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(resetTokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return 0, "", ErrInvalidResetToken
	}
	claims, ok := parsed.Claims.(*resetClaims)
	if !ok || !parsed.Valid {
		return 0, "", ErrInvalidResetToken
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, "", ErrInvalidResetToken
	}
	return userID, claims.PasswordVersion, nil
}

// VerifyVersion reports whether a token's embedded password version still
// matches the stored hash.
func VerifyVersion(tokenVersion, currentPasswordHash string) bool {
	return tokenVersion == PasswordVersion(currentPasswordHash)
}
