// Package crypto holds the credential primitives: password hashing,
// verification-code generation, and signed password-reset tokens.
package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// mfaCodeBytes is the random length of an emailed verification code;
// hex encoding doubles it on the wire (12 characters).
const mfaCodeBytes = 6

// HashPassword derives a salted bcrypt hash from the plaintext. The
// plaintext is never stored.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares the plaintext against a stored bcrypt hash in
// constant time. A missing or malformed hash is a mismatch, never an error
// surfaced to the login flow.
func CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewMFACode generates a cryptographically random hex-encoded verification
// code. Callers must treat the value as a secret: deliver it, never log it.
func NewMFACode() (string, error) {
	buf := make([]byte, mfaCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate mfa code: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// PasswordVersion derives a short, non-reversible digest of a password hash.
// Reset tokens embed it so that changing the password invalidates any token
// minted before the change.
func PasswordVersion(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return hex.EncodeToString(sum[:8])
}
