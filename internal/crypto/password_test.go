package crypto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret-password")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "secret-password")

	assert.True(t, CheckPassword(hash, "secret-password"))
	assert.False(t, CheckPassword(hash, "anything else"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("", "secret"))
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "secret"))
}

func TestNewMFACode(t *testing.T) {
	code, err := NewMFACode()
	require.NoError(t, err)
	assert.Len(t, code, 12)
	assert.Regexp(t, "^[0-9a-f]+$", code)

	other, err := NewMFACode()
	require.NoError(t, err)
	assert.NotEqual(t, code, other)
}

func TestResetTokenRoundTrip(t *testing.T) {
	signer, err := NewResetTokenSigner("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := signer.Sign(42, "stored-hash")
	require.NoError(t, err)

	userID, version, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.True(t, VerifyVersion(version, "stored-hash"))
	assert.False(t, VerifyVersion(version, "rotated-hash"))
}

func TestResetTokenRejectsTampering(t *testing.T) {
	signer, err := NewResetTokenSigner("test-secret", time.Hour)
	require.NoError(t, err)
	other, err := NewResetTokenSigner("other-secret", time.Hour)
	require.NoError(t, err)

	token, err := signer.Sign(42, "stored-hash")
	require.NoError(t, err)

	_, _, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	_, _, err = signer.Verify(token + "x")
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	_, _, err = signer.Verify("")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestResetTokenExpiry(t *testing.T) {
	signer, err := NewResetTokenSigner("test-secret", -time.Minute)
	assert.Error(t, err)
	assert.Nil(t, signer)

	signer, err = NewResetTokenSigner("test-secret", time.Hour)
	require.NoError(t, err)
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	signer.now = func() time.Time { return clock }

	token, err := signer.Sign(7, "hash")
	require.NoError(t, err)

	// Inside the window the token verifies.
	clock = clock.Add(59 * time.Minute)
	userID, _, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)

	// One tick past the window it is dead.
	clock = clock.Add(time.Minute + time.Second)
	_, _, err = signer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}
