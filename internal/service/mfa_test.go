package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/campushub/intranet-api/internal/domain/auth"
	"github.com/campushub/intranet-api/internal/domain/model"
	mockauth "github.com/campushub/intranet-api/internal/mocks/auth"
)

func TestMFAEngine_IssueCodeOverwritesSlot(t *testing.T) {
	users := mockauth.NewMemoryUserRepo()
	engine := NewMFAEngine(users, mfaWindow)
	ctx := context.Background()

	u := users.Seed(model.User{Email: "a@x.com", Role: domainauth.RoleStudent, IsActive: true})

	first, err := engine.IssueCode(ctx, u.ID)
	require.NoError(t, err)
	second, err := engine.IssueCode(ctx, u.ID)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.MFASecret)
	assert.Equal(t, second, *got.MFASecret, "slot holds only the latest code")
}

func TestMFAEngine_VerifyCode(t *testing.T) {
	now := time.Now().UTC()
	code := "deadbeef0123"

	tests := []struct {
		name      string
		secret    *string
		submitted string
		issuedAt  time.Time
		wantErr   error
	}{
		{"match inside window", &code, code, now.Add(-60 * time.Second), nil},
		{"match at window boundary", &code, code, now.Add(-mfaWindow), nil},
		{"past window", &code, code, now.Add(-mfaWindow - time.Second), ErrMFAExpired},
		{"wrong code", &code, "000000000000", now.Add(-time.Second), ErrInvalidCode},
		{"no code issued", nil, code, now.Add(-time.Second), ErrInvalidCode},
		{"expiry beats correctness check", &code, "000000000000", now.Add(-time.Hour), ErrMFAExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := mockauth.NewMemoryUserRepo()
			engine := NewMFAEngine(users, mfaWindow)
			u := users.Seed(model.User{Email: "a@x.com", Role: domainauth.RoleStudent, IsActive: true, MFASecret: tt.secret})

			err := engine.VerifyCode(context.Background(), u, tt.submitted, tt.issuedAt, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			got, getErr := users.GetByID(context.Background(), u.ID)
			require.NoError(t, getErr)
			assert.True(t, got.MFAVerified)
			require.NotNil(t, got.LastLogin)
		})
	}
}
