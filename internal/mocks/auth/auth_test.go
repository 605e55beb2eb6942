package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/intranet-api/internal/data"
	domainauth "github.com/campushub/intranet-api/internal/domain/auth"
	"github.com/campushub/intranet-api/internal/domain/model"
)

func TestMemorySessionStore_RoundTrip(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	sess := domainauth.Session{
		ID:        "s1",
		UserID:    7,
		Email:     "user@example.com",
		Role:      domainauth.RoleStudent,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.Equal(t, ErrNotFound, err)
	assert.Zero(t, store.Len())
}

func TestMemorySessionStore_EmptyID(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	err := store.Save(ctx, domainauth.Session{})
	require.Error(t, err)

	_, err = store.Get(ctx, "")
	assert.Equal(t, ErrNotFound, err)

	assert.NoError(t, store.Delete(ctx, ""))
}

func TestMemoryUserRepo_EmailConflictAndLookup(t *testing.T) {
	repo := NewMemoryUserRepo()
	ctx := context.Background()

	req := &model.CreateUserRequest{
		Email:     "alice@x.com",
		FirstName: "Alice",
		LastName:  "Martin",
		Role:      domainauth.RoleStudent,
	}
	created, err := repo.Create(ctx, req, "hash")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.IsActive)

	_, err = repo.Create(ctx, req, "hash")
	assert.ErrorIs(t, err, data.ErrEmailTaken)

	byEmail, err := repo.GetByEmail(ctx, "ALICE@X.COM")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, data.ErrUserNotFound)
}

func TestMemoryUserRepo_MFASlot(t *testing.T) {
	repo := NewMemoryUserRepo()
	ctx := context.Background()

	u := repo.Seed(model.User{Email: "bob@x.com", Role: domainauth.RoleTeacher, IsActive: true})

	require.NoError(t, repo.SetMFACode(ctx, u.ID, "abc123"))
	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.MFASecret)
	assert.Equal(t, "abc123", *got.MFASecret)
	assert.False(t, got.MFAVerified)

	at := time.Now().UTC()
	require.NoError(t, repo.MarkMFAVerified(ctx, u.ID, at))
	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.MFAVerified)
	require.NotNil(t, got.LastLogin)
	assert.WithinDuration(t, at, *got.LastLogin, time.Second)

	require.NoError(t, repo.ClearMFAVerified(ctx, u.ID))
	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.MFAVerified)
}

func TestMemoryAuthLog_FilterAndFailure(t *testing.T) {
	log := NewMemoryAuthLog()
	ctx := context.Background()

	require.NoError(t, log.Append(ctx, &model.AuthEvent{
		Email:   "alice@x.com",
		Action:  model.AuthActionLoginAttempt,
		Success: false,
	}))
	require.NoError(t, log.Append(ctx, &model.AuthEvent{
		Email:   "alice@x.com",
		Action:  model.AuthActionLoginSuccess,
		Success: true,
	}))

	action := model.AuthActionLoginSuccess
	events, err := log.List(ctx, model.AuthEventsListOptions{Action: &action})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].Success)
	assert.True(t, log.HasAction(model.AuthActionLoginAttempt, false))

	log.Err = assert.AnError
	assert.Error(t, log.Append(ctx, &model.AuthEvent{Email: "x"}))
}
