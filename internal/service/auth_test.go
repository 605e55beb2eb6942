package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/intranet-api/internal/crypto"
	"github.com/campushub/intranet-api/internal/data"
	domainauth "github.com/campushub/intranet-api/internal/domain/auth"
	"github.com/campushub/intranet-api/internal/domain/model"
	mockauth "github.com/campushub/intranet-api/internal/mocks/auth"
)

const mfaWindow = 120 * time.Second

// fakeClock is a mutable clock for driving expiry windows in tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type authFixture struct {
	svc      *AuthService
	users    *mockauth.MemoryUserRepo
	sessions *mockauth.MemorySessionStore
	mailer   *mockauth.RecordingMailer
	log      *mockauth.MemoryAuthLog
	clock    *fakeClock
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := mockauth.NewMemoryUserRepo()
	sessions := mockauth.NewMemorySessionStore()
	mailer := &mockauth.RecordingMailer{}
	authLog := mockauth.NewMemoryAuthLog()
	clock := &fakeClock{t: time.Now().UTC()}

	signer, err := crypto.NewResetTokenSigner("test-secret", time.Hour)
	require.NoError(t, err)

	svc := NewAuthService(AuthServiceOptions{
		Users:         users,
		Sessions:      sessions,
		MFA:           NewMFAEngine(users, mfaWindow),
		Audit:         NewAuditRecorder(authLog, nil),
		Mailer:        mailer,
		Reset:         signer,
		SessionTTL:    2 * time.Hour,
		RememberTTL:   30 * 24 * time.Hour,
		PendingTTL:    15 * time.Minute,
		ResetLinkBase: "http://localhost:8080/auth/reset-password",
		Now:           clock.Now,
	})

	return &authFixture{
		svc:      svc,
		users:    users,
		sessions: sessions,
		mailer:   mailer,
		log:      authLog,
		clock:    clock,
	}
}

func (f *authFixture) register(t *testing.T, email, password string, role domainauth.Role) *model.User {
	t.Helper()
	user, err := f.svc.Register(context.Background(), &model.CreateUserRequest{
		Email:     email,
		Password:  password,
		FirstName: "Alice",
		LastName:  "Martin",
		Role:      role,
	}, RequestMeta{})
	require.NoError(t, err)
	return user
}

// issuedCode digs the verification code out of the captured email body.
func issuedCode(t *testing.T, m *mockauth.RecordingMailer) string {
	t.Helper()
	msg, ok := m.Last()
	require.True(t, ok, "no mail captured")
	_, after, found := strings.Cut(msg.Body, "code is: ")
	require.True(t, found, "mail body has no code: %q", msg.Body)
	code, _, _ := strings.Cut(after, "\n")
	return strings.TrimSpace(code)
}

func TestAuthService_FullLoginFlow(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered := f.register(t, "alice@x.com", "StrongPass1!", domainauth.RoleStudent)
	assert.True(t, f.log.HasAction(model.AuthActionRegister, true))

	pending, err := f.svc.Login(ctx, "alice@x.com", "StrongPass1!", RequestMeta{IPAddress: "10.0.0.1"})
	require.NoError(t, err)

	// Password check never authenticates directly.
	assert.True(t, pending.IsPending())
	assert.False(t, pending.IsAuthenticated())
	assert.Equal(t, registered.ID, pending.PendingUserID)
	assert.True(t, f.log.HasAction(model.AuthActionMFACodeSent, true))

	code := issuedCode(t, f.mailer)
	assert.Len(t, code, 12)

	f.clock.Advance(60 * time.Second)
	authenticated, err := f.svc.VerifyMFA(ctx, pending.ID, code, false, RequestMeta{})
	require.NoError(t, err)
	assert.True(t, authenticated.IsAuthenticated())
	assert.Equal(t, domainauth.RoleStudent, authenticated.Role)
	assert.NotEqual(t, pending.ID, authenticated.ID, "promotion rotates the session ID")
	assert.True(t, f.log.HasAction(model.AuthActionLoginSuccess, true))

	user, err := f.users.GetByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.True(t, user.MFAVerified)
	require.NotNil(t, user.LastLogin)

	// The pending session is gone; replaying the code finds nothing.
	_, err = f.svc.VerifyMFA(ctx, pending.ID, code, false, RequestMeta{})
	assert.ErrorIs(t, err, ErrNoPendingSession)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.register(t, "alice@x.com", "StrongPass1!", domainauth.RoleStudent)

	_, err := f.svc.Login(ctx, "alice@x.com", "wrong", RequestMeta{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.True(t, f.log.HasAction(model.AuthActionLoginAttempt, false))
}

func TestAuthService_Login_IndistinguishableFailures(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user := f.register(t, "bob@x.com", "StrongPass1!", domainauth.RoleTeacher)
	inactive := false
	_, err := f.users.Update(ctx, user.ID, model.UpdateUserRequest{IsActive: &inactive})
	require.NoError(t, err)

	// Unknown email, disabled account, wrong password: same sentinel.
	_, err = f.svc.Login(ctx, "nobody@x.com", "StrongPass1!", RequestMeta{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.svc.Login(ctx, "bob@x.com", "StrongPass1!", RequestMeta{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// The audit detail distinguishes the causes.
	events, err := f.log.List(ctx, model.AuthEventsListOptions{})
	require.NoError(t, err)
	var details []string
	for _, e := range events {
		if e.Action == model.AuthActionLoginAttempt && e.Details != nil {
			details = append(details, *e.Details)
		}
	}
	assert.Contains(t, details, "unknown email")
	assert.Contains(t, details, "account disabled")
}

func TestAuthService_VerifyMFA_WrongCodeKeepsPending(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.register(t, "alice@x.com", "StrongPass1!", domainauth.RoleStudent)
	pending, err := f.svc.Login(ctx, "alice@x.com", "StrongPass1!", RequestMeta{})
	require.NoError(t, err)

	_, err = f.svc.VerifyMFA(ctx, pending.ID, "000000000000", false, RequestMeta{})
	assert.ErrorIs(t, err, ErrInvalidCode)
	assert.True(t, f.log.HasAction(model.AuthActionMFAFailed, false))

	// Pending session survives a mismatch; the real code still works.
	code := issuedCode(t, f.mailer)
	authenticated, err := f.svc.VerifyMFA(ctx, pending.ID, code, false, RequestMeta{})
	require.NoError(t, err)
	assert.True(t, authenticated.IsAuthenticated())
}

func TestAuthService_VerifyMFA_ExpiredWindowClearsPending(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.register(t, "alice@x.com", "StrongPass1!", domainauth.RoleStudent)
	pending, err := f.svc.Login(ctx, "alice@x.com", "StrongPass1!", RequestMeta{})
	require.NoError(t, err)
	code := issuedCode(t, f.mailer)

	// One second past the window, even the correct code is rejected.
	f.clock.Advance(mfaWindow + time.Second)
	_, err = f.svc.VerifyMFA(ctx, pending.ID, code, false, RequestMeta{})
	assert.ErrorIs(t, err, ErrMFAExpired)

	// Pending session was cleared; the user must restart from login.
	_, err = f.svc.VerifyMFA(ctx, pending.ID, code, false, RequestMeta{})
	assert.ErrorIs(t, err, ErrNoPendingSession)
}

func TestAuthService_VerifyMFA_NoPendingSession(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.VerifyMFA(context.Background(), "never-issued", "whatever", false, RequestMeta{})
	assert.ErrorIs(t, err, ErrNoPendingSession)
}

func TestAuthService_NewLoginInvalidatesPreviousCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.register(t, "alice@x.com", "StrongPass1!", domainauth.RoleStudent)

	first, err := f.svc.Login(ctx, "alice@x.com", "StrongPass1!", RequestMeta{})
	require.NoError(t, err)
	firstCode := issuedCode(t, f.mailer)

	_, err = f.svc.Login(ctx, "alice@x.com", "StrongPass1!", RequestMeta{})
	require.NoError(t, err)
	secondCode := issuedCode(t, f.mailer)
	require.NotEqual(t, firstCode, secondCode)

	// The single slot holds only the latest code.
	_, err = f.svc.VerifyMFA(ctx, first.ID, firstCode, false, RequestMeta{})
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestAuthService_RememberMeExtendsSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.register(t, "alice@x.com", "StrongPass1!", domainauth.RoleStudent)
	pending, err := f.svc.Login(ctx, "alice@x.com", "StrongPass1!", RequestMeta{})
	require.NoError(t, err)
	code := issuedCode(t, f.mailer)

	authenticated, err := f.svc.VerifyMFA(ctx, pending.ID, code, true, RequestMeta{})
	require.NoError(t, err)
	assert.WithinDuration(t, f.clock.Now().Add(30*24*time.Hour), authenticated.ExpiresAt, time.Second)
}

func TestAuthService_DeliveryFailureIsNonFatal(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.register(t, "alice@x.com", "StrongPass1!", domainauth.RoleStudent)
	f.mailer.Err = assert.AnError

	// Login still succeeds and the code stays valid even though the mail
	// never went out.
	pending, err := f.svc.Login(ctx, "alice@x.com", "StrongPass1!", RequestMeta{})
	require.NoError(t, err)
	assert.True(t, pending.IsPending())
	assert.True(t, f.log.HasAction(model.AuthActionMFADeliveryFailed, false))

	user, err := f.users.GetByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.NotNil(t, user.MFASecret)

	authenticated, err := f.svc.VerifyMFA(ctx, pending.ID, *user.MFASecret, false, RequestMeta{})
	require.NoError(t, err)
	assert.True(t, authenticated.IsAuthenticated())
}

func TestAuthService_AuditFailureDoesNotBlockLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.register(t, "alice@x.com", "StrongPass1!", domainauth.RoleStudent)
	f.log.Err = assert.AnError

	pending, err := f.svc.Login(ctx, "alice@x.com", "StrongPass1!", RequestMeta{})
	require.NoError(t, err)
	assert.True(t, pending.IsPending())
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user := f.register(t, "alice@x.com", "StrongPass1!", domainauth.RoleStudent)
	pending, err := f.svc.Login(ctx, "alice@x.com", "StrongPass1!", RequestMeta{})
	require.NoError(t, err)
	code := issuedCode(t, f.mailer)
	authenticated, err := f.svc.VerifyMFA(ctx, pending.ID, code, false, RequestMeta{})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, authenticated.ID, RequestMeta{}))
	assert.True(t, f.log.HasAction(model.AuthActionLogout, true))

	// Logout clears the verified flag, forcing fresh MFA next login.
	got, err := f.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, got.MFAVerified)

	// Idempotent: a second call is a no-op, not an error.
	require.NoError(t, f.svc.Logout(ctx, authenticated.ID, RequestMeta{}))
	require.NoError(t, f.svc.Logout(ctx, "", RequestMeta{}))
}

func TestAuthService_GetSession_Expired(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.sessions.Save(ctx, domainauth.Session{
		ID:        "old",
		UserID:    1,
		ExpiresAt: f.clock.Now().Add(time.Minute),
	}))

	f.clock.Advance(2 * time.Minute)
	_, err := f.svc.GetSession(ctx, "old")
	assert.ErrorIs(t, err, ErrSessionExpired)

	// Cleaned up on detection.
	assert.Zero(t, f.sessions.Len())
}

func TestAuthService_InvalidateStuckSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	// Authenticated marker without completed MFA.
	require.NoError(t, f.sessions.Save(ctx, domainauth.Session{
		ID:        "stuck",
		UserID:    42,
		Email:     "stuck@x.com",
		ExpiresAt: f.clock.Now().Add(time.Hour),
	}))

	require.NoError(t, f.svc.InvalidateSession(ctx, "stuck", RequestMeta{}))
	assert.Zero(t, f.sessions.Len())
	assert.True(t, f.log.HasAction(model.AuthActionSessionInvalidated, true))
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)

	f.register(t, "alice@x.com", "StrongPass1!", domainauth.RoleStudent)
	_, err := f.svc.Register(context.Background(), &model.CreateUserRequest{
		Email:     "alice@x.com",
		Password:  "StrongPass1!",
		FirstName: "Other",
		LastName:  "Person",
		Role:      domainauth.RoleParent,
	}, RequestMeta{})
	assert.ErrorIs(t, err, data.ErrEmailTaken)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Register(context.Background(), &model.CreateUserRequest{
		Email:     "weak@x.com",
		Password:  "weakpass",
		FirstName: "Weak",
		LastName:  "Pass",
		Role:      domainauth.RoleStudent,
	}, RequestMeta{})
	require.Error(t, err)
}

func TestAuthService_RequestReset_UnknownEmailIsSilent(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.RequestReset(context.Background(), "nonexistent@x.com", RequestMeta{})
	require.NoError(t, err)

	// No token generated, no mail sent.
	_, sent := f.mailer.Last()
	assert.False(t, sent)
}

func TestAuthService_ResetFlow(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.register(t, "alice@x.com", "StrongPass1!", domainauth.RoleStudent)

	require.NoError(t, f.svc.RequestReset(ctx, "alice@x.com", RequestMeta{}))
	assert.True(t, f.log.HasAction(model.AuthActionPasswordResetReq, true))

	msg, ok := f.mailer.Last()
	require.True(t, ok)
	idx := strings.LastIndex(msg.Body, "/auth/reset-password/")
	require.GreaterOrEqual(t, idx, 0)
	token, _, _ := strings.Cut(msg.Body[idx+len("/auth/reset-password/"):], "\n")
	token = strings.TrimSpace(token)
	require.NotEmpty(t, token)

	require.NoError(t, f.svc.RedeemReset(ctx, token, "NewStrongPass2!", RequestMeta{}))
	assert.True(t, f.log.HasAction(model.AuthActionPasswordReset, true))

	// Old password is dead, new one works.
	_, err := f.svc.Login(ctx, "alice@x.com", "StrongPass1!", RequestMeta{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.svc.Login(ctx, "alice@x.com", "NewStrongPass2!", RequestMeta{})
	require.NoError(t, err)

	// The redeemed token is pinned to the old hash and cannot be replayed.
	err = f.svc.RedeemReset(ctx, token, "AnotherPass3!", RequestMeta{})
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestAuthService_RedeemReset_GarbageToken(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.RedeemReset(context.Background(), "not-a-token", "NewStrongPass2!", RequestMeta{})
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}
