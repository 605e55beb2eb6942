package httpx

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/campushub/intranet-api/internal/domain/auth"
	"github.com/campushub/intranet-api/internal/domain/model"
)

func TestRequireAuth_NoCookie(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/api/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authentication_required", decodeBody(t, rec)["error"])
}

func TestRequireAuth_PendingSessionGetsMFARequired(t *testing.T) {
	f := newRouterFixture(t)
	f.register(t, "alice@x.com", "StrongPass1!", domainauth.RoleStudent)

	rec := f.do(http.MethodPost, "/auth/login", map[string]string{
		"email":    "alice@x.com",
		"password": "StrongPass1!",
	}, nil)
	pendingCookie := sessionCookie(t, rec)

	rec = f.do(http.MethodGet, "/api/me", nil, pendingCookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "mfa_required", decodeBody(t, rec)["error"])
}

func TestRequireAuth_StuckSessionIsDestroyed(t *testing.T) {
	f := newRouterFixture(t)
	user := f.register(t, "alice@x.com", "StrongPass1!", domainauth.RoleStudent)

	// A session carrying a user without completed MFA must never be honored.
	stuck := domainauth.Session{
		ID:        "stuck-session",
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		ExpiresAt: f.clock.Now().Add(time.Hour),
	}
	require.True(t, stuck.IsStuck())
	require.NoError(t, f.sessions.Save(context.Background(), stuck))

	rec := f.do(http.MethodGet, "/api/me", nil, &http.Cookie{Name: "session_id", Value: stuck.ID})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authentication_required", decodeBody(t, rec)["error"])

	// The broken session is gone and the cleanup is audited.
	_, err := f.sessions.Get(context.Background(), stuck.ID)
	assert.Error(t, err)
	assert.True(t, f.log.HasAction(model.AuthActionSessionInvalidated, true))
}

func TestRequireRole_WrongRole(t *testing.T) {
	f := newRouterFixture(t)
	f.register(t, "alice@x.com", "StrongPass1!", domainauth.RoleStudent)
	cookie := f.signIn(t, "alice@x.com", "StrongPass1!")

	// Students cannot touch user administration.
	rec := f.do(http.MethodGet, "/api/users", nil, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "insufficient_permissions", decodeBody(t, rec)["error"])

	// Nor record grades; that route is teacher-only.
	rec = f.do(http.MethodPost, "/api/grades", map[string]any{
		"student_id": 1, "course_id": 1, "value": 15, "type": "test",
	}, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_AdminReachesUserAdmin(t *testing.T) {
	f := newRouterFixture(t)
	f.register(t, "root@x.com", "StrongPass1!", domainauth.RoleAdmin)
	cookie := f.signIn(t, "root@x.com", "StrongPass1!")

	rec := f.do(http.MethodGet, "/api/users", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRequirePermission_AuditLogIsAdminOnly(t *testing.T) {
	f := newRouterFixture(t)
	f.register(t, "prof@x.com", "StrongPass1!", domainauth.RoleTeacher)
	cookie := f.signIn(t, "prof@x.com", "StrongPass1!")

	rec := f.do(http.MethodGet, "/api/auth-logs", nil, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	f.register(t, "root@x.com", "StrongPass1!", domainauth.RoleAdmin)
	adminCookie := f.signIn(t, "root@x.com", "StrongPass1!")

	rec = f.do(http.MethodGet, "/api/auth-logs", nil, adminCookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["events"])
}

func TestHealthz_NoAuthNeeded(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCompression_GzipsJSONWhenAccepted(t *testing.T) {
	f := newRouterFixture(t)

	req, rec := gzipRequest(http.MethodGet, "/healthz")
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Contains(t, rec.Header().Values("Vary"), "Accept-Encoding")
}
