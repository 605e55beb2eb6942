package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/campushub/intranet-api/internal/crypto"
	domainauth "github.com/campushub/intranet-api/internal/domain/auth"
	"github.com/campushub/intranet-api/internal/domain/model"
	"github.com/campushub/intranet-api/internal/mocks"
	mockauth "github.com/campushub/intranet-api/internal/mocks/auth"
	"github.com/campushub/intranet-api/internal/service"
)

const testMFAWindow = 120 * time.Second

// testClock is a mutable clock for driving expiry windows in tests.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// routerFixture wires the full router over in-memory auth doubles and
// gomock repositories for the CRUD surface.
type routerFixture struct {
	handler  http.Handler
	users    *mockauth.MemoryUserRepo
	sessions *mockauth.MemorySessionStore
	mailer   *mockauth.RecordingMailer
	log      *mockauth.MemoryAuthLog
	clock    *testClock
	auth     *service.AuthService

	courses   *mocks.MockCourseRepository
	grades    *mocks.MockGradeRepository
	absences  *mocks.MockAbsenceRepository
	schedules *mocks.MockScheduleRepository
	links     *mocks.MockParentLinkRepository
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	users := mockauth.NewMemoryUserRepo()
	sessions := mockauth.NewMemorySessionStore()
	mailer := &mockauth.RecordingMailer{}
	authLog := mockauth.NewMemoryAuthLog()
	clock := &testClock{t: time.Now().UTC()}

	signer, err := crypto.NewResetTokenSigner("test-secret", time.Hour)
	require.NoError(t, err)

	audit := service.NewAuditRecorder(authLog, nil)
	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Users:         users,
		Sessions:      sessions,
		MFA:           service.NewMFAEngine(users, testMFAWindow),
		Audit:         audit,
		Mailer:        mailer,
		Reset:         signer,
		SessionTTL:    2 * time.Hour,
		RememberTTL:   30 * 24 * time.Hour,
		PendingTTL:    15 * time.Minute,
		ResetLinkBase: "http://localhost:8080/auth/reset-password",
		Now:           clock.Now,
	})

	courses := mocks.NewMockCourseRepository(ctrl)
	grades := mocks.NewMockGradeRepository(ctrl)
	absences := mocks.NewMockAbsenceRepository(ctrl)
	schedules := mocks.NewMockScheduleRepository(ctrl)
	links := mocks.NewMockParentLinkRepository(ctrl)

	handler := NewRouter(RouterServices{
		Auth:      authSvc,
		Users:     service.NewUserService(service.UserServiceOptions{Users: users, Links: links}),
		Courses:   service.NewCourseService(service.CourseServiceOptions{Courses: courses}),
		Grades:    service.NewGradeService(service.GradeServiceOptions{Grades: grades, Courses: courses}),
		Absences:  service.NewAbsenceService(service.AbsenceServiceOptions{Absences: absences}),
		Schedules: service.NewScheduleService(service.ScheduleServiceOptions{Schedules: schedules}),
		Audit:     audit,
	})

	return &routerFixture{
		handler:   handler,
		users:     users,
		sessions:  sessions,
		mailer:    mailer,
		log:       authLog,
		clock:     clock,
		auth:      authSvc,
		courses:   courses,
		grades:    grades,
		absences:  absences,
		schedules: schedules,
		links:     links,
	}
}

// do performs one request through the router and returns the recorder.
func (f *routerFixture) do(method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

// register creates an account directly through the service.
func (f *routerFixture) register(t *testing.T, email, password string, role domainauth.Role) *model.User {
	t.Helper()
	user, err := f.auth.Register(context.Background(), &model.CreateUserRequest{
		Email:     email,
		Password:  password,
		FirstName: "Alice",
		LastName:  "Martin",
		Role:      role,
	}, service.RequestMeta{})
	require.NoError(t, err)
	return user
}

// signIn drives the full two-step login over HTTP and returns the
// authenticated session cookie.
func (f *routerFixture) signIn(t *testing.T, email, password string) *http.Cookie {
	t.Helper()

	rec := f.do(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	pendingCookie := sessionCookie(t, rec)

	rec = f.do(http.MethodPost, "/auth/mfa-verify", map[string]any{
		"code": f.issuedCode(t),
	}, pendingCookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return sessionCookie(t, rec)
}

// issuedCode digs the verification code out of the captured email body.
func (f *routerFixture) issuedCode(t *testing.T) string {
	t.Helper()
	msg, ok := f.mailer.Last()
	require.True(t, ok, "no mail captured")
	_, after, found := strings.Cut(msg.Body, "code is: ")
	require.True(t, found, "mail body has no code: %q", msg.Body)
	code, _, _ := strings.Cut(after, "\n")
	return strings.TrimSpace(code)
}

// sessionCookie extracts the session_id cookie from the response.
func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session_id" && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session_id cookie in response")
	return nil
}

// itoa formats an int64 ID for URL building.
func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// gzipRequest builds a request advertising gzip support plus a recorder.
func gzipRequest(method, path string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Accept-Encoding", "gzip")
	return req, httptest.NewRecorder()
}

// decodeBody unmarshals a JSON response body into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
