package httpx

import (
	"context"
	"log/slog"
	"net/http"

	domainauth "github.com/campushub/intranet-api/internal/domain/auth"
	"github.com/campushub/intranet-api/internal/observability/statsd"
	"github.com/campushub/intranet-api/internal/service"
)

// Seeder loads demo data in development mode.
type Seeder interface {
	Seed(ctx context.Context) error
}

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth      *service.AuthService
	Users     *service.UserService
	Courses   *service.CourseService
	Grades    *service.GradeService
	Absences  *service.AbsenceService
	Schedules *service.ScheduleService
	Audit     *service.AuditRecorder

	// Optional: demo data loader, exposed as POST /api/dev/seed in dev mode.
	DevSeeder Seeder

	// Optional: StatsD sink for request metrics.
	Metrics statsd.Sink

	CookieDomain string
	CookieSecure bool
	IsDev        bool
	Logger       *slog.Logger
}

func (s RouterServices) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		CookieDomain: services.CookieDomain,
		CookieSecure: services.CookieSecure,
		Logger:       services.Logger,
	}
	userHandlers := &UserHandlers{Svc: services.Users, Auth: services.Auth}
	courseHandlers := &CourseHandlers{Svc: services.Courses}
	gradeHandlers := &GradeHandlers{Svc: services.Grades, Users: services.Users}
	absenceHandlers := &AbsenceHandlers{Svc: services.Absences, Users: services.Users}
	scheduleHandlers := &ScheduleHandlers{Svc: services.Schedules}
	authLogHandlers := &AuthLogHandlers{Svc: services.Audit}

	registerAuthRoutes(mux, authHandlers)
	registerUserRoutes(mux, userHandlers, services.Auth)
	registerCourseRoutes(mux, courseHandlers, services.Auth)
	registerGradeRoutes(mux, gradeHandlers, services.Auth)
	registerAbsenceRoutes(mux, absenceHandlers, services.Auth)
	registerScheduleRoutes(mux, scheduleHandlers, services.Auth)
	registerAuthLogRoutes(mux, authLogHandlers, services.Auth)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	if services.IsDev && services.DevSeeder != nil {
		mux.Handle("POST /api/dev/seed", devSeedHandler(services.DevSeeder))
	}

	logger := services.logger()
	handler := Compression()(mux)
	handler = Metrics(services.Metrics)(handler)
	handler = Logging(logger)(handler)
	return Recover(logger)(handler)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/mfa-verify", h.VerifyMFA)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	// Plain links hit logout with GET; accept it for convenience.
	mux.HandleFunc("GET /auth/logout", h.Logout)
	mux.HandleFunc("POST /auth/register", h.Register)
	mux.HandleFunc("POST /auth/reset-request", h.RequestReset)
	mux.HandleFunc("POST /auth/reset-password/{token}", h.ResetPassword)
	mux.HandleFunc("GET /auth/status", h.Status)
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandlers, auth *service.AuthService) {
	admin := RequireRole(auth, domainauth.RoleAdmin)
	authed := RequireAuth(auth)
	parent := RequireRole(auth, domainauth.RoleParent)

	mux.Handle("POST /api/users", admin(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/users", admin(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/users/{id}", authed(http.HandlerFunc(h.GetByID)))
	mux.Handle("PUT /api/users/{id}", admin(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/users/{id}", admin(http.HandlerFunc(h.Delete)))

	mux.Handle("GET /api/me", authed(http.HandlerFunc(h.Me)))

	mux.Handle("POST /api/users/{id}/children", admin(http.HandlerFunc(h.LinkChild)))
	mux.Handle("GET /api/users/{id}/children", authed(http.HandlerFunc(h.ListChildren)))
	mux.Handle("GET /api/children", parent(http.HandlerFunc(h.MyChildren)))
}

func registerCourseRoutes(mux *http.ServeMux, h *CourseHandlers, auth *service.AuthService) {
	admin := RequireRole(auth, domainauth.RoleAdmin)
	authed := RequireAuth(auth)
	teacher := RequireRole(auth, domainauth.RoleTeacher)

	mux.Handle("POST /api/courses", admin(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/courses", authed(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/courses/mine", teacher(http.HandlerFunc(h.ListMine)))
	mux.Handle("GET /api/courses/{id}", authed(http.HandlerFunc(h.GetByID)))
	mux.Handle("PUT /api/courses/{id}", admin(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/courses/{id}", admin(http.HandlerFunc(h.Delete)))
}

func registerGradeRoutes(mux *http.ServeMux, h *GradeHandlers, auth *service.AuthService) {
	teacher := RequireRole(auth, domainauth.RoleTeacher)
	staff := RequireRole(auth, domainauth.RoleTeacher, domainauth.RoleAdmin)
	authed := RequireAuth(auth)

	mux.Handle("POST /api/grades", teacher(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/students/{id}/grades", authed(http.HandlerFunc(h.ListByStudent)))
	mux.Handle("GET /api/courses/{id}/grades", staff(http.HandlerFunc(h.ListByCourse)))
}

func registerAbsenceRoutes(mux *http.ServeMux, h *AbsenceHandlers, auth *service.AuthService) {
	teacher := RequireRole(auth, domainauth.RoleTeacher)
	authed := RequireAuth(auth)

	mux.Handle("POST /api/absences", teacher(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/students/{id}/absences", authed(http.HandlerFunc(h.ListByStudent)))
}

func registerScheduleRoutes(mux *http.ServeMux, h *ScheduleHandlers, auth *service.AuthService) {
	admin := RequireRole(auth, domainauth.RoleAdmin)
	authed := RequireAuth(auth)

	mux.Handle("POST /api/schedules", admin(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/schedules", authed(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/courses/{id}/schedule", authed(http.HandlerFunc(h.ListByCourse)))
	mux.Handle("DELETE /api/schedules/{id}", admin(http.HandlerFunc(h.Delete)))
}

func registerAuthLogRoutes(mux *http.ServeMux, h *AuthLogHandlers, auth *service.AuthService) {
	viewAudit := RequirePermission(auth, domainauth.PermViewAuditLog)
	mux.Handle("GET /api/auth-logs", viewAudit(http.HandlerFunc(h.List)))
}

// devSeedHandler loads demo data. Registered only in dev mode.
func devSeedHandler(seeder Seeder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := seeder.Seed(r.Context()); err != nil {
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "seed_failed", Err: err})
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "seeded"})
	})
}
