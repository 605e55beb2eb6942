package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/campushub/intranet-api/config"
	"github.com/campushub/intranet-api/internal/adapters/devmail"
	redisadapter "github.com/campushub/intranet-api/internal/adapters/redis"
	"github.com/campushub/intranet-api/internal/adapters/smtp"
	"github.com/campushub/intranet-api/internal/crypto"
	"github.com/campushub/intranet-api/internal/data"
	"github.com/campushub/intranet-api/internal/ports"
	"github.com/campushub/intranet-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth      *service.AuthService
	Users     *service.UserService
	Courses   *service.CourseService
	Grades    *service.GradeService
	Absences  *service.AbsenceService
	Schedules *service.ScheduleService
	Audit     *service.AuditRecorder
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices builds the full service container from the shared stores.
func NewServices(deps ServiceDeps) (ServiceContainer, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	users := data.NewUserRepo(deps.DB)
	authLogs := data.NewAuthLogRepo(deps.DB)
	courses := data.NewCourseRepo(deps.DB)
	grades := data.NewGradeRepo(deps.DB)
	absences := data.NewAbsenceRepo(deps.DB)
	schedules := data.NewScheduleRepo(deps.DB)
	links := data.NewParentLinkRepo(deps.DB)

	audit := service.NewAuditRecorder(authLogs, logger)

	auth, err := buildAuthService(authBuildDeps{
		Config: cfg,
		Redis:  deps.RedisClient,
		Users:  users,
		Audit:  audit,
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, err
	}

	return ServiceContainer{
		Auth:      auth,
		Users:     service.NewUserService(service.UserServiceOptions{Users: users, Links: links}),
		Courses:   service.NewCourseService(service.CourseServiceOptions{Courses: courses}),
		Grades:    service.NewGradeService(service.GradeServiceOptions{Grades: grades, Courses: courses}),
		Absences:  service.NewAbsenceService(service.AbsenceServiceOptions{Absences: absences}),
		Schedules: service.NewScheduleService(service.ScheduleServiceOptions{Schedules: schedules}),
		Audit:     audit,
	}, nil
}

// authBuildDeps groups inputs for the auth service assembly.
type authBuildDeps struct {
	Config *config.AppConfig
	Redis  redis.UniversalClient
	Users  *data.UserRepo
	Audit  *service.AuditRecorder
	Logger *slog.Logger
}

func buildAuthService(deps authBuildDeps) (*service.AuthService, error) {
	cfg := deps.Config

	signer, err := crypto.NewResetTokenSigner(cfg.Auth.SecretKey, cfg.Auth.ResetTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("build reset token signer: %w", err)
	}

	sessions := redisadapter.NewSessionStoreWithPrefix(deps.Redis, "session:")

	return service.NewAuthService(service.AuthServiceOptions{
		Users:         deps.Users,
		Sessions:      sessions,
		MFA:           service.NewMFAEngine(deps.Users, cfg.Auth.MFAWindow),
		Audit:         deps.Audit,
		Mailer:        buildMailer(cfg, deps.Logger),
		Reset:         signer,
		Logger:        deps.Logger,
		SessionTTL:    cfg.Auth.SessionTTL,
		RememberTTL:   cfg.Auth.RememberTTL,
		PendingTTL:    cfg.Auth.PendingTTL,
		ResetLinkBase: resetLinkBase(cfg.HTTP.BaseURL),
	}), nil
}

// buildMailer selects SMTP delivery or the dev log-only mailer.
//
//nolint:ireturn // callers depend on the Mailer port, not a concrete sender.
func buildMailer(cfg *config.AppConfig, logger *slog.Logger) ports.Mailer {
	if !cfg.Mail.Enabled || (cfg.IsDev && cfg.Mail.Host == "localhost") {
		logger.Info("mail delivery disabled, logging messages instead")
		return devmail.NewMailer(logger)
	}
	return smtp.NewMailer(cfg.Mail)
}

func resetLinkBase(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/auth/reset-password"
}
