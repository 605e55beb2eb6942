// Package devseed populates a development database with demo accounts,
// courses, schedules, grades, and absences. Seeding is idempotent: entities
// that already exist are skipped, so running it repeatedly is safe.
package devseed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/campushub/intranet-api/internal/data"
	domainauth "github.com/campushub/intranet-api/internal/domain/auth"
	"github.com/campushub/intranet-api/internal/domain/model"
	"github.com/campushub/intranet-api/internal/service"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	Auth      *service.AuthService
	Users     *service.UserService
	Courses   *service.CourseService
	Grades    *service.GradeService
	Absences  *service.AbsenceService
	Schedules *service.ScheduleService
}

// Seeder creates the demo dataset. It satisfies the dev-seed route's
// Seeder interface and can also run once at startup.
type Seeder struct {
	svcs   Services
	logger *slog.Logger
}

// New constructs a Seeder. A nil logger falls back to slog.Default.
func New(svcs Services, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{svcs: svcs, logger: logger}
}

var seedMeta = service.RequestMeta{IPAddress: "127.0.0.1", UserAgent: "devseed"}

type accountSeed struct {
	email     string
	password  string
	firstName string
	lastName  string
	role      domainauth.Role
}

type courseSeed struct {
	name         string
	code         string
	credits      int
	classGroup   string
	teacherEmail string
}

var classGroups = []string{"6A", "6B"}

func accountSeeds() []accountSeed {
	seeds := []accountSeed{
		{"admin@school.test", "Admin123!", "Catherine", "Spookie", domainauth.RoleAdmin},
		{"teacher1@school.test", "Teacher123!", "Thomas", "Lecerier", domainauth.RoleTeacher},
		{"teacher2@school.test", "Teacher123!", "Marie", "Dubois", domainauth.RoleTeacher},
		{"teacher3@school.test", "Teacher123!", "Paul", "Martin", domainauth.RoleTeacher},
	}
	for i := 1; i <= 8; i++ {
		seeds = append(seeds, accountSeed{
			email:     fmt.Sprintf("student%d@school.test", i),
			password:  "Student123!",
			firstName: fmt.Sprintf("Student%d", i),
			lastName:  "Demo",
			role:      domainauth.RoleStudent,
		})
	}
	for i := 1; i <= 4; i++ {
		seeds = append(seeds, accountSeed{
			email:     fmt.Sprintf("parent%d@school.test", i),
			password:  "Parent123!",
			firstName: fmt.Sprintf("Parent%d", i),
			lastName:  "Demo",
			role:      domainauth.RoleParent,
		})
	}
	return seeds
}

func courseSeeds() []courseSeed {
	return []courseSeed{
		{"French", "COUR001", 3, "6A", "teacher1@school.test"},
		{"Mathematics", "COUR002", 4, "6A", "teacher2@school.test"},
		{"History-Geography", "COUR003", 3, "6A", "teacher3@school.test"},
		{"Biology", "COUR004", 2, "6B", "teacher1@school.test"},
		{"Physics-Chemistry", "COUR005", 4, "6B", "teacher2@school.test"},
		{"Physical Education", "COUR006", 1, "6B", "teacher3@school.test"},
	}
}

// Seed creates all demo data. It returns an error only when seeding cannot
// proceed at all; individual entity failures are logged and counted.
func (s *Seeder) Seed(ctx context.Context) error {
	users, failures, err := s.seedUsers(ctx)
	if err != nil {
		return err
	}
	failures += s.seedParentLinks(ctx, users)

	courses, created, courseFailures, err := s.seedCourses(ctx, users)
	if err != nil {
		return err
	}
	failures += courseFailures
	failures += s.seedSchedules(ctx, courses, created)
	failures += s.seedGrades(ctx, users, courses, created)
	failures += s.seedAbsences(ctx, users, created)

	if failures > 0 {
		s.logger.WarnContext(ctx, "dev seeding finished with failures", "failures", failures)
	} else {
		s.logger.InfoContext(ctx, "dev seeding finished")
	}
	return nil
}

// seedUsers registers the demo accounts and returns them keyed by email.
// Existing accounts are looked up instead of recreated.
func (s *Seeder) seedUsers(ctx context.Context) (map[string]*model.User, int, error) {
	users := make(map[string]*model.User)
	failures := 0
	for _, seed := range accountSeeds() {
		user, created, err := s.ensureUser(ctx, seed)
		if err != nil {
			s.logger.ErrorContext(ctx, "seed user failed", "email", seed.email, "error", err)
			failures++
			continue
		}
		users[seed.email] = user
		if created {
			s.logger.InfoContext(ctx, "seeded user", "email", seed.email, "role", seed.role)
		}
	}
	if len(users) == 0 {
		return nil, failures, errors.New("devseed: no demo accounts could be created")
	}
	return users, failures, nil
}

func (s *Seeder) ensureUser(ctx context.Context, seed accountSeed) (*model.User, bool, error) {
	user, err := s.svcs.Auth.Register(ctx, &model.CreateUserRequest{
		Email:     seed.email,
		Password:  seed.password,
		FirstName: seed.firstName,
		LastName:  seed.lastName,
		Role:      seed.role,
	}, seedMeta)
	if err == nil {
		return user, true, nil
	}
	if !errors.Is(err, data.ErrEmailTaken) {
		return nil, false, err
	}
	existing, err := s.findUserByEmail(ctx, seed.email)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *Seeder) findUserByEmail(ctx context.Context, email string) (*model.User, error) {
	q := email
	matches, err := s.svcs.Users.List(ctx, model.UsersListOptions{Limit: 10, Q: &q})
	if err != nil {
		return nil, err
	}
	for _, u := range matches {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, fmt.Errorf("devseed: user %s not found after duplicate-email register", email)
}

// seedParentLinks links each demo parent to two students. Parent N gets
// students 2N-1 and 2N.
func (s *Seeder) seedParentLinks(ctx context.Context, users map[string]*model.User) int {
	failures := 0
	for i := 1; i <= 4; i++ {
		parent := users[fmt.Sprintf("parent%d@school.test", i)]
		if parent == nil {
			continue
		}
		for _, studentIdx := range []int{i*2 - 1, i * 2} {
			student := users[fmt.Sprintf("student%d@school.test", studentIdx)]
			if student == nil {
				continue
			}
			_, err := s.svcs.Users.LinkChild(ctx, parent.ID, student.ID, "guardian")
			if err != nil && !errors.Is(err, data.ErrLinkExists) {
				s.logger.ErrorContext(ctx, "seed parent link failed",
					"parent", parent.Email, "student", student.Email, "error", err)
				failures++
			}
		}
	}
	return failures
}

// seedCourses creates the demo courses and reports which ones are new, so
// dependent seeding can skip courses that already carry data.
func (s *Seeder) seedCourses(
	ctx context.Context,
	users map[string]*model.User,
) ([]*model.Course, map[int64]bool, int, error) {
	courses := make([]*model.Course, 0, len(courseSeeds()))
	created := make(map[int64]bool)
	failures := 0
	for _, seed := range courseSeeds() {
		teacher := users[seed.teacherEmail]
		if teacher == nil {
			failures++
			continue
		}
		desc := "Course on " + seed.name
		course, err := s.svcs.Courses.Create(ctx, &model.CreateCourseRequest{
			Name:        seed.name,
			Code:        seed.code,
			Description: &desc,
			Credits:     seed.credits,
			TeacherID:   teacher.ID,
			ClassGroup:  seed.classGroup,
		})
		if err == nil {
			s.logger.InfoContext(ctx, "seeded course", "code", seed.code, "name", seed.name)
			courses = append(courses, course)
			created[course.ID] = true
			continue
		}
		if !errors.Is(err, data.ErrCourseCodeExists) {
			s.logger.ErrorContext(ctx, "seed course failed", "code", seed.code, "error", err)
			failures++
			continue
		}
		existing, findErr := s.findCourseByCode(ctx, seed.code)
		if findErr != nil {
			s.logger.ErrorContext(ctx, "seed course lookup failed", "code", seed.code, "error", findErr)
			failures++
			continue
		}
		courses = append(courses, existing)
	}
	if len(courses) == 0 {
		return nil, nil, failures, errors.New("devseed: no demo courses could be created")
	}
	return courses, created, failures, nil
}

func (s *Seeder) findCourseByCode(ctx context.Context, code string) (*model.Course, error) {
	all, err := s.svcs.Courses.List(ctx, 100, 0)
	if err != nil {
		return nil, err
	}
	for _, c := range all {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, fmt.Errorf("devseed: course %s not found after duplicate-code create", code)
}

// seedSchedules gives each new course one weekly slot per class group.
func (s *Seeder) seedSchedules(ctx context.Context, courses []*model.Course, created map[int64]bool) int {
	days := []string{"monday", "tuesday", "wednesday", "thursday", "friday"}
	slots := [][2]string{{"08:00", "09:00"}, {"09:00", "10:00"}, {"10:00", "11:00"}, {"11:00", "12:00"}}
	failures := 0
	for i, course := range courses {
		if !created[course.ID] {
			continue
		}
		for j, group := range classGroups {
			slot := slots[(i+j)%len(slots)]
			_, err := s.svcs.Schedules.Create(ctx, &model.CreateScheduleRequest{
				CourseID:   course.ID,
				DayOfWeek:  days[(i+j)%len(days)],
				StartTime:  slot[0],
				EndTime:    slot[1],
				Classroom:  fmt.Sprintf("%d%s", i+1, group[len(group)-1:]),
				ClassGroup: group,
			})
			if err != nil {
				s.logger.ErrorContext(ctx, "seed schedule failed", "course", course.Code, "error", err)
				failures++
			}
		}
	}
	return failures
}

// seedGrades records one grade per student per new course, signed by the
// course's teacher. Values spread deterministically over the 0-20 scale.
func (s *Seeder) seedGrades(
	ctx context.Context,
	users map[string]*model.User,
	courses []*model.Course,
	created map[int64]bool,
) int {
	failures := 0
	for ci, course := range courses {
		if !created[course.ID] {
			continue
		}
		for si := 1; si <= 8; si++ {
			student := users[fmt.Sprintf("student%d@school.test", si)]
			if student == nil {
				continue
			}
			value := 8 + float64((si*3+ci*2)%12) + 0.5
			_, err := s.svcs.Grades.Record(ctx, &model.CreateGradeRequest{
				StudentID: student.ID,
				CourseID:  course.ID,
				Value:     value,
				Type:      model.GradeTypeTest,
			}, course.TeacherID)
			if err != nil {
				s.logger.ErrorContext(ctx, "seed grade failed",
					"course", course.Code, "student", student.Email, "error", err)
				failures++
			}
		}
	}
	return failures
}

// seedAbsences marks one recent absence for every other student, but only
// on a fresh dataset so reruns do not stack absences.
func (s *Seeder) seedAbsences(ctx context.Context, users map[string]*model.User, createdCourses map[int64]bool) int {
	if len(createdCourses) == 0 {
		return 0
	}
	teacher := users["teacher1@school.test"]
	if teacher == nil {
		return 0
	}
	reason := "Illness"
	failures := 0
	for si := 1; si <= 8; si += 2 {
		student := users[fmt.Sprintf("student%d@school.test", si)]
		if student == nil {
			continue
		}
		_, err := s.svcs.Absences.Mark(ctx, &model.CreateAbsenceRequest{
			StudentID:   student.ID,
			Date:        time.Now().AddDate(0, 0, -si),
			Period:      model.AbsencePeriodMorning,
			IsJustified: si%4 == 1,
			Reason:      &reason,
		}, teacher.ID)
		if err != nil {
			s.logger.ErrorContext(ctx, "seed absence failed", "student", student.Email, "error", err)
			failures++
		}
	}
	return failures
}
