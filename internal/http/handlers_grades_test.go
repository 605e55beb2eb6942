package httpx

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/campushub/intranet-api/internal/domain/auth"
	"github.com/campushub/intranet-api/internal/domain/model"
)

func TestGradeCreate_TeacherOwnsCourse(t *testing.T) {
	f := newRouterFixture(t)
	teacher := f.register(t, "prof@x.com", "StrongPass1!", domainauth.RoleTeacher)
	cookie := f.signIn(t, "prof@x.com", "StrongPass1!")

	course := &model.Course{ID: 7, Name: "Maths", Code: "MATH1", TeacherID: teacher.ID}
	f.courses.EXPECT().GetByID(gomock.Any(), int64(7)).Return(course, nil)
	f.grades.EXPECT().
		Create(gomock.Any(), gomock.Any(), teacher.ID).
		Return(&model.Grade{
			ID: 1, StudentID: 3, CourseID: 7, Value: 15.5,
			Type: model.GradeTypeTest, TeacherID: teacher.ID, DateRecorded: time.Now(),
		}, nil)

	rec := f.do(http.MethodPost, "/api/grades", map[string]any{
		"student_id": 3, "course_id": 7, "value": 15.5, "type": "test",
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, float64(15.5), body["value"])
}

func TestGradeCreate_NotCourseOwner(t *testing.T) {
	f := newRouterFixture(t)
	teacher := f.register(t, "prof@x.com", "StrongPass1!", domainauth.RoleTeacher)
	cookie := f.signIn(t, "prof@x.com", "StrongPass1!")

	course := &model.Course{ID: 7, Name: "Maths", Code: "MATH1", TeacherID: teacher.ID + 1}
	f.courses.EXPECT().GetByID(gomock.Any(), int64(7)).Return(course, nil)
	f.grades.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	rec := f.do(http.MethodPost, "/api/grades", map[string]any{
		"student_id": 3, "course_id": 7, "value": 12, "type": "exam",
	}, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStudentGrades_SelfAccessOnly(t *testing.T) {
	f := newRouterFixture(t)
	student := f.register(t, "alice@x.com", "StrongPass1!", domainauth.RoleStudent)
	cookie := f.signIn(t, "alice@x.com", "StrongPass1!")

	f.grades.EXPECT().ListByStudent(gomock.Any(), student.ID).Return([]*model.Grade{}, nil)

	rec := f.do(http.MethodGet, "/api/students/"+itoa(student.ID)+"/grades", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Another student's records are off limits.
	rec = f.do(http.MethodGet, "/api/students/"+itoa(student.ID+1)+"/grades", nil, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStudentGrades_ParentLinkChecked(t *testing.T) {
	f := newRouterFixture(t)
	parent := f.register(t, "parent@x.com", "StrongPass1!", domainauth.RoleParent)
	cookie := f.signIn(t, "parent@x.com", "StrongPass1!")

	f.links.EXPECT().IsLinked(gomock.Any(), parent.ID, int64(42)).Return(true, nil)
	f.grades.EXPECT().ListByStudent(gomock.Any(), int64(42)).Return([]*model.Grade{
		{ID: 1, StudentID: 42, CourseID: 7, Value: 17, Type: model.GradeTypeExam, TeacherID: 2},
	}, nil)

	rec := f.do(http.MethodGet, "/api/students/42/grades", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	f.links.EXPECT().IsLinked(gomock.Any(), parent.ID, int64(43)).Return(false, nil)
	rec = f.do(http.MethodGet, "/api/students/43/grades", nil, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStudentAbsences_TeacherSees(t *testing.T) {
	f := newRouterFixture(t)
	f.register(t, "prof@x.com", "StrongPass1!", domainauth.RoleTeacher)
	cookie := f.signIn(t, "prof@x.com", "StrongPass1!")

	f.absences.EXPECT().ListByStudent(gomock.Any(), int64(9)).Return([]*model.Absence{
		{ID: 1, StudentID: 9, Period: model.AbsencePeriodMorning, TeacherID: 2, Date: time.Now()},
	}, nil)

	rec := f.do(http.MethodGet, "/api/students/9/absences", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestAbsenceCreate_ValidationFailure(t *testing.T) {
	f := newRouterFixture(t)
	f.register(t, "prof@x.com", "StrongPass1!", domainauth.RoleTeacher)
	cookie := f.signIn(t, "prof@x.com", "StrongPass1!")

	rec := f.do(http.MethodPost, "/api/absences", map[string]any{
		"student_id": 9, "date": time.Now(), "period": "evening",
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_failed", decodeBody(t, rec)["error"])
}
