package testutil

import (
	"time"

	domainauth "github.com/campushub/intranet-api/internal/domain/auth"
	"github.com/campushub/intranet-api/internal/domain/model"
)

// UserRequestBuilder provides a fluent interface for building CreateUserRequest objects for testing.
type UserRequestBuilder struct {
	req *model.CreateUserRequest
}

// NewUserRequest creates a new UserRequestBuilder with sensible defaults.
func NewUserRequest() *UserRequestBuilder {
	return &UserRequestBuilder{
		req: &model.CreateUserRequest{
			Email:     "user@school.test",
			Password:  "Testing123!",
			FirstName: "Test",
			LastName:  "User",
			Role:      domainauth.RoleStudent,
		},
	}
}

// WithEmail sets the email address.
func (b *UserRequestBuilder) WithEmail(email string) *UserRequestBuilder {
	b.req.Email = email
	return b
}

// WithPassword sets the password.
func (b *UserRequestBuilder) WithPassword(password string) *UserRequestBuilder {
	b.req.Password = password
	return b
}

// WithName sets the first and last name.
func (b *UserRequestBuilder) WithName(first, last string) *UserRequestBuilder {
	b.req.FirstName = first
	b.req.LastName = last
	return b
}

// WithRole sets the role.
func (b *UserRequestBuilder) WithRole(role domainauth.Role) *UserRequestBuilder {
	b.req.Role = role
	return b
}

// WithPhone sets the phone number.
func (b *UserRequestBuilder) WithPhone(phone string) *UserRequestBuilder {
	b.req.Phone = &phone
	return b
}

// Build returns the constructed CreateUserRequest.
func (b *UserRequestBuilder) Build() *model.CreateUserRequest {
	return b.req
}

// Common role presets.

// StudentRequest creates a student account request with the given email.
func StudentRequest(email string) *model.CreateUserRequest {
	return NewUserRequest().WithEmail(email).WithRole(domainauth.RoleStudent).Build()
}

// TeacherRequest creates a teacher account request with the given email.
func TeacherRequest(email string) *model.CreateUserRequest {
	return NewUserRequest().WithEmail(email).WithRole(domainauth.RoleTeacher).Build()
}

// ParentRequest creates a parent account request with the given email.
func ParentRequest(email string) *model.CreateUserRequest {
	return NewUserRequest().WithEmail(email).WithRole(domainauth.RoleParent).Build()
}

// AdminRequest creates an admin account request with the given email.
func AdminRequest(email string) *model.CreateUserRequest {
	return NewUserRequest().WithEmail(email).WithRole(domainauth.RoleAdmin).Build()
}

// CourseRequestBuilder provides a fluent interface for building CreateCourseRequest objects for testing.
type CourseRequestBuilder struct {
	req *model.CreateCourseRequest
}

// NewCourseRequest creates a new CourseRequestBuilder with sensible defaults.
// The teacher ID must be supplied since courses require an owner.
func NewCourseRequest(teacherID int64) *CourseRequestBuilder {
	return &CourseRequestBuilder{
		req: &model.CreateCourseRequest{
			Name:       "Mathematics",
			Code:       "MATH101",
			Credits:    3,
			TeacherID:  teacherID,
			ClassGroup: "6A",
		},
	}
}

// WithName sets the course name.
func (b *CourseRequestBuilder) WithName(name string) *CourseRequestBuilder {
	b.req.Name = name
	return b
}

// WithCode sets the course code.
func (b *CourseRequestBuilder) WithCode(code string) *CourseRequestBuilder {
	b.req.Code = code
	return b
}

// WithCredits sets the credit count.
func (b *CourseRequestBuilder) WithCredits(credits int) *CourseRequestBuilder {
	b.req.Credits = credits
	return b
}

// WithClassGroup sets the class group.
func (b *CourseRequestBuilder) WithClassGroup(group string) *CourseRequestBuilder {
	b.req.ClassGroup = group
	return b
}

// WithDescription sets the description.
func (b *CourseRequestBuilder) WithDescription(desc string) *CourseRequestBuilder {
	b.req.Description = &desc
	return b
}

// Build returns the constructed CreateCourseRequest.
func (b *CourseRequestBuilder) Build() *model.CreateCourseRequest {
	return b.req
}

// GradeRequest creates a grade request for the given student and course.
func GradeRequest(studentID, courseID int64, value float64) *model.CreateGradeRequest {
	return &model.CreateGradeRequest{
		StudentID: studentID,
		CourseID:  courseID,
		Value:     value,
		Type:      model.GradeTypeTest,
	}
}

// AbsenceRequest creates a justified morning absence for the given student.
func AbsenceRequest(studentID int64, date time.Time) *model.CreateAbsenceRequest {
	reason := "Illness"
	return &model.CreateAbsenceRequest{
		StudentID:   studentID,
		Date:        date,
		Period:      model.AbsencePeriodMorning,
		IsJustified: true,
		Reason:      &reason,
	}
}

// ScheduleRequest creates a weekly slot for the given course.
func ScheduleRequest(courseID int64, day, classGroup string) *model.CreateScheduleRequest {
	return &model.CreateScheduleRequest{
		CourseID:   courseID,
		DayOfWeek:  day,
		StartTime:  "08:00",
		EndTime:    "09:00",
		Classroom:  "B12",
		ClassGroup: classGroup,
	}
}
