package core

import (
	"context"
	"time"

	"github.com/campushub/intranet-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// UserRepository defines the interface for account data operations.
type UserRepository interface {
	Create(ctx context.Context, req *model.CreateUserRequest, passwordHash string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error)
	Update(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// SetPasswordHash replaces the stored credential material.
	SetPasswordHash(ctx context.Context, id int64, passwordHash string) error
	// SetMFACode overwrites the account's single verification-code slot.
	SetMFACode(ctx context.Context, id int64, code string) error
	// MarkMFAVerified flips the verified flag and stamps last_login.
	MarkMFAVerified(ctx context.Context, id int64, at time.Time) error
	// ClearMFAVerified forces a fresh MFA pass on the next login.
	ClearMFAVerified(ctx context.Context, id int64) error
}

// AuthLogRepository defines the interface for the append-only audit log.
// Append never mutates existing rows; there is no update or delete.
type AuthLogRepository interface {
	Append(ctx context.Context, event *model.AuthEvent) error
	List(ctx context.Context, opts model.AuthEventsListOptions) ([]*model.AuthEvent, error)
}

// CourseRepository defines the interface for course data operations.
type CourseRepository interface {
	Create(ctx context.Context, req *model.CreateCourseRequest) (*model.Course, error)
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	List(ctx context.Context, limit, offset int) ([]*model.Course, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]*model.Course, error)
	Update(ctx context.Context, id int64, req model.UpdateCourseRequest) (*model.Course, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// GradeRepository defines the interface for grade data operations.
type GradeRepository interface {
	Create(ctx context.Context, req *model.CreateGradeRequest, teacherID int64) (*model.Grade, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*model.Grade, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*model.Grade, error)
}

// AbsenceRepository defines the interface for absence data operations.
type AbsenceRepository interface {
	Create(ctx context.Context, req *model.CreateAbsenceRequest, teacherID int64) (*model.Absence, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*model.Absence, error)
}

// ScheduleRepository defines the interface for schedule data operations.
type ScheduleRepository interface {
	Create(ctx context.Context, req *model.CreateScheduleRequest) (*model.Schedule, error)
	ListByClassGroup(ctx context.Context, classGroup string) ([]*model.Schedule, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*model.Schedule, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ParentLinkRepository defines the interface for parent/child links.
type ParentLinkRepository interface {
	Link(ctx context.Context, parentID, studentID int64, relationship string) (*model.ParentChildLink, error)
	ListChildren(ctx context.Context, parentID int64) ([]*model.User, error)
	IsLinked(ctx context.Context, parentID, studentID int64) (bool, error)
}
