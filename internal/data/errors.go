package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// User repository sentinels.
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")

	// Course repository sentinels.
	ErrCourseNotFound   = errors.New("course not found")
	ErrCourseCodeExists = errors.New("course code already exists")

	// Schedule repository sentinels.
	ErrScheduleNotFound = errors.New("schedule not found")

	// Parent link sentinels.
	ErrLinkExists = errors.New("parent/student link already exists")
)
