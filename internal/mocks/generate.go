// Package mocks provides mock implementations for testing the intranet services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockCourseRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(course, nil)
//
// The auth flows use the hand-written doubles in mocks/auth instead; their
// stateful behavior (single code slot, session shapes) is easier to express
// there than as per-call expectations.
package mocks

// Generate mock for CourseRepository interface from internal/core package.
// This creates MockCourseRepository with methods for all CourseRepository interface methods:
// Create, GetByID, List, ListByTeacher, Update, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=course_repository_mock.go github.com/campushub/intranet-api/internal/core CourseRepository

// Generate mock for GradeRepository interface from internal/core package.
// This creates MockGradeRepository with methods for all GradeRepository interface methods:
// Create, ListByStudent, ListByCourse
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=grade_repository_mock.go github.com/campushub/intranet-api/internal/core GradeRepository

// Generate mock for AbsenceRepository interface from internal/core package.
// This creates MockAbsenceRepository with methods for all AbsenceRepository interface methods:
// Create, ListByStudent
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=absence_repository_mock.go github.com/campushub/intranet-api/internal/core AbsenceRepository

// Generate mock for ScheduleRepository interface from internal/core package.
// This creates MockScheduleRepository with methods for all ScheduleRepository interface methods:
// Create, ListByClassGroup, ListByCourse, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=schedule_repository_mock.go github.com/campushub/intranet-api/internal/core ScheduleRepository

// Generate mock for ParentLinkRepository interface from internal/core package.
// This creates MockParentLinkRepository with methods for all ParentLinkRepository interface methods:
// Link, ListChildren, IsLinked
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=parent_link_repository_mock.go github.com/campushub/intranet-api/internal/core ParentLinkRepository
