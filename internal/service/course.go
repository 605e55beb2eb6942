package service

import (
	"context"

	"github.com/campushub/intranet-api/internal/core"
	"github.com/campushub/intranet-api/internal/domain/model"
)

// CourseServiceOptions groups dependencies for CourseService.
type CourseServiceOptions struct {
	Courses core.CourseRepository
}

// CourseService orchestrates course CRUD.
type CourseService struct {
	courses core.CourseRepository
}

// NewCourseService constructs a new CourseService.
func NewCourseService(opts CourseServiceOptions) *CourseService {
	return &CourseService{courses: opts.Courses}
}

// Create creates a course.
func (s *CourseService) Create(ctx context.Context, req *model.CreateCourseRequest) (*model.Course, error) {
	return s.courses.Create(ctx, req)
}

// GetByID retrieves a course by ID.
func (s *CourseService) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	return s.courses.GetByID(ctx, id)
}

// List returns a page of courses.
func (s *CourseService) List(ctx context.Context, limit, offset int) ([]*model.Course, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.courses.List(ctx, limit, offset)
}

// ListByTeacher returns the courses taught by one teacher.
func (s *CourseService) ListByTeacher(ctx context.Context, teacherID int64) ([]*model.Course, error) {
	return s.courses.ListByTeacher(ctx, teacherID)
}

// Update applies a partial update to a course.
func (s *CourseService) Update(ctx context.Context, id int64, req model.UpdateCourseRequest) (*model.Course, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.courses.Update(ctx, id, req)
}

// Delete removes a course. Returns true if a row was deleted.
func (s *CourseService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.courses.Delete(ctx, id)
}
