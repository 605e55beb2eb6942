package service

import (
	"context"
	"fmt"

	"github.com/campushub/intranet-api/internal/core"
	"github.com/campushub/intranet-api/internal/domain/model"
)

// GradeServiceOptions groups dependencies for GradeService.
type GradeServiceOptions struct {
	Grades  core.GradeRepository
	Courses core.CourseRepository
}

// GradeService orchestrates grade recording and retrieval.
type GradeService struct {
	grades  core.GradeRepository
	courses core.CourseRepository
}

// NewGradeService constructs a new GradeService.
func NewGradeService(opts GradeServiceOptions) *GradeService {
	return &GradeService{grades: opts.Grades, courses: opts.Courses}
}

// Record records a grade on behalf of teacherID. The teacher must own the
// course the grade belongs to.
func (s *GradeService) Record(ctx context.Context, req *model.CreateGradeRequest, teacherID int64) (*model.Grade, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	course, err := s.courses.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, fmt.Errorf("course %d: %w", course.ID, ErrForbidden)
	}
	return s.grades.Create(ctx, req, teacherID)
}

// ListByStudent returns a student's grades, newest first.
func (s *GradeService) ListByStudent(ctx context.Context, studentID int64) ([]*model.Grade, error) {
	return s.grades.ListByStudent(ctx, studentID)
}

// ListByCourse returns all grades recorded for a course.
func (s *GradeService) ListByCourse(ctx context.Context, courseID int64) ([]*model.Grade, error) {
	return s.grades.ListByCourse(ctx, courseID)
}
