package service

import (
	"context"

	"github.com/campushub/intranet-api/internal/core"
	"github.com/campushub/intranet-api/internal/domain/model"
)

// AbsenceServiceOptions groups dependencies for AbsenceService.
type AbsenceServiceOptions struct {
	Absences core.AbsenceRepository
}

// AbsenceService orchestrates absence marking and retrieval.
type AbsenceService struct {
	absences core.AbsenceRepository
}

// NewAbsenceService constructs a new AbsenceService.
func NewAbsenceService(opts AbsenceServiceOptions) *AbsenceService {
	return &AbsenceService{absences: opts.Absences}
}

// Mark records an absence for a student on behalf of teacherID.
func (s *AbsenceService) Mark(ctx context.Context, req *model.CreateAbsenceRequest, teacherID int64) (*model.Absence, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.absences.Create(ctx, req, teacherID)
}

// ListByStudent returns a student's absences, newest first.
func (s *AbsenceService) ListByStudent(ctx context.Context, studentID int64) ([]*model.Absence, error) {
	return s.absences.ListByStudent(ctx, studentID)
}
