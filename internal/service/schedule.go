package service

import (
	"context"

	"github.com/campushub/intranet-api/internal/core"
	"github.com/campushub/intranet-api/internal/domain/model"
)

// ScheduleServiceOptions groups dependencies for ScheduleService.
type ScheduleServiceOptions struct {
	Schedules core.ScheduleRepository
}

// ScheduleService orchestrates timetable management.
type ScheduleService struct {
	schedules core.ScheduleRepository
}

// NewScheduleService constructs a new ScheduleService.
func NewScheduleService(opts ScheduleServiceOptions) *ScheduleService {
	return &ScheduleService{schedules: opts.Schedules}
}

// Create adds a timetable slot.
func (s *ScheduleService) Create(ctx context.Context, req *model.CreateScheduleRequest) (*model.Schedule, error) {
	return s.schedules.Create(ctx, req)
}

// ListByClassGroup returns the weekly timetable of a class group.
func (s *ScheduleService) ListByClassGroup(ctx context.Context, classGroup string) ([]*model.Schedule, error) {
	return s.schedules.ListByClassGroup(ctx, classGroup)
}

// ListByCourse returns all slots of one course.
func (s *ScheduleService) ListByCourse(ctx context.Context, courseID int64) ([]*model.Schedule, error) {
	return s.schedules.ListByCourse(ctx, courseID)
}

// Delete removes a timetable slot. Returns true if a row was deleted.
func (s *ScheduleService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.schedules.Delete(ctx, id)
}
