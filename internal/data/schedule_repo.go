package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campushub/intranet-api/internal/data/pgxutil"
	"github.com/campushub/intranet-api/internal/domain/model"
)

const scheduleColumns = "id, course_id, day_of_week, start_time, end_time, classroom, class_group"

// ScheduleRepo provides database operations for timetable slots.
type ScheduleRepo struct {
	DB *sql.DB
}

// NewScheduleRepo creates a new ScheduleRepo.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo {
	return &ScheduleRepo{DB: db}
}

// Create inserts a timetable slot.
func (r *ScheduleRepo) Create(ctx context.Context, req *model.CreateScheduleRequest) (*model.Schedule, error) {
	if req == nil {
		return nil, errors.New("create schedule request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Schedule
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO schedules (course_id, day_of_week, start_time, end_time, classroom, class_group)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+scheduleColumns,
			req.CourseID, req.DayOfWeek, req.StartTime, req.EndTime, req.Classroom, req.ClassGroup,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Schedule])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}
	return &out, nil
}

// ListByClassGroup retrieves the weekly timetable for a class group,
// ordered by day then start time.
func (r *ScheduleRepo) ListByClassGroup(ctx context.Context, classGroup string) ([]*model.Schedule, error) {
	return r.list(ctx, `SELECT `+scheduleColumns+` FROM schedules WHERE class_group = $1
		ORDER BY array_position(ARRAY['monday','tuesday','wednesday','thursday','friday','saturday'], day_of_week), start_time`,
		classGroup)
}

// ListByCourse retrieves all slots of one course.
func (r *ScheduleRepo) ListByCourse(ctx context.Context, courseID int64) ([]*model.Schedule, error) {
	return r.list(ctx, `SELECT `+scheduleColumns+` FROM schedules WHERE course_id = $1
		ORDER BY array_position(ARRAY['monday','tuesday','wednesday','thursday','friday','saturday'], day_of_week), start_time`,
		courseID)
}

// Delete removes a timetable slot. Returns true if a row was deleted.
func (r *ScheduleRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete schedule: %w", err)
	}
	return deleted, nil
}

func (r *ScheduleRepo) list(ctx context.Context, query string, arg any) ([]*model.Schedule, error) {
	var slots []model.Schedule
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		slots, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Schedule])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	result := make([]*model.Schedule, len(slots))
	for i := range slots {
		result[i] = &slots[i]
	}
	return result, nil
}
