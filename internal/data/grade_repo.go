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

const gradeColumns = "id, student_id, course_id, value, type, teacher_id, comments, date_recorded"

// GradeRepo provides database operations for grades.
type GradeRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewGradeRepo creates a new GradeRepo with real time provider.
func NewGradeRepo(db *sql.DB) *GradeRepo {
	return &GradeRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewGradeRepoWithTimeProvider creates a new GradeRepo with a custom time provider (useful for tests).
func NewGradeRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *GradeRepo {
	return &GradeRepo{DB: db, timeProvider: tp}
}

// Create records a grade given by teacherID.
func (r *GradeRepo) Create(ctx context.Context, req *model.CreateGradeRequest, teacherID int64) (*model.Grade, error) {
	if req == nil {
		return nil, errors.New("create grade request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if teacherID <= 0 {
		return nil, errors.New("teacher_id is required")
	}

	var out model.Grade
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO grades (student_id, course_id, value, type, teacher_id, comments, date_recorded)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+gradeColumns,
			req.StudentID, req.CourseID, req.Value, req.Type, teacherID, req.Comments,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Grade])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create grade: %w", err)
	}
	return &out, nil
}

// ListByStudent retrieves all grades of a student, newest first.
func (r *GradeRepo) ListByStudent(ctx context.Context, studentID int64) ([]*model.Grade, error) {
	return r.listByQuery(ctx,
		`SELECT `+gradeColumns+` FROM grades WHERE student_id = $1 ORDER BY date_recorded DESC, id DESC`, studentID)
}

// ListByCourse retrieves all grades recorded for a course.
func (r *GradeRepo) ListByCourse(ctx context.Context, courseID int64) ([]*model.Grade, error) {
	return r.listByQuery(ctx,
		`SELECT `+gradeColumns+` FROM grades WHERE course_id = $1 ORDER BY date_recorded DESC, id DESC`, courseID)
}

func (r *GradeRepo) listByQuery(ctx context.Context, query string, arg any) ([]*model.Grade, error) {
	var grades []model.Grade
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		grades, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Grade])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list grades: %w", err)
	}

	result := make([]*model.Grade, len(grades))
	for i := range grades {
		result[i] = &grades[i]
	}
	return result, nil
}
