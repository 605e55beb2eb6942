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

const absenceColumns = "id, student_id, date, period, is_justified, reason, teacher_id, created_at"

// AbsenceRepo provides database operations for absences.
type AbsenceRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAbsenceRepo creates a new AbsenceRepo with real time provider.
func NewAbsenceRepo(db *sql.DB) *AbsenceRepo {
	return &AbsenceRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAbsenceRepoWithTimeProvider creates a new AbsenceRepo with a custom time provider (useful for tests).
func NewAbsenceRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AbsenceRepo {
	return &AbsenceRepo{DB: db, timeProvider: tp}
}

// Create marks an absence for a student, recorded by teacherID.
func (r *AbsenceRepo) Create(ctx context.Context, req *model.CreateAbsenceRequest, teacherID int64) (*model.Absence, error) {
	if req == nil {
		return nil, errors.New("create absence request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if teacherID <= 0 {
		return nil, errors.New("teacher_id is required")
	}

	var out model.Absence
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO absences (student_id, date, period, is_justified, reason, teacher_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+absenceColumns,
			req.StudentID, req.Date, req.Period, req.IsJustified, req.Reason, teacherID,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Absence])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create absence: %w", err)
	}
	return &out, nil
}

// ListByStudent retrieves all absences of a student, newest first.
func (r *AbsenceRepo) ListByStudent(ctx context.Context, studentID int64) ([]*model.Absence, error) {
	var absences []model.Absence
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+absenceColumns+` FROM absences WHERE student_id = $1 ORDER BY date DESC, id DESC`, studentID)
		if err != nil {
			return err
		}
		defer rows.Close()
		absences, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Absence])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}

	result := make([]*model.Absence, len(absences))
	for i := range absences {
		result[i] = &absences[i]
	}
	return result, nil
}
