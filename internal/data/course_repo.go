package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/campushub/intranet-api/internal/data/pgxutil"
	"github.com/campushub/intranet-api/internal/domain/model"
)

const courseColumns = "id, name, code, description, credits, teacher_id, class_group"

// CourseRepo provides database operations for courses.
type CourseRepo struct {
	DB *sql.DB
}

// NewCourseRepo creates a new CourseRepo instance.
func NewCourseRepo(db *sql.DB) *CourseRepo {
	return &CourseRepo{DB: db}
}

// Create inserts a new course.
func (r *CourseRepo) Create(ctx context.Context, req *model.CreateCourseRequest) (*model.Course, error) {
	if req == nil {
		return nil, errors.New("create course request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Course
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO courses (name, code, description, credits, teacher_id, class_group)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+courseColumns,
			req.Name, req.Code, req.Description, req.Credits, req.TeacherID, req.ClassGroup,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Course])
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrCourseCodeExists
		}
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a course by ID.
func (r *CourseRepo) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	var out model.Course
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Course])
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return &out, nil
}

// List retrieves courses with pagination.
func (r *CourseRepo) List(ctx context.Context, limit, offset int) ([]*model.Course, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return r.listByQuery(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY code LIMIT $1 OFFSET $2`, limit, offset)
}

// ListByTeacher retrieves all courses taught by the given teacher.
func (r *CourseRepo) ListByTeacher(ctx context.Context, teacherID int64) ([]*model.Course, error) {
	return r.listByQuery(ctx, `SELECT `+courseColumns+` FROM courses WHERE teacher_id = $1 ORDER BY code`, teacherID)
}

func (r *CourseRepo) listByQuery(ctx context.Context, query string, args ...any) ([]*model.Course, error) {
	var courses []model.Course
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		courses, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Course])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	result := make([]*model.Course, len(courses))
	for i := range courses {
		result[i] = &courses[i]
	}
	return result, nil
}

// Update updates fields of a course. Nil request fields are left untouched.
func (r *CourseRepo) Update(ctx context.Context, id int64, req model.UpdateCourseRequest) (*model.Course, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sets := []string{}
	args := []any{}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if req.Name != nil {
		add("name", strings.TrimSpace(*req.Name))
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Credits != nil {
		add("credits", *req.Credits)
	}
	if req.TeacherID != nil {
		add("teacher_id", *req.TeacherID)
	}
	if req.ClassGroup != nil {
		add("class_group", strings.TrimSpace(*req.ClassGroup))
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE courses SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), courseColumns,
	)

	var out model.Course
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Course])
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	return &out, nil
}

// Delete removes a course. Returns false when the ID does not exist.
func (r *CourseRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete course: %w", err)
	}
	return deleted, nil
}
