package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/campushub/intranet-api/internal/data/pgxutil"
	"github.com/campushub/intranet-api/internal/domain/model"
)

// ParentLinkRepo provides database operations for parent/child links.
type ParentLinkRepo struct {
	DB *sql.DB
}

// NewParentLinkRepo creates a new ParentLinkRepo.
func NewParentLinkRepo(db *sql.DB) *ParentLinkRepo {
	return &ParentLinkRepo{DB: db}
}

// Link ties a parent account to a student account. Returns ErrLinkExists if
// the pair is already linked.
func (r *ParentLinkRepo) Link(ctx context.Context, parentID, studentID int64, relationship string) (*model.ParentChildLink, error) {
	if parentID <= 0 || studentID <= 0 {
		return nil, errors.New("parent_id and student_id are required")
	}
	if relationship == "" {
		relationship = "guardian"
	}

	var out model.ParentChildLink
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO parent_student (parent_id, student_id, relationship)
			VALUES ($1, $2, $3)
			RETURNING id, parent_id, student_id, relationship`,
			parentID, studentID, relationship,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ParentChildLink])
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrLinkExists
		}
		return nil, fmt.Errorf("failed to link parent and student: %w", err)
	}
	return &out, nil
}

// ListChildren retrieves the student accounts linked to a parent.
func (r *ParentLinkRepo) ListChildren(ctx context.Context, parentID int64) ([]*model.User, error) {
	var users []model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT u.id, u.email, u.password_hash, u.first_name, u.last_name, u.phone,
			       u.role, u.is_active, u.mfa_secret, u.mfa_verified, u.last_login, u.created_at
			FROM users u
			JOIN parent_student ps ON ps.student_id = u.id
			WHERE ps.parent_id = $1
			ORDER BY u.last_name, u.first_name`,
			parentID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		users, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}

	result := make([]*model.User, len(users))
	for i := range users {
		result[i] = &users[i]
	}
	return result, nil
}

// IsLinked reports whether the parent is linked to the student.
func (r *ParentLinkRepo) IsLinked(ctx context.Context, parentID, studentID int64) (bool, error) {
	var linked bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM parent_student WHERE parent_id = $1 AND student_id = $2)`,
			parentID, studentID,
		).Scan(&linked)
	})
	if err != nil {
		return false, fmt.Errorf("failed to check parent link: %w", err)
	}
	return linked, nil
}
