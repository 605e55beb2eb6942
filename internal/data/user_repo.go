package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/campushub/intranet-api/internal/data/pgxutil"
	"github.com/campushub/intranet-api/internal/domain/model"
)

const userColumns = "id, email, password_hash, first_name, last_name, phone, role, is_active, mfa_secret, mfa_verified, last_login, created_at"

// UserRepo provides database operations for accounts.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

// Create inserts a new account. The password hash is derived by the caller;
// plaintext never reaches this layer.
func (r *UserRepo) Create(ctx context.Context, req *model.CreateUserRequest, passwordHash string) (*model.User, error) {
	if req == nil {
		return nil, errors.New("create user request is required")
	}
	if passwordHash == "" {
		return nil, errors.New("password hash is required")
	}

	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (email, password_hash, first_name, last_name, phone, role, is_active, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7)
			RETURNING `+userColumns,
			req.Email,
			passwordHash,
			req.FirstName,
			req.LastName,
			req.Phone,
			req.Role,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		return nil, r.mapWriteErr(err)
	}
	return &out, nil
}

// GetByID retrieves an account by ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getByQuery(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail retrieves an account by its unique email, case-insensitively.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getByQuery(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

func (r *UserRepo) getByQuery(ctx context.Context, query string, arg any) (*model.User, error) {
	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &out, nil
}

// List retrieves accounts with optional role and search filters.
func (r *UserRepo) List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error) {
	opts.Normalize()

	var users []model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		query := `SELECT ` + userColumns + ` FROM users WHERE 1=1`
		var args []any

		if opts.Role != nil {
			args = append(args, *opts.Role)
			query += fmt.Sprintf(" AND role = $%d", len(args))
		}
		if opts.Q != nil && *opts.Q != "" {
			args = append(args, "%"+*opts.Q+"%")
			query += fmt.Sprintf(" AND (email ILIKE $%d OR last_name ILIKE $%d)", len(args), len(args))
		}

		query += " ORDER BY created_at DESC, id DESC"
		args = append(args, opts.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, opts.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))

		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		users, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := make([]*model.User, len(users))
	for i := range users {
		result[i] = &users[i]
	}
	return result, nil
}

// Update updates fields of an account. Nil request fields are left untouched.
func (r *UserRepo) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sets := []string{}
	args := []any{}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if req.Email != nil {
		add("email", *req.Email)
	}
	if req.FirstName != nil {
		add("first_name", strings.TrimSpace(*req.FirstName))
	}
	if req.LastName != nil {
		add("last_name", strings.TrimSpace(*req.LastName))
	}
	if req.Phone != nil {
		add("phone", *req.Phone)
	}
	if req.Role != nil {
		add("role", *req.Role)
	}
	if req.IsActive != nil {
		add("is_active", *req.IsActive)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), userColumns,
	)

	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, r.mapWriteErr(err)
	}
	return &out, nil
}

// Delete removes an account. Returns false when the ID does not exist.
func (r *UserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return deleted, nil
}

// SetPasswordHash replaces the stored credential material.
func (r *UserRepo) SetPasswordHash(ctx context.Context, id int64, passwordHash string) error {
	if passwordHash == "" {
		return errors.New("password hash is required")
	}
	return r.execExpectingRow(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
}

// SetMFACode overwrites the account's single verification-code slot.
// Last write wins: a concurrent issuance simply invalidates the prior code.
func (r *UserRepo) SetMFACode(ctx context.Context, id int64, code string) error {
	return r.execExpectingRow(ctx, `UPDATE users SET mfa_secret = $1 WHERE id = $2`, code, id)
}

// MarkMFAVerified flips the verified flag and stamps last_login.
func (r *UserRepo) MarkMFAVerified(ctx context.Context, id int64, at time.Time) error {
	return r.execExpectingRow(ctx,
		`UPDATE users SET mfa_verified = TRUE, last_login = $1 WHERE id = $2`, at.UTC(), id)
}

// ClearMFAVerified forces a fresh MFA pass on the next login.
func (r *UserRepo) ClearMFAVerified(ctx context.Context, id int64) error {
	return r.execExpectingRow(ctx, `UPDATE users SET mfa_verified = FALSE WHERE id = $1`, id)
}

func (r *UserRepo) execExpectingRow(ctx context.Context, query string, args ...any) error {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// mapWriteErr converts driver errors on writes to sentinel errors.
func (r *UserRepo) mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrEmailTaken
	}
	return fmt.Errorf("failed to write user: %w", err)
}
