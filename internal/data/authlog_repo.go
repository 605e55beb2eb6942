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

const authLogColumns = "id, user_id, email, action, success, ip_address, user_agent, details, created_at"

// AuthLogRepo provides append-only storage for authentication audit events.
// There is deliberately no update or delete path.
type AuthLogRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAuthLogRepo creates a new AuthLogRepo with real time provider.
func NewAuthLogRepo(db *sql.DB) *AuthLogRepo {
	return &AuthLogRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAuthLogRepoWithTimeProvider creates a new AuthLogRepo with a custom time provider (useful for tests).
func NewAuthLogRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AuthLogRepo {
	return &AuthLogRepo{DB: db, timeProvider: tp}
}

// Append writes one audit event. The stored row is immutable from this
// point on.
func (r *AuthLogRepo) Append(ctx context.Context, event *model.AuthEvent) error {
	if event == nil {
		return errors.New("auth event is required")
	}
	if event.Email == "" || event.Action == "" {
		return errors.New("auth event email and action are required")
	}

	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.timeProvider.Now().UTC()
	}

	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, `
			INSERT INTO auth_logs (user_id, email, action, success, ip_address, user_agent, details, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			event.UserID,
			event.Email,
			event.Action,
			event.Success,
			event.IPAddress,
			event.UserAgent,
			event.Details,
			createdAt,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to append auth event: %w", err)
	}
	return nil
}

// List retrieves audit events, most recent first, with optional filters.
func (r *AuthLogRepo) List(ctx context.Context, opts model.AuthEventsListOptions) ([]*model.AuthEvent, error) {
	opts.Normalize()

	var events []model.AuthEvent
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		query := `SELECT ` + authLogColumns + ` FROM auth_logs WHERE 1=1`
		var args []any

		if opts.Email != nil {
			args = append(args, *opts.Email)
			query += fmt.Sprintf(" AND lower(email) = lower($%d)", len(args))
		}
		if opts.Action != nil {
			args = append(args, *opts.Action)
			query += fmt.Sprintf(" AND action = $%d", len(args))
		}
		if opts.Success != nil {
			args = append(args, *opts.Success)
			query += fmt.Sprintf(" AND success = $%d", len(args))
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
		events, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.AuthEvent])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list auth events: %w", err)
	}

	result := make([]*model.AuthEvent, len(events))
	for i := range events {
		result[i] = &events[i]
	}
	return result, nil
}
