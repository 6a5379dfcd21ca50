package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/matchlog-io/matchlog-engine/pkg/apperrors"
	"github.com/matchlog-io/matchlog-engine/pkg/database"
)

// SessionRepository defines data access for the sessions table.
type SessionRepository interface {
	// CreateAndResolve inserts a session and returns its assigned identifier,
	// falling back to a lookup by the (date, location) natural key when the
	// insert cannot yield it directly.
	CreateAndResolve(ctx context.Context, date, location string) (int64, error)
	DeleteAll(ctx context.Context) error
}

// sessionRepository implements SessionRepository using PostgreSQL.
type sessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *database.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) CreateAndResolve(ctx context.Context, date, location string) (int64, error) {
	q := r.db.Querier(ctx)

	var id int64
	err := q.QueryRow(ctx,
		`INSERT INTO sessions (date, location) VALUES ($1, $2) RETURNING id`,
		date, location).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to insert session (%s, %s): %w", date, location, err)
	}

	err = q.QueryRow(ctx,
		`SELECT id FROM sessions WHERE date = $1 AND location = $2`,
		date, location).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("session (%s, %s): %w", date, location, apperrors.ErrIDResolution)
		}
		return 0, fmt.Errorf("failed to resolve session (%s, %s): %w", date, location, err)
	}
	return id, nil
}

func (r *sessionRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Querier(ctx).Exec(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}

// Ensure sessionRepository implements SessionRepository at compile time.
var _ SessionRepository = (*sessionRepository)(nil)
