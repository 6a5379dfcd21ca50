package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/matchlog-io/matchlog-engine/pkg/apperrors"
	"github.com/matchlog-io/matchlog-engine/pkg/database"
)

// RoundRepository defines data access for the rounds table.
type RoundRepository interface {
	// CreateAndResolve inserts a round and returns its assigned identifier,
	// falling back to a lookup by the (session_id, round_number) natural key
	// when the insert cannot yield it directly.
	CreateAndResolve(ctx context.Context, sessionID int64, roundNumber int) (int64, error)
	DeleteAll(ctx context.Context) error
}

// roundRepository implements RoundRepository using PostgreSQL.
type roundRepository struct {
	db *database.DB
}

// NewRoundRepository creates a new round repository.
func NewRoundRepository(db *database.DB) RoundRepository {
	return &roundRepository{db: db}
}

func (r *roundRepository) CreateAndResolve(ctx context.Context, sessionID int64, roundNumber int) (int64, error) {
	q := r.db.Querier(ctx)

	var id int64
	err := q.QueryRow(ctx,
		`INSERT INTO rounds (session_id, round_number) VALUES ($1, $2) RETURNING id`,
		sessionID, roundNumber).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to insert round %d of session %d: %w", roundNumber, sessionID, err)
	}

	err = q.QueryRow(ctx,
		`SELECT id FROM rounds WHERE session_id = $1 AND round_number = $2`,
		sessionID, roundNumber).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("round %d of session %d: %w", roundNumber, sessionID, apperrors.ErrIDResolution)
		}
		return 0, fmt.Errorf("failed to resolve round %d of session %d: %w", roundNumber, sessionID, err)
	}
	return id, nil
}

func (r *roundRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Querier(ctx).Exec(ctx, `DELETE FROM rounds`); err != nil {
		return fmt.Errorf("failed to delete rounds: %w", err)
	}
	return nil
}

// Ensure roundRepository implements RoundRepository at compile time.
var _ RoundRepository = (*roundRepository)(nil)
