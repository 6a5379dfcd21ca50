package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/matchlog-io/matchlog-engine/pkg/apperrors"
	"github.com/matchlog-io/matchlog-engine/pkg/database"
)

// PlayerRepository defines data access for the players table.
type PlayerRepository interface {
	// CreateAndResolve inserts a player and returns its assigned identifier.
	// When the insert cannot yield the identifier directly, it falls back to
	// a lookup by the unique natural key (name).
	CreateAndResolve(ctx context.Context, name string) (int64, error)
	DeleteAll(ctx context.Context) error
}

// playerRepository implements PlayerRepository using PostgreSQL.
type playerRepository struct {
	db *database.DB
}

// NewPlayerRepository creates a new player repository.
func NewPlayerRepository(db *database.DB) PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) CreateAndResolve(ctx context.Context, name string) (int64, error) {
	q := r.db.Querier(ctx)

	var id int64
	err := q.QueryRow(ctx,
		`INSERT INTO players (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to insert player %q: %w", name, err)
	}

	// The insert landed but the backend returned no row; recover the
	// identifier through the unique natural key.
	err = q.QueryRow(ctx, `SELECT id FROM players WHERE name = $1`, name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("player %q: %w", name, apperrors.ErrIDResolution)
		}
		return 0, fmt.Errorf("failed to resolve player %q: %w", name, err)
	}
	return id, nil
}

func (r *playerRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Querier(ctx).Exec(ctx, `DELETE FROM players`); err != nil {
		return fmt.Errorf("failed to delete players: %w", err)
	}
	return nil
}

// Ensure playerRepository implements PlayerRepository at compile time.
var _ PlayerRepository = (*playerRepository)(nil)
