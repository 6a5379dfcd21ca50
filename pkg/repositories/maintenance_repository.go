package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/matchlog-io/matchlog-engine/pkg/database"
)

// MaintenanceRepository covers housekeeping that is not tied to one entity.
type MaintenanceRepository interface {
	// ResetIdentifiers restarts the identifier sequences of all four tables.
	// Identifier values are cosmetic, only uniqueness matters, so callers
	// treat a returned error as a warning and continue.
	ResetIdentifiers(ctx context.Context) error
}

// maintenanceRepository implements MaintenanceRepository using PostgreSQL.
type maintenanceRepository struct {
	db *database.DB
}

// NewMaintenanceRepository creates a new maintenance repository.
func NewMaintenanceRepository(db *database.DB) MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func (r *maintenanceRepository) ResetIdentifiers(ctx context.Context) error {
	q := r.db.Querier(ctx)
	_, inTx := database.TxFrom(ctx)

	var errs []error
	for _, table := range []string{"games", "rounds", "sessions", "players"} {
		// Inside a transaction a failed statement poisons everything after
		// it, so each reset runs under a savepoint to keep a failure from
		// aborting the surrounding import.
		if inTx {
			if _, err := q.Exec(ctx, `SAVEPOINT reset_identifiers`); err != nil {
				errs = append(errs, fmt.Errorf("failed to set savepoint: %w", err))
				break
			}
		}

		_, err := q.Exec(ctx,
			`SELECT setval(pg_get_serial_sequence($1, 'id'), 1, false)`, table)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to reset %s identifiers: %w", table, err))
			if inTx {
				if _, err := q.Exec(ctx, `ROLLBACK TO SAVEPOINT reset_identifiers`); err != nil {
					errs = append(errs, fmt.Errorf("failed to roll back savepoint: %w", err))
					break
				}
			}
			continue
		}

		if inTx {
			if _, err := q.Exec(ctx, `RELEASE SAVEPOINT reset_identifiers`); err != nil {
				errs = append(errs, fmt.Errorf("failed to release savepoint: %w", err))
				break
			}
		}
	}
	return errors.Join(errs...)
}

// Ensure maintenanceRepository implements MaintenanceRepository at compile time.
var _ MaintenanceRepository = (*maintenanceRepository)(nil)
