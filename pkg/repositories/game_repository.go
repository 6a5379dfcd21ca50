package repositories

import (
	"context"
	"fmt"

	"github.com/matchlog-io/matchlog-engine/pkg/database"
	"github.com/matchlog-io/matchlog-engine/pkg/models"
)

// GameRepository defines data access for the games table.
type GameRepository interface {
	Insert(ctx context.Context, game *models.Game) error
	DeleteAll(ctx context.Context) error
}

// gameRepository implements GameRepository using PostgreSQL.
type gameRepository struct {
	db *database.DB
}

// NewGameRepository creates a new game repository.
func NewGameRepository(db *database.DB) GameRepository {
	return &gameRepository{db: db}
}

// Insert stores one game. Nothing references games, so the assigned
// identifier is not resolved.
func (r *gameRepository) Insert(ctx context.Context, game *models.Game) error {
	_, err := r.db.Querier(ctx).Exec(ctx,
		`INSERT INTO games (round_id, player1_id, player2_id, player1_score, player2_score)
		 VALUES ($1, $2, $3, $4, $5)`,
		game.RoundID, game.Player1ID, game.Player2ID, game.Player1Score, game.Player2Score)
	if err != nil {
		return fmt.Errorf("failed to insert game for round %d: %w", game.RoundID, err)
	}
	return nil
}

func (r *gameRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Querier(ctx).Exec(ctx, `DELETE FROM games`); err != nil {
		return fmt.Errorf("failed to delete games: %w", err)
	}
	return nil
}

// Ensure gameRepository implements GameRepository at compile time.
var _ GameRepository = (*gameRepository)(nil)
