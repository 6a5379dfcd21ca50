package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/matchlog-io/matchlog-engine/pkg/apperrors"
	"github.com/matchlog-io/matchlog-engine/pkg/database"
	"github.com/matchlog-io/matchlog-engine/pkg/models"
)

// StatsRepository serves the read-only projections over the four tables the
// import engine populates: the leaderboard and per-player game history.
type StatsRepository interface {
	Leaderboard(ctx context.Context) ([]*models.LeaderboardRow, error)
	// PlayerGames returns a player's games in session and round order,
	// oriented from the player's perspective. Returns apperrors.ErrNotFound
	// for an unknown player.
	PlayerGames(ctx context.Context, name string) ([]*models.PlayerGame, error)
}

// statsRepository implements StatsRepository using PostgreSQL.
type statsRepository struct {
	db *database.DB
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(db *database.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Leaderboard(ctx context.Context) ([]*models.LeaderboardRow, error) {
	query := `
		SELECT p.name,
		       COUNT(g.id) AS games,
		       COUNT(g.id) FILTER (WHERE (g.player1_id = p.id AND g.player1_score > g.player2_score)
		                              OR (g.player2_id = p.id AND g.player2_score > g.player1_score)) AS wins,
		       COUNT(g.id) FILTER (WHERE (g.player1_id = p.id AND g.player1_score < g.player2_score)
		                              OR (g.player2_id = p.id AND g.player2_score < g.player1_score)) AS losses,
		       COUNT(g.id) FILTER (WHERE g.player1_score = g.player2_score) AS draws,
		       COALESCE(SUM(CASE WHEN g.player1_id = p.id THEN g.player1_score
		                         WHEN g.player2_id = p.id THEN g.player2_score END), 0) AS points
		FROM players p
		LEFT JOIN games g ON g.player1_id = p.id OR g.player2_id = p.id
		GROUP BY p.id, p.name
		ORDER BY wins DESC, points DESC, p.name`

	rows, err := r.db.Querier(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var board []*models.LeaderboardRow
	for rows.Next() {
		var row models.LeaderboardRow
		if err := rows.Scan(&row.Name, &row.Games, &row.Wins, &row.Losses, &row.Draws, &row.Points); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		board = append(board, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard: %w", err)
	}

	return board, nil
}

func (r *statsRepository) PlayerGames(ctx context.Context, name string) ([]*models.PlayerGame, error) {
	q := r.db.Querier(ctx)

	var playerID int64
	err := q.QueryRow(ctx, `SELECT id FROM players WHERE name = $1`, name).Scan(&playerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("player %q: %w", name, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up player %q: %w", name, err)
	}

	query := `
		SELECT s.date::text, s.location, r.round_number,
		       CASE WHEN g.player1_id = $1 THEN p2.name ELSE p1.name END AS opponent,
		       CASE WHEN g.player1_id = $1 THEN g.player1_score ELSE g.player2_score END AS player_score,
		       CASE WHEN g.player1_id = $1 THEN g.player2_score ELSE g.player1_score END AS opponent_score
		FROM games g
		JOIN rounds r ON r.id = g.round_id
		JOIN sessions s ON s.id = r.session_id
		JOIN players p1 ON p1.id = g.player1_id
		JOIN players p2 ON p2.id = g.player2_id
		WHERE g.player1_id = $1 OR g.player2_id = $1
		ORDER BY s.date, s.location, r.round_number`

	rows, err := q.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query games for %q: %w", name, err)
	}
	defer rows.Close()

	var games []*models.PlayerGame
	for rows.Next() {
		var pg models.PlayerGame
		if err := rows.Scan(&pg.Date, &pg.Location, &pg.RoundNumber,
			&pg.Opponent, &pg.PlayerScore, &pg.OpponentScore); err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		games = append(games, &pg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}

// Ensure statsRepository implements StatsRepository at compile time.
var _ StatsRepository = (*statsRepository)(nil)
