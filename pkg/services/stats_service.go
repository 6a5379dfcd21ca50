package services

import (
	"context"

	"github.com/matchlog-io/matchlog-engine/pkg/models"
	"github.com/matchlog-io/matchlog-engine/pkg/repositories"
)

// StatsService serves the read-only projections over the imported dataset.
// Readers are not coordinated with imports; isolation comes from the store.
type StatsService interface {
	Leaderboard(ctx context.Context) ([]*models.LeaderboardRow, error)
	PlayerGames(ctx context.Context, name string) ([]*models.PlayerGame, error)
}

type statsService struct {
	stats repositories.StatsRepository
}

// NewStatsService creates a new stats service.
func NewStatsService(stats repositories.StatsRepository) StatsService {
	return &statsService{stats: stats}
}

func (s *statsService) Leaderboard(ctx context.Context) ([]*models.LeaderboardRow, error) {
	return s.stats.Leaderboard(ctx)
}

func (s *statsService) PlayerGames(ctx context.Context, name string) ([]*models.PlayerGame, error) {
	return s.stats.PlayerGames(ctx, name)
}

// Ensure statsService implements StatsService at compile time.
var _ StatsService = (*statsService)(nil)
