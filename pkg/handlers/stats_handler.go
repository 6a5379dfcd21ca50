package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/matchlog-io/matchlog-engine/pkg/apperrors"
	"github.com/matchlog-io/matchlog-engine/pkg/models"
	"github.com/matchlog-io/matchlog-engine/pkg/services"
)

// LeaderboardResponse for GET /api/leaderboard.
type LeaderboardResponse struct {
	Leaderboard []*models.LeaderboardRow `json:"leaderboard"`
}

// PlayerGamesResponse for GET /api/players/{name}/games.
type PlayerGamesResponse struct {
	Player string               `json:"player"`
	Games  []*models.PlayerGame `json:"games"`
}

// StatsHandler serves the read-only projections.
type StatsHandler struct {
	statsService services.StatsService
	logger       *zap.Logger
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsService services.StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{statsService: statsService, logger: logger}
}

// Leaderboard handles GET /api/leaderboard.
func (h *StatsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.statsService.Leaderboard(r.Context())
	if err != nil {
		h.logger.Error("Failed to build leaderboard", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "failed to build leaderboard")
		return
	}
	if board == nil {
		board = []*models.LeaderboardRow{}
	}

	if err := WriteJSON(w, http.StatusOK, LeaderboardResponse{Leaderboard: board}); err != nil {
		h.logger.Error("Failed to encode leaderboard response", zap.Error(err))
	}
}

// PlayerGames handles GET /api/players/{name}/games.
func (h *StatsHandler) PlayerGames(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "missing player name")
		return
	}

	games, err := h.statsService.PlayerGames(r.Context(), name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, "player not found")
			return
		}
		h.logger.Error("Failed to fetch player games", zap.String("player", name), zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "failed to fetch player games")
		return
	}
	if games == nil {
		games = []*models.PlayerGame{}
	}

	if err := WriteJSON(w, http.StatusOK, PlayerGamesResponse{Player: name, Games: games}); err != nil {
		h.logger.Error("Failed to encode player games response", zap.Error(err))
	}
}
