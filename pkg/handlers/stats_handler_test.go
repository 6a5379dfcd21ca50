package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/matchlog-io/matchlog-engine/pkg/apperrors"
	"github.com/matchlog-io/matchlog-engine/pkg/models"
)

// mockStatsService implements services.StatsService for handler tests.
type mockStatsService struct {
	board    []*models.LeaderboardRow
	games    []*models.PlayerGame
	boardErr error
	gamesErr error
}

func (m *mockStatsService) Leaderboard(ctx context.Context) ([]*models.LeaderboardRow, error) {
	return m.board, m.boardErr
}

func (m *mockStatsService) PlayerGames(ctx context.Context, name string) ([]*models.PlayerGame, error) {
	return m.games, m.gamesErr
}

func TestStatsHandler_Leaderboard(t *testing.T) {
	mock := &mockStatsService{board: []*models.LeaderboardRow{
		{Name: "Alice", Games: 3, Wins: 2, Losses: 1, Points: 19},
		{Name: "bob", Games: 3, Wins: 1, Losses: 2, Points: 12},
	}}
	h := NewStatsHandler(mock, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	rec := httptest.NewRecorder()
	h.Leaderboard(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp LeaderboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Leaderboard, 2)
	assert.Equal(t, "Alice", resp.Leaderboard[0].Name)
}

func TestStatsHandler_LeaderboardEmpty(t *testing.T) {
	h := NewStatsHandler(&mockStatsService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	rec := httptest.NewRecorder()
	h.Leaderboard(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"leaderboard":[]}`, rec.Body.String())
}

func TestStatsHandler_PlayerGames(t *testing.T) {
	mock := &mockStatsService{games: []*models.PlayerGame{
		{Date: "2026-02-12", Location: "Unknown", RoundNumber: 1, Opponent: "bob", PlayerScore: 7, OpponentScore: 5},
	}}
	h := NewStatsHandler(mock, zap.NewNop())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/players/{name}/games", h.PlayerGames)

	req := httptest.NewRequest(http.MethodGet, "/api/players/Alice/games", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp PlayerGamesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Alice", resp.Player)
	require.Len(t, resp.Games, 1)
	assert.Equal(t, "bob", resp.Games[0].Opponent)
}

func TestStatsHandler_PlayerNotFound(t *testing.T) {
	mock := &mockStatsService{gamesErr: fmt.Errorf("player %q: %w", "nobody", apperrors.ErrNotFound)}
	h := NewStatsHandler(mock, zap.NewNop())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/players/{name}/games", h.PlayerGames)

	req := httptest.NewRequest(http.MethodGet, "/api/players/nobody/games", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
