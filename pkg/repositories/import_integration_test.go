package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/matchlog-io/matchlog-engine/pkg/importer"
	"github.com/matchlog-io/matchlog-engine/pkg/repositories"
	"github.com/matchlog-io/matchlog-engine/pkg/services"
	"github.com/matchlog-io/matchlog-engine/pkg/testhelpers"
)

func newIntegrationService(t *testing.T) (*testhelpers.TestDB, services.ImportService) {
	t.Helper()
	tdb := testhelpers.GetTestDB(t, "../../migrations")
	tdb.Truncate(t)

	db := tdb.DB
	svc := services.NewImportService(
		db,
		repositories.NewPlayerRepository(db),
		repositories.NewSessionRepository(db),
		repositories.NewRoundRepository(db),
		repositories.NewGameRepository(db),
		repositories.NewMaintenanceRepository(db),
		zap.NewNop(),
	)
	return tdb, svc
}

func importBody(t *testing.T, svc services.ImportService, records []importer.RawRecord) *services.ImportSummary {
	t.Helper()
	summary, err := svc.Run(context.Background(), records)
	require.NoError(t, err)
	return summary
}

func record(date, player, opponent string, myScore, oppScore int) importer.RawRecord {
	return importer.RawRecord{
		Date:     []byte(`"` + date + `"`),
		Player:   []byte(`"` + player + `"`),
		Opponent: []byte(`"` + opponent + `"`),
		MyScore:  []byte{'0' + byte(myScore)},
		OppScore: []byte{'0' + byte(oppScore)},
	}
}

func TestIntegration_ImportRoundTrip(t *testing.T) {
	tdb, svc := newIntegrationService(t)

	summary := importBody(t, svc, []importer.RawRecord{
		record("2026-02-12", "bob", "Alice", 5, 7),
		record("2026-02-12", "Alice", "bob", 7, 5), // same match, other side
		record("2026-02-12", "Alice", "Cid", 3, 1),
	})

	assert.Equal(t, 3, summary.Received)
	assert.Equal(t, 2, summary.Deduped)
	assert.True(t, summary.Wiped)
	assert.Equal(t, services.InsertedCounts{Players: 3, Sessions: 1, Rounds: 2, Games: 2}, summary.Inserted)

	stats := repositories.NewStatsRepository(tdb.DB)
	board, err := stats.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, "Alice", board[0].Name)
	assert.Equal(t, 2, board[0].Wins)

	games, err := stats.PlayerGames(context.Background(), "Alice")
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "2026-02-12", games[0].Date)
	assert.Equal(t, importer.UnknownLocation, games[0].Location)
}

func TestIntegration_ReimportReplacesDataset(t *testing.T) {
	tdb, svc := newIntegrationService(t)

	importBody(t, svc, []importer.RawRecord{
		record("2026-02-12", "Old", "Timer", 1, 2),
	})
	summary := importBody(t, svc, []importer.RawRecord{
		record("2026-03-01", "Ann", "Bob", 4, 6),
	})
	assert.True(t, summary.Wiped)

	stats := repositories.NewStatsRepository(tdb.DB)
	board, err := stats.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, board, 2)
	for _, row := range board {
		assert.NotEqual(t, "Old", row.Name)
	}
}

func TestIntegration_EmptyImportLeavesStoreUntouched(t *testing.T) {
	tdb, svc := newIntegrationService(t)

	importBody(t, svc, []importer.RawRecord{
		record("2026-02-12", "Ann", "Bob", 4, 6),
	})
	summary := importBody(t, svc, nil)
	assert.False(t, summary.Wiped)

	stats := repositories.NewStatsRepository(tdb.DB)
	board, err := stats.Leaderboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, board, 2)
}

func TestIntegration_CreateAndResolveFallbackLookup(t *testing.T) {
	tdb, _ := newIntegrationService(t)
	ctx := context.Background()

	players := repositories.NewPlayerRepository(tdb.DB)
	id, err := players.CreateAndResolve(ctx, "Resolver")
	require.NoError(t, err)
	assert.Positive(t, id)

	// The natural-key lookup path must agree with the returned identifier.
	var lookedUp int64
	err = tdb.DB.QueryRow(ctx, `SELECT id FROM players WHERE name = $1`, "Resolver").Scan(&lookedUp)
	require.NoError(t, err)
	assert.Equal(t, id, lookedUp)
}
