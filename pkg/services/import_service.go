package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matchlog-io/matchlog-engine/pkg/database"
	"github.com/matchlog-io/matchlog-engine/pkg/importer"
	"github.com/matchlog-io/matchlog-engine/pkg/models"
	"github.com/matchlog-io/matchlog-engine/pkg/repositories"
)

// InsertedCounts reports how many rows of each entity an import wrote.
type InsertedCounts struct {
	Players  int `json:"players"`
	Sessions int `json:"sessions"`
	Rounds   int `json:"rounds"`
	Games    int `json:"games"`
}

// ImportSummary is the outcome of one import run.
type ImportSummary struct {
	ImportID   uuid.UUID
	Received   int
	Normalized int
	Deduped    int
	Wiped      bool
	Inserted   InsertedCounts
	Message    string
	Warnings   []string
}

// ImportService runs the full-replace import pipeline: normalization,
// canonicalization, deduplication, entity derivation, and the transactional
// load.
type ImportService interface {
	Run(ctx context.Context, records []importer.RawRecord) (*ImportSummary, error)
}

// importService implements ImportService.
type importService struct {
	tx       database.TxRunner
	players  repositories.PlayerRepository
	sessions repositories.SessionRepository
	rounds   repositories.RoundRepository
	games    repositories.GameRepository
	maint    repositories.MaintenanceRepository
	logger   *zap.Logger

	// The wipe-then-reinsert sequence must not interleave with another
	// import against the same store.
	mu sync.Mutex
}

// NewImportService creates a new import service.
func NewImportService(
	tx database.TxRunner,
	players repositories.PlayerRepository,
	sessions repositories.SessionRepository,
	rounds repositories.RoundRepository,
	games repositories.GameRepository,
	maint repositories.MaintenanceRepository,
	logger *zap.Logger,
) ImportService {
	return &importService{
		tx:       tx,
		players:  players,
		sessions: sessions,
		rounds:   rounds,
		games:    games,
		maint:    maint,
		logger:   logger,
	}
}

// Run replaces the whole dataset with the given records. Per-record problems
// are recovered locally and reported as warnings; any storage problem aborts
// the entire import and leaves the store as it was.
func (s *importService) Run(ctx context.Context, records []importer.RawRecord) (*ImportSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := &ImportSummary{
		ImportID: uuid.New(),
		Received: len(records),
		Warnings: []string{},
	}
	logger := s.logger.With(zap.String("import_id", summary.ImportID.String()))

	candidates := make([]importer.CanonicalGame, 0, len(records))
	for i, raw := range records {
		normalized, err := importer.Normalize(raw)
		if err != nil {
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("record %d: %v", i, err))
			continue
		}
		candidates = append(candidates, importer.Canonicalize(normalized, i))
	}
	summary.Normalized = len(candidates)

	deduped := importer.Dedupe(candidates)
	summary.Deduped = len(deduped)
	importer.SortDeterministic(deduped)

	derived := importer.Derive(deduped)
	summary.Warnings = append(summary.Warnings, derived.Skipped...)

	// Guard: never wipe existing data when nothing valid would replace it.
	if len(derived.Records) == 0 {
		summary.Message = "no valid records in import; existing data left untouched"
		logger.Info("Import skipped, nothing valid to load",
			zap.Int("received", summary.Received),
			zap.Int("warnings", len(summary.Warnings)))
		return summary, nil
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.load(ctx, derived, summary, logger)
	})
	if err != nil {
		logger.Error("Import failed, rolled back", zap.Error(err))
		return nil, err
	}

	summary.Wiped = true
	logger.Info("Import committed",
		zap.Int("received", summary.Received),
		zap.Int("normalized", summary.Normalized),
		zap.Int("deduped", summary.Deduped),
		zap.Int("players", summary.Inserted.Players),
		zap.Int("sessions", summary.Inserted.Sessions),
		zap.Int("rounds", summary.Inserted.Rounds),
		zap.Int("games", summary.Inserted.Games))
	return summary, nil
}

// load performs the destructive replacement. It runs inside one transaction;
// returning an error rolls everything back.
func (s *importService) load(ctx context.Context, derived importer.Derived, summary *ImportSummary, logger *zap.Logger) error {
	// Wipe children before parents to satisfy referential constraints.
	if err := s.games.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.rounds.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.sessions.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.players.DeleteAll(ctx); err != nil {
		return err
	}

	// Identifier values are cosmetic; a failed reset is logged and ignored.
	if err := s.maint.ResetIdentifiers(ctx); err != nil {
		logger.Warn("Failed to reset identifier sequences", zap.Error(err))
	}

	playerIDs := make(map[string]int64, len(derived.Players))
	for _, name := range derived.Players {
		id, err := s.players.CreateAndResolve(ctx, name)
		if err != nil {
			return err
		}
		playerIDs[name] = id
		summary.Inserted.Players++
	}

	sessionIDs := make(map[importer.SessionKey]int64, len(derived.Sessions))
	for _, key := range derived.Sessions {
		id, err := s.sessions.CreateAndResolve(ctx, key.Date, key.Location)
		if err != nil {
			return err
		}
		sessionIDs[key] = id
		summary.Inserted.Sessions++
	}

	for _, rec := range derived.Records {
		p1, ok1 := playerIDs[rec.Player1]
		p2, ok2 := playerIDs[rec.Player2]
		if !ok1 || !ok2 {
			return fmt.Errorf("no resolved player id for game %q vs %q on %s",
				rec.Player1, rec.Player2, rec.Date)
		}
		if p1 == p2 {
			summary.Warnings = append(summary.Warnings,
				fmt.Sprintf("record %d: resolved to self-match, skipped", rec.Src))
			continue
		}

		roundID, err := s.rounds.CreateAndResolve(ctx, sessionIDs[rec.Session], rec.RoundNumber)
		if err != nil {
			return err
		}
		summary.Inserted.Rounds++

		if err := s.games.Insert(ctx, &models.Game{
			RoundID:      roundID,
			Player1ID:    p1,
			Player2ID:    p2,
			Player1Score: rec.Score1,
			Player2Score: rec.Score2,
		}); err != nil {
			return err
		}
		summary.Inserted.Games++
	}

	return nil
}

// Ensure importService implements ImportService at compile time.
var _ ImportService = (*importService)(nil)
