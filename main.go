package main

import (
	"context"
	"database/sql"
	"log"
	"net"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for migrations
	"go.uber.org/zap"

	"github.com/matchlog-io/matchlog-engine/pkg/auth"
	"github.com/matchlog-io/matchlog-engine/pkg/config"
	"github.com/matchlog-io/matchlog-engine/pkg/database"
	"github.com/matchlog-io/matchlog-engine/pkg/handlers"
	"github.com/matchlog-io/matchlog-engine/pkg/logging"
	"github.com/matchlog-io/matchlog-engine/pkg/middleware"
	"github.com/matchlog-io/matchlog-engine/pkg/repositories"
	"github.com/matchlog-io/matchlog-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("version", cfg.Version),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.ConnectionString())))

	ctx := context.Background()

	// Migrations run over database/sql; the engine itself uses pgx directly.
	migrationDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(migrationDB, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	_ = migrationDB.Close()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database",
			zap.String("error", logging.SanitizeError(err)))
	}
	defer db.Close()

	playerRepo := repositories.NewPlayerRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	roundRepo := repositories.NewRoundRepository(db)
	gameRepo := repositories.NewGameRepository(db)
	maintRepo := repositories.NewMaintenanceRepository(db)
	statsRepo := repositories.NewStatsRepository(db)

	importService := services.NewImportService(
		db, playerRepo, sessionRepo, roundRepo, gameRepo, maintRepo, logger)
	statsService := services.NewStatsService(statsRepo)

	authMiddleware := auth.NewMiddleware(
		auth.NewAuthService(cfg.Auth.TokenSecret), cfg.Auth.EnableVerification, logger)

	importHandler := handlers.NewImportHandler(importService, logger)
	statsHandler := handlers.NewStatsHandler(statsService, logger)
	healthHandler := handlers.NewHealthHandler(cfg, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ping", healthHandler.Ping)
	mux.HandleFunc("POST /api/import", authMiddleware.RequireToken(importHandler.Import))
	mux.HandleFunc("GET /api/leaderboard", statsHandler.Leaderboard)
	mux.HandleFunc("GET /api/players/{name}/games", statsHandler.PlayerGames)

	handler := middleware.RequestLogger(logger)(mux)

	addr := net.JoinHostPort(cfg.BindAddr, cfg.Port)
	logger.Info("Starting matchlog-engine", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newLogger builds a production logger, or a development one for local runs.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
