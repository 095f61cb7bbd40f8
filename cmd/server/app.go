package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/lexvault/srs-api/internal/config"
	"github.com/lexvault/srs-api/internal/domain/srs"
	"github.com/lexvault/srs-api/internal/platform/logger"
	"github.com/lexvault/srs-api/internal/platform/postgres"
	"github.com/lexvault/srs-api/internal/service/items"
	"github.com/lexvault/srs-api/internal/service/review"
)

// application holds the wired dependencies for one server process.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	itemService   items.ItemService
	reviewService review.ReviewService
}

// newApplication loads configuration, connects to the database, and wires
// the service graph.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	engine, err := srs.NewEngine(engineParams(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to build scheduling engine: %w", err)
	}

	itemStore := postgres.NewPostgresItemStore(db, appLogger)
	stateStore := postgres.NewPostgresMemoryStateStore(db, appLogger)
	logStore := postgres.NewPostgresReviewLogStore(db, appLogger)

	itemService := items.NewItemService(
		items.NewItemRepositoryAdapter(itemStore, db),
		items.NewMemoryStateRepositoryAdapter(stateStore),
		appLogger,
	)

	reviewService := review.NewReviewService(
		review.NewMemoryStateRepositoryAdapter(stateStore, db),
		review.NewReviewLogRepositoryAdapter(logStore),
		engine,
		appLogger,
		review.WithCramLogging(cfg.Review.LogCramReviews),
	)

	return &application{
		config:        cfg,
		logger:        appLogger,
		db:            db,
		itemService:   itemService,
		reviewService: reviewService,
	}, nil
}

// engineParams translates review configuration into engine parameters.
// A missing weight table keeps the engine's published defaults.
func engineParams(cfg *config.Config) *srs.Params {
	params := srs.DefaultParams()
	params.DesiredRetention = cfg.Review.DesiredRetention
	params.MaximumInterval = cfg.Review.MaximumIntervalDays
	params.LearningStep = minutes(cfg.Review.LearningStepMinutes)
	params.AgainStep = minutes(cfg.Review.AgainStepMinutes)

	if len(cfg.Review.Weights) == len(params.Weights) {
		copy(params.Weights[:], cfg.Review.Weights)
	}

	return params
}

func minutes(m int) time.Duration {
	return time.Duration(m) * time.Minute
}

// cleanup releases process resources. Safe to call more than once.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", slog.String("error", err.Error()))
		}
		app.db = nil
	}
}
