package main

import (
	"context"
	"fmt"
	"time"

	"github.com/vytor/speakflash/internal/catalog"
	"github.com/vytor/speakflash/internal/config"
	"github.com/vytor/speakflash/internal/db"
	"github.com/vytor/speakflash/internal/flashcard"
	"github.com/vytor/speakflash/internal/jobs"
	"github.com/vytor/speakflash/internal/logger"
	"github.com/vytor/speakflash/internal/repository/sqlite"
	"github.com/vytor/speakflash/internal/services"
	"github.com/vytor/speakflash/internal/session"
	"github.com/vytor/speakflash/internal/worker"
)

// app holds the wired engine shared by every subcommand.
type app struct {
	cfg         config.Config
	log         *logger.Logger
	db          *db.DB
	catalog     *catalog.Catalog
	ledger      *flashcard.Ledger
	pool        *worker.Pool
	writeBehind *jobs.WriteBehind
	learner     services.LearnerService
	study       services.StudyService
	rush        services.RushService
}

func loadConfig() (config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}
	log.Info("configuration loaded")
	cfg.LogSummary(log)
	return cfg, log, nil
}

func newApp(ctx context.Context) (*app, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	log.Info("catalog loaded: items=%d, categories=%d", cat.Len(), len(cat.Categories()))

	database, err := db.Open(ctx, cfg.DBPath, db.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	progressRepo := sqlite.NewProgressRepository(database.DB)
	prefsRepo := sqlite.NewPreferenceRepository(database.DB)
	rushRepo := sqlite.NewRushRepository(database.DB)

	pool := worker.NewPool(cfg.FlushWorkerCount, cfg.FlushQueueSize)
	pool.Start(ctx)
	writeBehind := jobs.NewWriteBehind(progressRepo, prefsRepo, pool)

	ledger := flashcard.NewLedger(flashcard.WithNotifier(writeBehind), flashcard.WithLogger(log))
	planner := session.NewPlanner(cat, ledger,
		session.WithSessionSize(cfg.SessionSize),
		session.WithMaxDue(cfg.MaxDuePerSession),
		session.WithPlannerLogger(log),
	)
	learner := services.NewLearnerService(cat, ledger, planner, writeBehind, time.Now)

	snapshot, err := services.LoadSnapshot(ctx, progressRepo, prefsRepo)
	if err != nil {
		pool.Stop()
		database.Close()
		return nil, err
	}
	learner.Restore(ctx, snapshot)

	return &app{
		cfg:         cfg,
		log:         log,
		db:          database,
		catalog:     cat,
		ledger:      ledger,
		pool:        pool,
		writeBehind: writeBehind,
		learner:     learner,
		study:       services.NewStudyService(learner, ledger, time.Now),
		rush:        services.NewRushService(cat, rushRepo, learner, time.Now),
	}, nil
}

// Close stops background flushing, writes whatever is still pending and
// closes the database.
func (a *app) Close(ctx context.Context) error {
	a.log.Debug("stopping flush pool")
	a.pool.Stop()

	var firstErr error
	if err := a.writeBehind.Flush(ctx); err != nil {
		a.log.Error("final flush failed: %v", err)
		firstErr = err
	}
	a.log.Debug("closing database connection")
	if err := a.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

type contextCloser interface {
	Close(ctx context.Context) error
}

// closeInto closes c and reports its error through err unless err already
// holds an earlier failure. Meant for deferred use with a named return.
func closeInto(ctx context.Context, c contextCloser, err *error) {
	if cerr := c.Close(ctx); cerr != nil && *err == nil {
		*err = cerr
	}
}
