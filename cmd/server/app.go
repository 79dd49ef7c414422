package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/events"
	"github.com/phrazzld/taskboard-api/internal/platform/memory"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *memory.DB

	// Stores (using interfaces for proper abstraction)
	taskStore  store.TaskStore
	tagStore   store.TagStore
	statsStore store.StatsStore

	// Service interfaces
	taskService  service.TaskService
	tagService   service.TagService
	statsService service.StatsService

	// Event system
	eventEmitter events.EventEmitter
	activityLog  *events.ActivityLog
}

// newApplication creates a new application instance with all dependencies initialized.
// dbOpts configure the in-memory database; the statistics service shares its clock.
func newApplication(cfg *config.Config, logger *slog.Logger, dbOpts ...memory.Option) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     memory.NewDB(dbOpts...),
	}

	// Initialize stores
	app.taskStore = memory.NewTaskStore(app.db, logger)
	app.tagStore = memory.NewTagStore(app.db, logger)
	app.statsStore = memory.NewStatsStore(app.db, logger)

	// Initialize event emitter and register the activity log
	emitter := events.NewInMemoryEventEmitter(logger)
	app.activityLog = events.NewActivityLog(logger)
	emitter.RegisterHandler(app.activityLog)
	app.eventEmitter = emitter

	var err error

	app.taskService, err = service.NewTaskService(app.taskStore, app.tagStore, app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.tagService, err = service.NewTagService(app.tagStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag service: %w", err)
	}

	app.statsService, err = service.NewStatsService(app.statsStore, logger, service.WithStatsClock(app.db.Now))
	if err != nil {
		return nil, fmt.Errorf("failed to create stats service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources. The in-memory
// state is discarded with the process.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed",
		slog.Int("tasks_created", app.activityLog.Count(events.TypeTaskCreated)),
		slog.Int("tasks_completed", app.activityLog.Count(events.TypeTaskCompleted)))
}
