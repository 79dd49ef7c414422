package memory

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/domain/contribution"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// StatsStore implements the store.StatsStore interface on top of a DB.
type StatsStore struct {
	db     *DB
	logger *slog.Logger
}

// NewStatsStore creates a new in-memory implementation of the StatsStore interface.
// If logger is nil, a default logger will be used.
func NewStatsStore(db *DB, logger *slog.Logger) *StatsStore {
	if db == nil {
		panic("db cannot be nil") // ALLOW-PANIC: constructor misuse
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &StatsStore{
		db:     db,
		logger: logger.With(slog.String("component", "stats_store")),
	}
}

// Ensure StatsStore implements store.StatsStore interface
var _ store.StatsStore = (*StatsStore)(nil)

// Statistics implements store.StatsStore.Statistics.
func (s *StatsStore) Statistics(ctx context.Context) (*domain.TaskStatistics, error) {
	var stats domain.TaskStatistics
	err := s.db.read(ctx, func() error {
		for _, task := range s.db.tasks {
			stats.Add(task)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Contributions implements store.StatsStore.Contributions.
// Only the completion timestamps are copied out under the lock; the calendar
// is built afterwards.
func (s *StatsStore) Contributions(
	ctx context.Context,
	window contribution.Window,
) (*contribution.Result, error) {
	var completions []time.Time
	err := s.db.read(ctx, func() error {
		for _, task := range s.db.tasks {
			if task.CompletedAt != nil && window.Contains(*task.CompletedAt) {
				completions = append(completions, *task.CompletedAt)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := contribution.Compute(completions, window)

	logger.FromContextOrDefault(ctx, s.logger).Debug("computed contributions",
		slog.String("start", window.Start.Format(contribution.DateLayout)),
		slog.String("end", window.End.Format(contribution.DateLayout)),
		slog.Int("total", result.Summary.TotalContributions))
	return &result, nil
}
