package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/domain/contribution"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// ContributionsQuery holds the optional bounds of a contribution calendar request.
// A zero Days means contribution.DefaultDays.
type ContributionsQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
	Days      int
}

// StatsService provides aggregate views over tasks
type StatsService interface {
	// GetStatistics counts tasks by state.
	GetStatistics(ctx context.Context) (*domain.TaskStatistics, error)

	// GetContributions builds the completion calendar for the window described by query.
	GetContributions(ctx context.Context, query ContributionsQuery) (*contribution.Result, error)
}

// StatsServiceOption configures a StatsService.
type StatsServiceOption func(*statsServiceImpl)

// WithStatsClock overrides the clock that decides what "today" is.
func WithStatsClock(now func() time.Time) StatsServiceOption {
	return func(s *statsServiceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

// statsServiceImpl implements the StatsService interface
type statsServiceImpl struct {
	stats  store.StatsStore
	now    func() time.Time
	logger *slog.Logger
}

// NewStatsService creates a new StatsService.
// It returns an error if the stats store is nil.
func NewStatsService(
	stats store.StatsStore,
	logger *slog.Logger,
	opts ...StatsServiceOption,
) (StatsService, error) {
	if stats == nil {
		return nil, domain.NewValidationError("stats", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &statsServiceImpl{
		stats:  stats,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.With(slog.String("component", "stats_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GetStatistics implements StatsService.GetStatistics
func (s *statsServiceImpl) GetStatistics(ctx context.Context) (*domain.TaskStatistics, error) {
	stats, err := s.stats.Statistics(ctx)
	if err != nil {
		return nil, NewServiceError("stats", "get_statistics", "failed to count tasks", err)
	}
	return stats, nil
}

// GetContributions implements StatsService.GetContributions
func (s *statsServiceImpl) GetContributions(
	ctx context.Context,
	query ContributionsQuery,
) (*contribution.Result, error) {
	days := query.Days
	if days == 0 {
		days = contribution.DefaultDays
	}

	window, err := contribution.ResolveWindow(query.StartDate, query.EndDate, days, s.now())
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Debug("rejected contribution window",
			slog.Int("days", days),
			slog.String("error", err.Error()))
		return nil, NewServiceError("stats", "get_contributions", "invalid window", err)
	}

	result, err := s.stats.Contributions(ctx, window)
	if err != nil {
		return nil, NewServiceError("stats", "get_contributions", "failed to build calendar", err)
	}
	return result, nil
}
