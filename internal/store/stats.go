package store

import (
	"context"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/domain/contribution"
)

// StatsStore defines read-only aggregate queries over the stored tasks.
type StatsStore interface {
	// Statistics counts tasks by state.
	Statistics(ctx context.Context) (*domain.TaskStatistics, error)

	// Contributions builds the completion calendar for window from the
	// completedAt timestamps of every task, archived or not.
	Contributions(ctx context.Context, window contribution.Window) (*contribution.Result, error)
}
