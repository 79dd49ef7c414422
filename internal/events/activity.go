package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phrazzld/taskboard-api/internal/platform/logger"
)

// ActivityLog is an EventHandler that writes one INFO line per task event and
// keeps running counts per event type.
type ActivityLog struct {
	logger *slog.Logger

	mu     sync.Mutex
	counts map[string]int
}

// NewActivityLog creates an ActivityLog. If logger is nil, a default logger will be used.
func NewActivityLog(logger *slog.Logger) *ActivityLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityLog{
		logger: logger.With("component", "activity_log"),
		counts: make(map[string]int),
	}
}

var _ EventHandler = (*ActivityLog)(nil)

// HandleEvent implements EventHandler.
func (a *ActivityLog) HandleEvent(ctx context.Context, event *TaskEvent) error {
	var payload TaskPayload
	if len(event.Payload) > 0 {
		if err := event.UnmarshalPayload(&payload); err != nil {
			return err
		}
	}

	a.mu.Lock()
	a.counts[event.Type]++
	a.mu.Unlock()

	logger.FromContextOrDefault(ctx, a.logger).Info("task activity",
		slog.String("event_type", event.Type),
		slog.String("event_id", event.ID.String()),
		slog.String("task_id", event.TaskID),
		slog.String("title", payload.Title),
		slog.String("task_type", payload.TaskType))
	return nil
}

// Count returns how many events of eventType have been handled.
func (a *ActivityLog) Count(eventType string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counts[eventType]
}
