package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/taskboard-api/internal/events"
	"github.com/phrazzld/taskboard-api/internal/platform/memory"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)

// recordingEmitter captures emitted events.
type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.TaskEvent
	err    error
}

func (r *recordingEmitter) EmitEvent(ctx context.Context, event *events.TaskEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingEmitter) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type services struct {
	db      *memory.DB
	tasks   service.TaskService
	tags    service.TagService
	stats   service.StatsService
	emitter *recordingEmitter
}

func newServices(t *testing.T) *services {
	t.Helper()

	clock := func() time.Time { return fixedNow }
	db := memory.NewDB(memory.WithClock(clock))
	taskStore := memory.NewTaskStore(db, nil)
	tagStore := memory.NewTagStore(db, nil)
	emitter := &recordingEmitter{}

	tasks, err := service.NewTaskService(taskStore, tagStore, emitter, nil)
	require.NoError(t, err)
	tags, err := service.NewTagService(tagStore, nil)
	require.NoError(t, err)
	stats, err := service.NewStatsService(memory.NewStatsStore(db, nil), nil, service.WithStatsClock(clock))
	require.NoError(t, err)

	return &services{db: db, tasks: tasks, tags: tags, stats: stats, emitter: emitter}
}
