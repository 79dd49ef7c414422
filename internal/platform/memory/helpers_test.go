package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/memory"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// stepClock advances by a fixed step on every reading so each mutation gets
// a distinct, predictable timestamp.
type stepClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

func newStepClock(start time.Time, step time.Duration) *stepClock {
	return &stepClock{next: start, step: step}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(c.step)
	return now
}

func (c *stepClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next = t
}

type fixture struct {
	clock *stepClock
	db    *memory.DB
	tasks *memory.TaskStore
	tags  *memory.TagStore
	stats *memory.StatsStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := newStepClock(epoch, time.Minute)
	db := memory.NewDB(memory.WithClock(clock.Now))
	return &fixture{
		clock: clock,
		db:    db,
		tasks: memory.NewTaskStore(db, nil),
		tags:  memory.NewTagStore(db, nil),
		stats: memory.NewStatsStore(db, nil),
	}
}

func (f *fixture) createTask(t *testing.T, params domain.NewTaskParams) *domain.Task {
	t.Helper()
	if params.Type == "" {
		params.Type = domain.TaskTypeSimple
	}
	task, err := f.tasks.Create(context.Background(), params)
	require.NoError(t, err)
	return task
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }
