package memory

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// DB is the shared in-memory state behind the task, tag and stats stores.
type DB struct {
	mu sync.RWMutex

	tasks map[string]*domain.Task
	tags  map[string]*domain.Tag
	// tagOrder holds tag IDs in insertion order.
	tagOrder []string

	now func() time.Time
}

// Option configures a DB.
type Option func(*DB)

// WithClock overrides the clock used to stamp createdAt, updatedAt and completedAt.
func WithClock(now func() time.Time) Option {
	return func(db *DB) {
		if now != nil {
			db.now = now
		}
	}
}

// NewDB returns an empty DB.
func NewDB(opts ...Option) *DB {
	db := &DB{
		tasks: make(map[string]*domain.Task),
		tags:  make(map[string]*domain.Tag),
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Now returns the current time according to the DB clock.
func (db *DB) Now() time.Time {
	return db.now()
}

// read runs fn under the shared lock.
func (db *DB) read(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.RLock()
	defer db.mu.RUnlock()
	return fn()
}

// write runs fn under the exclusive lock. fn must leave state untouched when
// it returns an error.
func (db *DB) write(ctx context.Context, fn func(now time.Time) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	return fn(db.now())
}
