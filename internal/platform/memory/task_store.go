package memory

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TaskStore implements the store.TaskStore interface on top of a DB.
type TaskStore struct {
	db     *DB
	logger *slog.Logger
}

// NewTaskStore creates a new in-memory implementation of the TaskStore interface.
// If logger is nil, a default logger will be used.
func NewTaskStore(db *DB, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil") // ALLOW-PANIC: constructor misuse
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// List implements store.TaskStore.List.
// Matching tasks are ordered by creation time, newest first, with ties broken by ID.
func (s *TaskStore) List(ctx context.Context, filter store.TaskFilter) (*store.TaskPage, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var matched []*domain.Task
	err := s.db.read(ctx, func() error {
		for _, task := range s.db.tasks {
			if filter.Matches(task) {
				matched = append(matched, task.Clone())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	page := &store.TaskPage{
		Items: []*domain.Task{},
		Total: len(matched),
	}

	start := filter.Offset()
	if start < len(matched) {
		end := len(matched)
		if filter.Limit < end-start {
			end = start + filter.Limit
		}
		page.Items = matched[start:end]
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("listed tasks",
		slog.String("status", string(filter.Status)),
		slog.Bool("archived", filter.Archived),
		slog.Int("page", filter.Page),
		slog.Int("limit", filter.Limit),
		slog.Int("total", page.Total),
		slog.Int("returned", len(page.Items)))

	return page, nil
}

// Get implements store.TaskStore.Get.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) Get(ctx context.Context, id string) (*domain.Task, error) {
	var task *domain.Task
	err := s.db.read(ctx, func() error {
		stored, ok := s.db.tasks[id]
		if !ok {
			return store.ErrTaskNotFound
		}
		task = stored.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Create implements store.TaskStore.Create.
// Returns domain validation errors if params are invalid.
func (s *TaskStore) Create(ctx context.Context, params domain.NewTaskParams) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var created *domain.Task
	err := s.db.write(ctx, func(now time.Time) error {
		task, err := domain.NewTask(params, now)
		if err != nil {
			return store.NewStoreError("task", "create", "invalid task", err)
		}
		s.db.tasks[task.ID] = task
		created = task.Clone()
		return nil
	})
	if err != nil {
		log.Debug("task creation rejected", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("task created",
		slog.String("task_id", created.ID),
		slog.String("type", string(created.Type)))
	return created, nil
}

// Update implements store.TaskStore.Update.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	return s.mutate(ctx, "update", id, func(task *domain.Task, now time.Time) error {
		return task.ApplyPatch(patch, now)
	})
}

// Delete implements store.TaskStore.Delete.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	err := s.db.write(ctx, func(time.Time) error {
		if _, ok := s.db.tasks[id]; !ok {
			return store.ErrTaskNotFound
		}
		delete(s.db.tasks, id)
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("task deleted", slog.String("task_id", id))
	return nil
}

// ToggleCompletion implements store.TaskStore.ToggleCompletion.
func (s *TaskStore) ToggleCompletion(ctx context.Context, id string) (*domain.Task, error) {
	return s.mutate(ctx, "toggle", id, func(task *domain.Task, now time.Time) error {
		task.ToggleCompletion(now)
		return nil
	})
}

// Archive implements store.TaskStore.Archive.
func (s *TaskStore) Archive(ctx context.Context, id string) (*domain.Task, error) {
	return s.mutate(ctx, "archive", id, func(task *domain.Task, now time.Time) error {
		task.Archive(now)
		return nil
	})
}

// Restore implements store.TaskStore.Restore.
func (s *TaskStore) Restore(ctx context.Context, id string) (*domain.Task, error) {
	return s.mutate(ctx, "restore", id, func(task *domain.Task, now time.Time) error {
		task.Restore(now)
		return nil
	})
}

// AddSubTask implements store.TaskStore.AddSubTask.
// Returns domain.ErrSimpleTaskSubTasks if the task is not advanced.
func (s *TaskStore) AddSubTask(ctx context.Context, taskID, title string) (*domain.Task, error) {
	return s.mutate(ctx, "add_subtask", taskID, func(task *domain.Task, now time.Time) error {
		_, err := task.AddSubTask(title, now)
		return err
	})
}

// UpdateSubTask implements store.TaskStore.UpdateSubTask.
func (s *TaskStore) UpdateSubTask(
	ctx context.Context,
	taskID, subTaskID string,
	patch domain.SubTaskPatch,
) (*domain.Task, error) {
	return s.mutate(ctx, "update_subtask", taskID, func(task *domain.Task, now time.Time) error {
		return task.UpdateSubTask(subTaskID, patch, now)
	})
}

// ToggleSubTask implements store.TaskStore.ToggleSubTask.
func (s *TaskStore) ToggleSubTask(ctx context.Context, taskID, subTaskID string) (*domain.Task, error) {
	return s.mutate(ctx, "toggle_subtask", taskID, func(task *domain.Task, now time.Time) error {
		return task.ToggleSubTask(subTaskID, now)
	})
}

// DeleteSubTask implements store.TaskStore.DeleteSubTask.
func (s *TaskStore) DeleteSubTask(ctx context.Context, taskID, subTaskID string) (*domain.Task, error) {
	return s.mutate(ctx, "delete_subtask", taskID, func(task *domain.Task, now time.Time) error {
		return task.DeleteSubTask(subTaskID, now)
	})
}

// mutate applies fn to a copy of the stored task under the write lock and
// swaps the copy in only if fn succeeds.
func (s *TaskStore) mutate(
	ctx context.Context,
	operation, id string,
	fn func(task *domain.Task, now time.Time) error,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Task
	err := s.db.write(ctx, func(now time.Time) error {
		stored, ok := s.db.tasks[id]
		if !ok {
			return store.ErrTaskNotFound
		}

		working := stored.Clone()
		if err := fn(working, now); err != nil {
			if errors.Is(err, domain.ErrSubTaskNotFound) {
				return store.ErrSubTaskNotFound
			}
			return store.NewStoreError("task", operation, "change rejected", err)
		}

		s.db.tasks[id] = working
		updated = working.Clone()
		return nil
	})
	if err != nil {
		log.Debug("task mutation failed",
			slog.String("operation", operation),
			slog.String("task_id", id),
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("task mutated",
		slog.String("operation", operation),
		slog.String("task_id", id),
		slog.Bool("completed", updated.Completed),
		slog.Bool("archived", updated.Archived))
	return updated, nil
}
