package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/events"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TaskService provides task-related operations
type TaskService interface {
	// ListTasks returns one page of tasks matching filter.
	ListTasks(ctx context.Context, filter store.TaskFilter) (*store.TaskPage, error)

	// GetTask retrieves a task by its ID.
	GetTask(ctx context.Context, id string) (*domain.Task, error)

	// CreateTask creates a task after checking that every referenced tag exists.
	CreateTask(ctx context.Context, params domain.NewTaskParams) (*domain.Task, error)

	// UpdateTask applies patch, checking any replacement tag IDs first.
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id string) error

	// ToggleTask flips a task's completion state.
	ToggleTask(ctx context.Context, id string) (*domain.Task, error)

	// ArchiveTask marks a task as archived.
	ArchiveTask(ctx context.Context, id string) (*domain.Task, error)

	// RestoreTask clears a task's archived flag.
	RestoreTask(ctx context.Context, id string) (*domain.Task, error)

	// AddSubTask appends a subtask to an advanced task.
	AddSubTask(ctx context.Context, taskID, title string) (*domain.Task, error)

	// UpdateSubTask applies patch to a subtask.
	UpdateSubTask(ctx context.Context, taskID, subTaskID string, patch domain.SubTaskPatch) (*domain.Task, error)

	// ToggleSubTask flips a subtask's completion state.
	ToggleSubTask(ctx context.Context, taskID, subTaskID string) (*domain.Task, error)

	// DeleteSubTask removes a subtask.
	DeleteSubTask(ctx context.Context, taskID, subTaskID string) (*domain.Task, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks   store.TaskStore
	tags    store.TagStore
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil. A nil
// emitter disables lifecycle events.
func NewTaskService(
	tasks store.TaskStore,
	tags store.TagStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}
	if tags == nil {
		return nil, domain.NewValidationError("tags", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:   tasks,
		tags:    tags,
		emitter: emitter,
		logger:  logger.With(slog.String("component", "task_service")),
	}, nil
}

func (s *taskServiceImpl) wrap(operation, message string, err error) error {
	return NewServiceError("task", operation, message, err)
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context, filter store.TaskFilter) (*store.TaskPage, error) {
	page, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, s.wrap("list_tasks", "failed to list tasks", err)
	}
	return page, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, s.wrap("get_task", "failed to get task", err)
	}
	return task, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, params domain.NewTaskParams) (*domain.Task, error) {
	if err := s.checkTagsExist(ctx, params.TagIDs); err != nil {
		return nil, s.wrap("create_task", "invalid tags", err)
	}

	task, err := s.tasks.Create(ctx, params)
	if err != nil {
		return nil, s.wrap("create_task", "failed to create task", err)
	}

	s.emit(ctx, events.TypeTaskCreated, task)
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id string,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	if patch.SetTags {
		if err := s.checkTagsExist(ctx, patch.Tags); err != nil {
			return nil, s.wrap("update_task", "invalid tags", err)
		}
	}

	return s.trackCompletion(ctx, "update_task", id, func() (*domain.Task, error) {
		return s.tasks.Update(ctx, id, patch)
	})
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	before, err := s.tasks.Get(ctx, id)
	if err != nil {
		return s.wrap("delete_task", "failed to delete task", err)
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return s.wrap("delete_task", "failed to delete task", err)
	}

	s.emit(ctx, events.TypeTaskDeleted, before)
	return nil
}

// ToggleTask implements TaskService.ToggleTask
func (s *taskServiceImpl) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	return s.trackCompletion(ctx, "toggle_task", id, func() (*domain.Task, error) {
		return s.tasks.ToggleCompletion(ctx, id)
	})
}

// ArchiveTask implements TaskService.ArchiveTask
func (s *taskServiceImpl) ArchiveTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.tasks.Archive(ctx, id)
	if err != nil {
		return nil, s.wrap("archive_task", "failed to archive task", err)
	}
	return task, nil
}

// RestoreTask implements TaskService.RestoreTask
func (s *taskServiceImpl) RestoreTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.tasks.Restore(ctx, id)
	if err != nil {
		return nil, s.wrap("restore_task", "failed to restore task", err)
	}
	return task, nil
}

// AddSubTask implements TaskService.AddSubTask
func (s *taskServiceImpl) AddSubTask(ctx context.Context, taskID, title string) (*domain.Task, error) {
	task, err := s.tasks.AddSubTask(ctx, taskID, title)
	if err != nil {
		return nil, s.wrap("add_subtask", "failed to add subtask", err)
	}
	return task, nil
}

// UpdateSubTask implements TaskService.UpdateSubTask
func (s *taskServiceImpl) UpdateSubTask(
	ctx context.Context,
	taskID, subTaskID string,
	patch domain.SubTaskPatch,
) (*domain.Task, error) {
	return s.trackCompletion(ctx, "update_subtask", taskID, func() (*domain.Task, error) {
		return s.tasks.UpdateSubTask(ctx, taskID, subTaskID, patch)
	})
}

// ToggleSubTask implements TaskService.ToggleSubTask
func (s *taskServiceImpl) ToggleSubTask(ctx context.Context, taskID, subTaskID string) (*domain.Task, error) {
	return s.trackCompletion(ctx, "toggle_subtask", taskID, func() (*domain.Task, error) {
		return s.tasks.ToggleSubTask(ctx, taskID, subTaskID)
	})
}

// DeleteSubTask implements TaskService.DeleteSubTask
func (s *taskServiceImpl) DeleteSubTask(ctx context.Context, taskID, subTaskID string) (*domain.Task, error) {
	task, err := s.tasks.DeleteSubTask(ctx, taskID, subTaskID)
	if err != nil {
		return nil, s.wrap("delete_subtask", "failed to delete subtask", err)
	}
	return task, nil
}

// checkTagsExist returns a validation error naming the first unknown tag ID.
func (s *taskServiceImpl) checkTagsExist(ctx context.Context, tagIDs []string) error {
	for _, id := range tagIDs {
		if _, err := s.tags.Get(ctx, id); err != nil {
			if errors.Is(err, store.ErrTagNotFound) {
				return domain.NewValidationError("tags", fmt.Sprintf("tag %s does not exist", id), ErrUnknownTag)
			}
			return err
		}
	}
	return nil
}

// trackCompletion runs mutate and emits task.completed or task.reopened when
// the task's completion state differs from what it was just before.
func (s *taskServiceImpl) trackCompletion(
	ctx context.Context,
	operation, id string,
	mutate func() (*domain.Task, error),
) (*domain.Task, error) {
	before, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, s.wrap(operation, "failed to load task", err)
	}

	after, err := mutate()
	if err != nil {
		return nil, s.wrap(operation, "failed to update task", err)
	}

	switch {
	case !before.Completed && after.Completed:
		s.emit(ctx, events.TypeTaskCompleted, after)
	case before.Completed && !after.Completed:
		s.emit(ctx, events.TypeTaskReopened, after)
	}

	return after, nil
}

// emit publishes a lifecycle event. Failures are logged, never returned: the
// mutation has already happened.
func (s *taskServiceImpl) emit(ctx context.Context, eventType string, task *domain.Task) {
	if s.emitter == nil {
		return
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewTaskEvent(eventType, task.ID, events.TaskPayload{
		Title:    task.Title,
		TaskType: string(task.Type),
	})
	if err != nil {
		log.Warn("failed to build task event",
			slog.String("event_type", eventType),
			slog.String("task_id", task.ID),
			slog.String("error", err.Error()))
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit task event",
			slog.String("event_type", eventType),
			slog.String("task_id", task.ID),
			slog.String("error", err.Error()))
	}
}
