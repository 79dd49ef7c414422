package store

import (
	"context"
	"math"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// StatusFilter selects tasks by completion state.
type StatusFilter string

// Possible status filter values
const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// Pagination limits for task listing.
const (
	MinPageLimit = 1
	MaxPageLimit = 100
)

// TaskFilter describes a task list query. Filters apply in order: archived
// flag, completion status, then tags (a task matches if it carries any of TagIDs).
type TaskFilter struct {
	Status   StatusFilter
	Archived bool
	TagIDs   []string
	Page     int
	Limit    int
}

// Validate checks that the filter is inside its documented domain.
func (f TaskFilter) Validate() error {
	switch f.Status {
	case StatusAll, StatusActive, StatusCompleted:
	default:
		return domain.NewValidationError("status", "must be one of all, active, completed", ErrInvalidFilter)
	}
	if f.Page < 1 {
		return domain.NewValidationError("page", "must be at least 1", ErrInvalidFilter)
	}
	if f.Limit < MinPageLimit || f.Limit > MaxPageLimit {
		return domain.NewValidationError("limit", "must be between 1 and 100", ErrInvalidFilter)
	}
	return nil
}

// Offset returns the index of the first item on the requested page. It
// saturates at math.MaxInt instead of overflowing, so any page past the end
// yields an offset past the end.
func (f TaskFilter) Offset() int {
	if f.Page <= 1 || f.Limit <= 0 {
		return 0
	}
	if f.Page-1 > math.MaxInt/f.Limit {
		return math.MaxInt
	}
	return (f.Page - 1) * f.Limit
}

// Matches reports whether task passes the filter, ignoring pagination.
func (f TaskFilter) Matches(task *domain.Task) bool {
	if task.Archived != f.Archived {
		return false
	}

	switch f.Status {
	case StatusActive:
		if task.Completed {
			return false
		}
	case StatusCompleted:
		if !task.Completed {
			return false
		}
	}

	if len(f.TagIDs) > 0 && !task.HasAnyTag(f.TagIDs) {
		return false
	}

	return true
}

// TaskPage is one page of a filtered task list. Total counts every task that
// matched the filter, not just the ones on this page.
type TaskPage struct {
	Items []*domain.Task
	Total int
}

// TaskStore defines the interface for task data persistence.
// Every method that mutates a task runs as a single atomic unit.
type TaskStore interface {
	// List returns the tasks matching filter, newest first, sliced to the
	// requested page. A page past the end yields no items, not an error.
	// Returns ErrInvalidFilter if the filter is out of range.
	List(ctx context.Context, filter TaskFilter) (*TaskPage, error)

	// Get retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Get(ctx context.Context, id string) (*domain.Task, error)

	// Create stores a new task built from params with a generated ID and timestamps.
	// Returns domain validation errors if params are invalid.
	Create(ctx context.Context, params domain.NewTaskParams) (*domain.Task, error)

	// Update applies patch to the task with the given ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)

	// Delete removes a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id string) error

	// ToggleCompletion flips the task's completed flag.
	// Returns ErrTaskNotFound if the task does not exist.
	ToggleCompletion(ctx context.Context, id string) (*domain.Task, error)

	// Archive marks the task as archived.
	// Returns ErrTaskNotFound if the task does not exist.
	Archive(ctx context.Context, id string) (*domain.Task, error)

	// Restore clears the task's archived flag.
	// Returns ErrTaskNotFound if the task does not exist.
	Restore(ctx context.Context, id string) (*domain.Task, error)

	// AddSubTask appends a subtask to an advanced task and returns the parent.
	// Returns ErrTaskNotFound, or domain.ErrSimpleTaskSubTasks for simple tasks.
	AddSubTask(ctx context.Context, taskID, title string) (*domain.Task, error)

	// UpdateSubTask applies patch to a subtask and returns the parent.
	// Returns ErrTaskNotFound or ErrSubTaskNotFound.
	UpdateSubTask(ctx context.Context, taskID, subTaskID string, patch domain.SubTaskPatch) (*domain.Task, error)

	// ToggleSubTask flips a subtask's completed flag and returns the parent.
	// Returns ErrTaskNotFound or ErrSubTaskNotFound.
	ToggleSubTask(ctx context.Context, taskID, subTaskID string) (*domain.Task, error)

	// DeleteSubTask removes a subtask and returns the parent.
	// Returns ErrTaskNotFound or ErrSubTaskNotFound.
	DeleteSubTask(ctx context.Context, taskID, subTaskID string) (*domain.Task, error)
}
