package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskType distinguishes plain tasks from tasks that carry a subtask checklist.
type TaskType string

// Possible task type values
const (
	TaskTypeSimple   TaskType = "simple"
	TaskTypeAdvanced TaskType = "advanced"
)

// IsValid reports whether t is a known task type.
func (t TaskType) IsValid() bool {
	return t == TaskTypeSimple || t == TaskTypeAdvanced
}

// SubTask is a checklist item nested under an advanced task.
type SubTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Task is a to-do item. Tags holds tag IDs; the referenced tags are not
// required to still exist.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Type        TaskType   `json:"type"`
	Completed   bool       `json:"completed"`
	Archived    bool       `json:"archived"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Tags        []string   `json:"tags"`
	SubTasks    []SubTask  `json:"subTasks"`
}

// NewTaskParams holds the caller-supplied fields of a new task.
type NewTaskParams struct {
	Title         string
	Type          TaskType
	TagIDs        []string
	SubTaskTitles []string
}

// TaskPatch is a sparse update of a task. Nil fields are left unchanged.
type TaskPatch struct {
	Title     *string
	Completed *bool
	Archived  *bool
	Tags      []string
	// SetTags distinguishes "replace tags with an empty list" from "leave tags alone".
	SetTags bool
}

// SubTaskPatch is a sparse update of a subtask. Nil fields are left unchanged.
type SubTaskPatch struct {
	Title     *string
	Completed *bool
}

// NewTask creates a new Task with a generated ID and timestamps set to now.
// Subtasks are materialized only for advanced tasks; for simple tasks the
// titles are ignored. Returns an error if validation fails.
func NewTask(params NewTaskParams, now time.Time) (*Task, error) {
	task := &Task{
		ID:        uuid.NewString(),
		Title:     params.Title,
		Type:      params.Type,
		CreatedAt: now,
		UpdatedAt: now,
		Tags:      copyStrings(params.TagIDs),
		SubTasks:  []SubTask{},
	}

	if task.Type == TaskTypeAdvanced {
		for _, title := range params.SubTaskTitles {
			subTask, err := newSubTask(title)
			if err != nil {
				return nil, err
			}
			task.SubTasks = append(task.SubTasks, subTask)
		}
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

func newSubTask(title string) (SubTask, error) {
	if strings.TrimSpace(title) == "" {
		return SubTask{}, ErrEmptyTitle
	}
	return SubTask{ID: uuid.NewString(), Title: title}, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}

	if !t.Type.IsValid() {
		return ErrInvalidTaskType
	}

	if t.Type == TaskTypeSimple && len(t.SubTasks) > 0 {
		return ErrSimpleTaskSubTasks
	}

	return nil
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	clone := *t
	if t.CompletedAt != nil {
		completedAt := *t.CompletedAt
		clone.CompletedAt = &completedAt
	}
	clone.Tags = copyStrings(t.Tags)
	clone.SubTasks = make([]SubTask, len(t.SubTasks))
	copy(clone.SubTasks, t.SubTasks)
	return &clone
}

// HasAnyTag reports whether the task references at least one of tagIDs.
func (t *Task) HasAnyTag(tagIDs []string) bool {
	for _, want := range tagIDs {
		for _, have := range t.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// ApplyPatch overwrites the fields present in patch. Setting Completed to true
// stamps CompletedAt unless the task was already completed; setting it to
// false clears CompletedAt. UpdatedAt is always bumped.
func (t *Task) ApplyPatch(patch TaskPatch, now time.Time) error {
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return ErrEmptyTitle
		}
		t.Title = *patch.Title
	}

	if patch.Archived != nil {
		t.Archived = *patch.Archived
	}

	if patch.SetTags {
		t.Tags = copyStrings(patch.Tags)
	}

	if patch.Completed != nil {
		t.setCompleted(*patch.Completed, now)
	}

	t.UpdatedAt = now
	return nil
}

// ToggleCompletion flips the completed flag with the same CompletedAt rules as ApplyPatch.
func (t *Task) ToggleCompletion(now time.Time) {
	t.setCompleted(!t.Completed, now)
	t.UpdatedAt = now
}

// Archive marks the task as archived.
func (t *Task) Archive(now time.Time) {
	t.Archived = true
	t.UpdatedAt = now
}

// Restore clears the archived flag.
func (t *Task) Restore(now time.Time) {
	t.Archived = false
	t.UpdatedAt = now
}

// AddSubTask appends a new incomplete subtask. Only advanced tasks accept subtasks.
func (t *Task) AddSubTask(title string, now time.Time) (SubTask, error) {
	if t.Type != TaskTypeAdvanced {
		return SubTask{}, ErrSimpleTaskSubTasks
	}

	subTask, err := newSubTask(title)
	if err != nil {
		return SubTask{}, err
	}

	t.SubTasks = append(t.SubTasks, subTask)
	t.UpdatedAt = now
	return subTask, nil
}

// UpdateSubTask applies patch to the subtask with the given ID. If every
// subtask is then complete the parent becomes completed; otherwise the parent
// keeps its current completion state.
func (t *Task) UpdateSubTask(subTaskID string, patch SubTaskPatch, now time.Time) error {
	i := t.subTaskIndex(subTaskID)
	if i < 0 {
		return ErrSubTaskNotFound
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return ErrEmptyTitle
		}
		t.SubTasks[i].Title = *patch.Title
	}
	if patch.Completed != nil {
		t.SubTasks[i].Completed = *patch.Completed
	}

	t.UpdatedAt = now
	if t.allSubTasksCompleted() {
		t.setCompleted(true, now)
	}
	return nil
}

// ToggleSubTask flips the subtask with the given ID and re-derives the parent:
// completed when every subtask is complete, otherwise reopened with CompletedAt
// cleared. Unlike UpdateSubTask this can un-complete the parent.
func (t *Task) ToggleSubTask(subTaskID string, now time.Time) error {
	i := t.subTaskIndex(subTaskID)
	if i < 0 {
		return ErrSubTaskNotFound
	}

	t.SubTasks[i].Completed = !t.SubTasks[i].Completed

	t.UpdatedAt = now
	t.setCompleted(t.allSubTasksCompleted(), now)
	return nil
}

// DeleteSubTask removes the subtask with the given ID. The parent's completion
// state is not re-derived.
func (t *Task) DeleteSubTask(subTaskID string, now time.Time) error {
	i := t.subTaskIndex(subTaskID)
	if i < 0 {
		return ErrSubTaskNotFound
	}

	t.SubTasks = append(t.SubTasks[:i], t.SubTasks[i+1:]...)
	t.UpdatedAt = now
	return nil
}

func (t *Task) setCompleted(completed bool, now time.Time) {
	if !completed {
		t.Completed = false
		t.CompletedAt = nil
		return
	}

	if !t.Completed {
		completedAt := now
		t.CompletedAt = &completedAt
	}
	t.Completed = true
}

func (t *Task) subTaskIndex(id string) int {
	for i := range t.SubTasks {
		if t.SubTasks[i].ID == id {
			return i
		}
	}
	return -1
}

// allSubTasksCompleted is false for a task without subtasks.
func (t *Task) allSubTasksCompleted() bool {
	if len(t.SubTasks) == 0 {
		return false
	}
	for _, st := range t.SubTasks {
		if !st.Completed {
			return false
		}
	}
	return true
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
