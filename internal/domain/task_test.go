package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t0 = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Minute)
	t2 = t0.Add(2 * time.Minute)
	t3 = t0.Add(3 * time.Minute)
)

func boolPtr(b bool) *bool { return &b }
func strPtr(s string) *string { return &s }

func newAdvanced(t *testing.T, subTaskTitles ...string) *Task {
	t.Helper()
	task, err := NewTask(NewTaskParams{
		Title:         "Plan release",
		Type:          TaskTypeAdvanced,
		SubTaskTitles: subTaskTitles,
	}, t0)
	require.NoError(t, err)
	return task
}

func TestNewTask(t *testing.T) {
	t.Parallel()

	t.Run("advanced task materializes subtasks", func(t *testing.T) {
		task, err := NewTask(NewTaskParams{
			Title:         "Ship it",
			Type:          TaskTypeAdvanced,
			TagIDs:        []string{"tag-1"},
			SubTaskTitles: []string{"write", "review"},
		}, t0)

		require.NoError(t, err)
		assert.NotEmpty(t, task.ID)
		assert.Equal(t, t0, task.CreatedAt)
		assert.Equal(t, t0, task.UpdatedAt)
		assert.Nil(t, task.CompletedAt)
		assert.False(t, task.Completed)
		assert.False(t, task.Archived)
		assert.Equal(t, []string{"tag-1"}, task.Tags)
		require.Len(t, task.SubTasks, 2)
		assert.Equal(t, "write", task.SubTasks[0].Title)
		assert.Equal(t, "review", task.SubTasks[1].Title)
		assert.NotEqual(t, task.SubTasks[0].ID, task.SubTasks[1].ID)
		assert.False(t, task.SubTasks[0].Completed)
	})

	t.Run("simple task drops subtasks", func(t *testing.T) {
		task, err := NewTask(NewTaskParams{
			Title:         "Buy milk",
			Type:          TaskTypeSimple,
			SubTaskTitles: []string{"ignored"},
		}, t0)

		require.NoError(t, err)
		assert.Empty(t, task.SubTasks)
		assert.NotNil(t, task.SubTasks)
		assert.NotNil(t, task.Tags)
	})

	t.Run("tag slice is copied", func(t *testing.T) {
		tags := []string{"a"}
		task, err := NewTask(NewTaskParams{Title: "x", Type: TaskTypeSimple, TagIDs: tags}, t0)
		require.NoError(t, err)

		tags[0] = "mutated"
		assert.Equal(t, []string{"a"}, task.Tags)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := NewTask(NewTaskParams{Title: "  ", Type: TaskTypeSimple}, t0)
		assert.ErrorIs(t, err, ErrEmptyTitle)
		assert.ErrorIs(t, err, ErrValidation)

		_, err = NewTask(NewTaskParams{Title: "x", Type: "epic"}, t0)
		assert.ErrorIs(t, err, ErrInvalidTaskType)

		_, err = NewTask(NewTaskParams{Title: "x", Type: TaskTypeAdvanced, SubTaskTitles: []string{""}}, t0)
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})
}

func TestTaskApplyPatch(t *testing.T) {
	t.Parallel()

	t.Run("only supplied fields change", func(t *testing.T) {
		task := newAdvanced(t)
		task.Tags = []string{"keep"}

		require.NoError(t, task.ApplyPatch(TaskPatch{Title: strPtr("Renamed")}, t1))

		assert.Equal(t, "Renamed", task.Title)
		assert.Equal(t, []string{"keep"}, task.Tags)
		assert.False(t, task.Completed)
		assert.False(t, task.Archived)
		assert.Equal(t, t1, task.UpdatedAt)
	})

	t.Run("empty patch still bumps updatedAt", func(t *testing.T) {
		task := newAdvanced(t)
		require.NoError(t, task.ApplyPatch(TaskPatch{}, t1))
		assert.Equal(t, t1, task.UpdatedAt)
	})

	t.Run("completing stamps completedAt once", func(t *testing.T) {
		task := newAdvanced(t)

		require.NoError(t, task.ApplyPatch(TaskPatch{Completed: boolPtr(true)}, t1))
		require.NotNil(t, task.CompletedAt)
		assert.Equal(t, t1, *task.CompletedAt)

		require.NoError(t, task.ApplyPatch(TaskPatch{Completed: boolPtr(true)}, t2))
		assert.Equal(t, t1, *task.CompletedAt, "already completed task keeps its timestamp")
		assert.Equal(t, t2, task.UpdatedAt)

		require.NoError(t, task.ApplyPatch(TaskPatch{Completed: boolPtr(false)}, t3))
		assert.False(t, task.Completed)
		assert.Nil(t, task.CompletedAt)
	})

	t.Run("tags replaced including with empty list", func(t *testing.T) {
		task := newAdvanced(t)
		task.Tags = []string{"a", "b"}

		require.NoError(t, task.ApplyPatch(TaskPatch{SetTags: true, Tags: []string{"c"}}, t1))
		assert.Equal(t, []string{"c"}, task.Tags)

		require.NoError(t, task.ApplyPatch(TaskPatch{SetTags: true}, t2))
		assert.Empty(t, task.Tags)
		assert.NotNil(t, task.Tags)
	})

	t.Run("archived flag", func(t *testing.T) {
		task := newAdvanced(t)
		require.NoError(t, task.ApplyPatch(TaskPatch{Archived: boolPtr(true)}, t1))
		assert.True(t, task.Archived)
	})

	t.Run("blank title rejected", func(t *testing.T) {
		task := newAdvanced(t)
		err := task.ApplyPatch(TaskPatch{Title: strPtr("")}, t1)
		assert.ErrorIs(t, err, ErrEmptyTitle)
		assert.Equal(t, "Plan release", task.Title)
	})
}

func TestTaskToggleCompletionIsInvolution(t *testing.T) {
	t.Parallel()

	task := newAdvanced(t)
	before := task.Clone()

	task.ToggleCompletion(t1)
	assert.True(t, task.Completed)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, t1, *task.CompletedAt)

	task.ToggleCompletion(t2)
	assert.Equal(t, before.Completed, task.Completed)
	assert.Equal(t, before.CompletedAt, task.CompletedAt)
	assert.Equal(t, t2, task.UpdatedAt)
}

func TestTaskArchiveRestore(t *testing.T) {
	t.Parallel()

	task := newAdvanced(t)
	task.Archive(t1)
	assert.True(t, task.Archived)
	assert.Equal(t, t1, task.UpdatedAt)

	task.Restore(t2)
	assert.False(t, task.Archived)
	assert.Equal(t, t2, task.UpdatedAt)
}

func TestTaskSubTasks(t *testing.T) {
	t.Parallel()

	t.Run("add to simple task rejected", func(t *testing.T) {
		task, err := NewTask(NewTaskParams{Title: "x", Type: TaskTypeSimple}, t0)
		require.NoError(t, err)

		_, err = task.AddSubTask("nope", t1)
		assert.ErrorIs(t, err, ErrSimpleTaskSubTasks)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Empty(t, task.SubTasks)
		assert.Equal(t, t0, task.UpdatedAt)
	})

	t.Run("add appends incomplete subtask", func(t *testing.T) {
		task := newAdvanced(t, "one")
		st, err := task.AddSubTask("two", t1)

		require.NoError(t, err)
		assert.Equal(t, "two", st.Title)
		assert.False(t, st.Completed)
		require.Len(t, task.SubTasks, 2)
		assert.Equal(t, st, task.SubTasks[1])
		assert.Equal(t, t1, task.UpdatedAt)
	})

	t.Run("toggling all subtasks completes then reopens the parent", func(t *testing.T) {
		task := newAdvanced(t, "a", "b")

		require.NoError(t, task.ToggleSubTask(task.SubTasks[0].ID, t1))
		assert.False(t, task.Completed)

		require.NoError(t, task.ToggleSubTask(task.SubTasks[1].ID, t2))
		assert.True(t, task.Completed)
		require.NotNil(t, task.CompletedAt)
		assert.Equal(t, t2, *task.CompletedAt)

		require.NoError(t, task.ToggleSubTask(task.SubTasks[0].ID, t3))
		assert.False(t, task.Completed)
		assert.Nil(t, task.CompletedAt)
	})

	t.Run("toggle reopens a manually completed parent", func(t *testing.T) {
		task := newAdvanced(t, "a", "b")
		task.ToggleCompletion(t1)

		require.NoError(t, task.ToggleSubTask(task.SubTasks[0].ID, t2))
		assert.False(t, task.Completed)
		assert.Nil(t, task.CompletedAt)
	})

	t.Run("update completes parent but never reopens it", func(t *testing.T) {
		task := newAdvanced(t, "a", "b")

		require.NoError(t, task.UpdateSubTask(task.SubTasks[0].ID, SubTaskPatch{Completed: boolPtr(true)}, t1))
		assert.False(t, task.Completed)

		require.NoError(t, task.UpdateSubTask(task.SubTasks[1].ID, SubTaskPatch{Completed: boolPtr(true)}, t2))
		assert.True(t, task.Completed)
		require.NotNil(t, task.CompletedAt)
		assert.Equal(t, t2, *task.CompletedAt)

		require.NoError(t, task.UpdateSubTask(task.SubTasks[1].ID, SubTaskPatch{Completed: boolPtr(false)}, t3))
		assert.True(t, task.Completed, "update leaves the parent completed")
		assert.Equal(t, t2, *task.CompletedAt)
		assert.False(t, task.SubTasks[1].Completed)
	})

	t.Run("update keeps completedAt of an already completed parent", func(t *testing.T) {
		task := newAdvanced(t, "a")
		task.ToggleCompletion(t1)

		require.NoError(t, task.UpdateSubTask(task.SubTasks[0].ID, SubTaskPatch{Completed: boolPtr(true)}, t2))
		assert.Equal(t, t1, *task.CompletedAt)
	})

	t.Run("update renames", func(t *testing.T) {
		task := newAdvanced(t, "a")

		require.NoError(t, task.UpdateSubTask(task.SubTasks[0].ID, SubTaskPatch{Title: strPtr("renamed")}, t1))
		assert.Equal(t, "renamed", task.SubTasks[0].Title)
		assert.False(t, task.SubTasks[0].Completed)
		assert.Equal(t, t1, task.UpdatedAt)
	})

	t.Run("delete does not re-derive completion", func(t *testing.T) {
		task := newAdvanced(t, "done", "open")
		require.NoError(t, task.ToggleSubTask(task.SubTasks[0].ID, t1))

		require.NoError(t, task.DeleteSubTask(task.SubTasks[1].ID, t2))
		require.Len(t, task.SubTasks, 1)
		assert.False(t, task.Completed)
		assert.Equal(t, t2, task.UpdatedAt)
	})

	t.Run("unknown subtask", func(t *testing.T) {
		task := newAdvanced(t, "a")

		assert.True(t, errors.Is(task.UpdateSubTask("missing", SubTaskPatch{}, t1), ErrSubTaskNotFound))
		assert.True(t, errors.Is(task.ToggleSubTask("missing", t1), ErrSubTaskNotFound))
		assert.True(t, errors.Is(task.DeleteSubTask("missing", t1), ErrSubTaskNotFound))
		assert.Equal(t, t0, task.UpdatedAt)
	})
}

func TestTaskClone(t *testing.T) {
	t.Parallel()

	task := newAdvanced(t, "a")
	task.Tags = []string{"x"}
	task.ToggleCompletion(t1)

	clone := task.Clone()
	clone.Tags[0] = "changed"
	clone.SubTasks[0].Title = "changed"
	*clone.CompletedAt = t3

	assert.Equal(t, []string{"x"}, task.Tags)
	assert.Equal(t, "a", task.SubTasks[0].Title)
	assert.Equal(t, t1, *task.CompletedAt)
}

func TestTaskHasAnyTag(t *testing.T) {
	t.Parallel()

	task := &Task{Tags: []string{"a", "b"}}
	assert.True(t, task.HasAnyTag([]string{"z", "b"}))
	assert.False(t, task.HasAnyTag([]string{"z"}))
	assert.False(t, task.HasAnyTag(nil))
}

func TestTaskStatisticsAdd(t *testing.T) {
	t.Parallel()

	var stats TaskStatistics
	stats.Add(&Task{Type: TaskTypeSimple})
	stats.Add(&Task{Type: TaskTypeSimple, Completed: true})
	stats.Add(&Task{Type: TaskTypeAdvanced, Completed: true, Archived: true})
	stats.Add(&Task{Type: TaskTypeAdvanced, Archived: true})

	assert.Equal(t, TaskStatistics{Total: 4, Completed: 1, Active: 1, Advanced: 2, Archived: 2}, stats)
}
