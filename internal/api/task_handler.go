package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service"
)

// Path parameter names used by the task routes.
const (
	TaskIDParam    = "taskID"
	SubTaskIDParam = "subTaskID"
)

// TaskHandler handles task and subtask HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
	limits      PageLimits
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, limits PageLimits, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		limits:      limits,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks requests.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTaskFilter(r, h.limits)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	page, err := h.taskService.ListTasks(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.PageResponse{
		Data:       page.Items,
		Pagination: shared.NewPagination(filter.Page, filter.Limit, page.Total),
	})
}

// GetTask handles GET /tasks/{taskID} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := getPathParam(r, TaskIDParam)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.GetTask(r.Context(), taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, task)
}

// CreateTask handles POST /tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), req.toParams())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("task created",
		slog.String("task_id", task.ID),
		slog.String("type", string(task.Type)))

	shared.RespondWithData(w, r, http.StatusCreated, task)
}

// UpdateTask handles PATCH /tasks/{taskID} requests.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := getPathParam(r, TaskIDParam)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), taskID, req.toPatch())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{taskID} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := getPathParam(r, TaskIDParam)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), taskID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("task deleted",
		slog.String("task_id", taskID))

	w.WriteHeader(http.StatusNoContent)
}

// ToggleTask handles PATCH /tasks/{taskID}/toggle requests.
func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.taskService.ToggleTask, "Failed to toggle task")
}

// ArchiveTask handles PATCH /tasks/{taskID}/archive requests.
func (h *TaskHandler) ArchiveTask(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.taskService.ArchiveTask, "Failed to archive task")
}

// RestoreTask handles PATCH /tasks/{taskID}/restore requests.
func (h *TaskHandler) RestoreTask(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.taskService.RestoreTask, "Failed to restore task")
}

// AddSubTask handles POST /tasks/{taskID}/subtasks requests.
// Responds with the whole parent task.
func (h *TaskHandler) AddSubTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := getPathParam(r, TaskIDParam)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req SubTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.taskService.AddSubTask(r.Context(), taskID, req.Title)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add subtask")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, task)
}

// UpdateSubTask handles PATCH /tasks/{taskID}/subtasks/{subTaskID} requests.
func (h *TaskHandler) UpdateSubTask(w http.ResponseWriter, r *http.Request) {
	taskID, subTaskID, ok := h.subTaskParams(w, r)
	if !ok {
		return
	}

	var req UpdateSubTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	patch := domain.SubTaskPatch{Title: req.Title, Completed: req.Completed}
	task, err := h.taskService.UpdateSubTask(r.Context(), taskID, subTaskID, patch)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update subtask")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, task)
}

// ToggleSubTask handles PATCH /tasks/{taskID}/subtasks/{subTaskID}/toggle requests.
func (h *TaskHandler) ToggleSubTask(w http.ResponseWriter, r *http.Request) {
	taskID, subTaskID, ok := h.subTaskParams(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.ToggleSubTask(r.Context(), taskID, subTaskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to toggle subtask")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, task)
}

// DeleteSubTask handles DELETE /tasks/{taskID}/subtasks/{subTaskID} requests.
// Responds with the parent task.
func (h *TaskHandler) DeleteSubTask(w http.ResponseWriter, r *http.Request) {
	taskID, subTaskID, ok := h.subTaskParams(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.DeleteSubTask(r.Context(), taskID, subTaskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete subtask")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, task)
}

type taskTransition func(ctx context.Context, id string) (*domain.Task, error)

func (h *TaskHandler) transition(w http.ResponseWriter, r *http.Request, fn taskTransition, fallback string) {
	taskID, err := getPathParam(r, TaskIDParam)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := fn(r.Context(), taskID)
	if err != nil {
		HandleAPIError(w, r, err, fallback)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, task)
}

func (h *TaskHandler) subTaskParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	taskID, err := getPathParam(r, TaskIDParam)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return "", "", false
	}
	subTaskID, err := getPathParam(r, SubTaskIDParam)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return "", "", false
	}
	return taskID, subTaskID, true
}
