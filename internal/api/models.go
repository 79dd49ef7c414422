package api

import (
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/domain/contribution"
)

// CreateTaskRequest defines the payload for POST /tasks.
type CreateTaskRequest struct {
	Title    string           `json:"title"    validate:"required,notblank"`
	Type     string           `json:"type"     validate:"required,oneof=simple advanced"`
	Tags     []string         `json:"tags"     validate:"omitempty,dive,required"`
	SubTasks []SubTaskRequest `json:"subTasks" validate:"omitempty,dive"`
}

// SubTaskRequest defines a subtask in CreateTaskRequest and the payload of
// POST /tasks/{taskID}/subtasks.
type SubTaskRequest struct {
	Title string `json:"title" validate:"required,notblank"`
}

// UpdateTaskRequest defines the payload for PATCH /tasks/{taskID}.
// Absent fields are left unchanged; "tags": [] clears the tags.
type UpdateTaskRequest struct {
	Title     *string   `json:"title"     validate:"omitempty,notblank"`
	Completed *bool     `json:"completed"`
	Archived  *bool     `json:"archived"`
	Tags      *[]string `json:"tags"      validate:"omitempty,dive,required"`
}

// UpdateSubTaskRequest defines the payload for PATCH /tasks/{taskID}/subtasks/{subTaskID}.
type UpdateSubTaskRequest struct {
	Title     *string `json:"title"     validate:"omitempty,notblank"`
	Completed *bool   `json:"completed"`
}

// CreateTagRequest defines the payload for POST /tags.
type CreateTagRequest struct {
	Name  string `json:"name"  validate:"required,notblank"`
	Color string `json:"color" validate:"required,hexcolor,len=7"`
}

// UpdateTagRequest defines the payload for PATCH /tags/{tagID}.
type UpdateTagRequest struct {
	Name  *string `json:"name"  validate:"omitempty,notblank"`
	Color *string `json:"color" validate:"omitempty,hexcolor,len=7"`
}

// ContributionDayResponse is one calendar entry.
type ContributionDayResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ContributionSummaryResponse aggregates the calendar.
type ContributionSummaryResponse struct {
	TotalContributions int `json:"totalContributions"`
	LongestStreak      int `json:"longestStreak"`
	CurrentStreak      int `json:"currentStreak"`
}

// ContributionsResponse is the body of GET /contributions.
type ContributionsResponse struct {
	Data    []ContributionDayResponse   `json:"data"`
	Summary ContributionSummaryResponse `json:"summary"`
}

// toParams converts the request into domain creation parameters.
func (req CreateTaskRequest) toParams() domain.NewTaskParams {
	params := domain.NewTaskParams{
		Title:  req.Title,
		Type:   domain.TaskType(req.Type),
		TagIDs: req.Tags,
	}
	for _, st := range req.SubTasks {
		params.SubTaskTitles = append(params.SubTaskTitles, st.Title)
	}
	return params
}

// toPatch converts the request into a sparse task patch.
func (req UpdateTaskRequest) toPatch() domain.TaskPatch {
	patch := domain.TaskPatch{
		Title:     req.Title,
		Completed: req.Completed,
		Archived:  req.Archived,
	}
	if req.Tags != nil {
		patch.SetTags = true
		patch.Tags = *req.Tags
	}
	return patch
}

// contributionsToResponse converts a calendar into its wire form.
func contributionsToResponse(result *contribution.Result) ContributionsResponse {
	days := make([]ContributionDayResponse, 0, len(result.Calendar))
	for _, day := range result.Calendar {
		days = append(days, ContributionDayResponse{
			Date:  day.DateString(),
			Count: day.Count,
		})
	}
	return ContributionsResponse{
		Data: days,
		Summary: ContributionSummaryResponse{
			TotalContributions: result.Summary.TotalContributions,
			LongestStreak:      result.Summary.LongestStreak,
			CurrentStreak:      result.Summary.CurrentStreak,
		},
	}
}
