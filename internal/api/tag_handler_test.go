package api

import (
	"net/http"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagCRUD(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/tags", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())

	work := a.createTag(t, "Work", "#ff0000")
	home := a.createTag(t, "Home", "#00ff00")
	assert.Equal(t, "Work", work.Name)
	assert.Equal(t, "#ff0000", work.Color)

	rec = a.do(t, http.MethodGet, "/tags", nil)
	tags := decodeData[[]domain.Tag](t, rec)
	require.Len(t, tags, 2)
	assert.Equal(t, work.ID, tags[0].ID)
	assert.Equal(t, home.ID, tags[1].ID)

	rec = a.do(t, http.MethodGet, "/tags/"+home.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Home", decodeData[domain.Tag](t, rec).Name)

	rec = a.do(t, http.MethodPatch, "/tags/"+home.ID, map[string]string{"color": "#0000ff"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeData[domain.Tag](t, rec)
	assert.Equal(t, "Home", updated.Name)
	assert.Equal(t, "#0000ff", updated.Color)

	rec = a.do(t, http.MethodDelete, "/tags/"+home.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(t, http.MethodGet, "/tags/"+home.ID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Tag not found", decodeError(t, rec).Error.Message)

	rec = a.do(t, http.MethodDelete, "/tags/"+home.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTagNameConflicts(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)
	work := a.createTag(t, "Work", "#ff0000")
	home := a.createTag(t, "Home", "#00ff00")

	rec := a.do(t, http.MethodPost, "/tags", map[string]string{"name": "work", "color": "#000000"})
	require.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, shared.CodeConflict, resp.Error.Code)
	assert.Equal(t, "Tag with this name already exists", resp.Error.Message)

	rec = a.do(t, http.MethodPatch, "/tags/"+home.ID, map[string]string{"name": "WORK"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Renaming a tag to a case variant of its own name is allowed.
	rec = a.do(t, http.MethodPatch, "/tags/"+work.ID, map[string]string{"name": "WORK"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "WORK", decodeData[domain.Tag](t, rec).Name)
}

func TestTagValidation(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)
	tag := a.createTag(t, "Work", "#ff0000")

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   string
	}{
		{"missing name", http.MethodPost, "/tags", map[string]string{"color": "#ff0000"}, "Invalid name: required field"},
		{"blank name", http.MethodPost, "/tags", map[string]string{"name": " ", "color": "#ff0000"}, "Invalid name: must not be blank"},
		{"missing color", http.MethodPost, "/tags", map[string]string{"name": "x"}, "Invalid color: required field"},
		{"named color", http.MethodPost, "/tags", map[string]string{"name": "x", "color": "red"}, "Invalid color: must be a #RRGGBB color"},
		{"short hex", http.MethodPost, "/tags", map[string]string{"name": "x", "color": "#f00"}, "Invalid color: must be a #RRGGBB color"},
		{"update bad color", http.MethodPatch, "/tags/" + tag.ID, map[string]string{"color": "#12345g"}, "Invalid color: must be a #RRGGBB color"},
		{"update blank name", http.MethodPatch, "/tags/" + tag.ID, map[string]string{"name": ""}, "Invalid name: must not be blank"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := a.do(t, tc.method, tc.path, tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			resp := decodeError(t, rec)
			assert.Equal(t, shared.CodeValidationError, resp.Error.Code)
			assert.Equal(t, tc.want, resp.Error.Message)
		})
	}
}

func TestDeletingTagKeepsTaskReferences(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)
	tag := a.createTag(t, "Temp", "#123456")
	task := a.createTask(t, map[string]interface{}{"title": "x", "type": "simple", "tags": []string{tag.ID}})

	rec := a.do(t, http.MethodDelete, "/tags/"+tag.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(t, http.MethodGet, "/tasks/"+task.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{tag.ID}, decodeData[domain.Task](t, rec).Tags)
}
