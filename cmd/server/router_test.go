package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiClient struct {
	t       *testing.T
	handler http.Handler
}

func (c apiClient) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestRouterEndToEnd(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t, time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC))
	c := apiClient{t: t, handler: app.setupRouter()}

	rec := c.do(http.MethodPost, "/api/v1/tags", map[string]string{"name": "Work", "color": "#336699"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tagID := decodeBody(t, rec)["data"].(map[string]interface{})["id"].(string)

	rec = c.do(http.MethodPost, "/api/v1/tasks", map[string]interface{}{
		"title":    "Plan sprint",
		"type":     "advanced",
		"tags":     []string{tagID},
		"subTasks": []map[string]string{{"title": "Collect issues"}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	task := decodeBody(t, rec)["data"].(map[string]interface{})
	taskID := task["id"].(string)
	subTaskID := task["subTasks"].([]interface{})[0].(map[string]interface{})["id"].(string)

	rec = c.do(http.MethodPatch, "/api/v1/tasks/"+taskID+"/subtasks/"+subTaskID+"/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, decodeBody(t, rec)["data"].(map[string]interface{})["completed"])

	rec = c.do(http.MethodGet, "/api/v1/tasks?status=completed&tags="+tagID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Len(t, body["data"], 1)
	assert.Equal(t, map[string]interface{}{"page": 1.0, "limit": 50.0, "total": 1.0, "totalPages": 1.0}, body["pagination"])

	rec = c.do(http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"total":1,"completed":1,"active":0,"advanced":1,"archived":0}}`, rec.Body.String())

	rec = c.do(http.MethodGet, "/api/v1/contributions?days=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"data": [{"date":"2024-01-05","count":1},{"date":"2024-01-04","count":0},{"date":"2024-01-03","count":0}],
		"summary": {"totalContributions":1,"longestStreak":1,"currentStreak":1}
	}`, rec.Body.String())

	rec = c.do(http.MethodDelete, "/api/v1/tasks/"+taskID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, 1, app.activityLog.Count("task.created"))
	assert.Equal(t, 1, app.activityLog.Count("task.completed"))
	assert.Equal(t, 1, app.activityLog.Count("task.deleted"))
}

func TestRouterSystemRoutes(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t, time.Now())
	c := apiClient{t: t, handler: app.setupRouter()}

	rec := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())

	rec = c.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, version, decodeBody(t, rec)["version"])
}

func TestRouterErrorEnvelopes(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t, time.Now())
	c := apiClient{t: t, handler: app.setupRouter()}

	rec := c.do(http.MethodGet, "/api/v1/nowhere", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, map[string]interface{}{"code": "NOT_FOUND", "message": "Resource not found"}, body["error"])
	assert.Equal(t, rec.Header().Get("X-Trace-ID"), body["trace_id"])

	rec = c.do(http.MethodPut, "/api/v1/tags", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, map[string]interface{}{"code": "METHOD_NOT_ALLOWED", "message": "Method not allowed"}, decodeBody(t, rec)["error"])

	rec = c.do(http.MethodGet, "/api/v1/tasks/unknown", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Task not found", decodeBody(t, rec)["error"].(map[string]interface{})["message"])
}

func TestRouterCORS(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t, time.Now())
	router := app.setupRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/tasks", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
