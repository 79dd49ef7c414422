package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskboard-api/internal/api/middleware"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/memory"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/stretchr/testify/require"
)

// testClock is a settable clock shared by the store and the stats service.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type testAPI struct {
	router http.Handler
	clock  *testClock
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	return newTestAPIWithLimits(t, PageLimits{Default: 50, Max: 100})
}

func newTestAPIWithLimits(t *testing.T, limits PageLimits) *testAPI {
	t.Helper()

	clock := &testClock{now: time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)}
	db := memory.NewDB(memory.WithClock(clock.Now))
	taskStore := memory.NewTaskStore(db, nil)
	tagStore := memory.NewTagStore(db, nil)

	tasks, err := service.NewTaskService(taskStore, tagStore, nil, nil)
	require.NoError(t, err)
	tags, err := service.NewTagService(tagStore, nil)
	require.NoError(t, err)
	stats, err := service.NewStatsService(memory.NewStatsStore(db, nil), nil, service.WithStatsClock(clock.Now))
	require.NoError(t, err)

	taskHandler := NewTaskHandler(tasks, limits, nil)
	tagHandler := NewTagHandler(tags, nil)
	statsHandler := NewStatsHandler(stats)

	r := chi.NewRouter()
	r.Use(middleware.NewTraceMiddleware(nil))
	r.Get("/", Welcome("test"))
	r.Get("/health", Health)
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.ListTasks)
		r.Post("/", taskHandler.CreateTask)
		r.Get("/{taskID}", taskHandler.GetTask)
		r.Patch("/{taskID}", taskHandler.UpdateTask)
		r.Delete("/{taskID}", taskHandler.DeleteTask)
		r.Patch("/{taskID}/toggle", taskHandler.ToggleTask)
		r.Patch("/{taskID}/archive", taskHandler.ArchiveTask)
		r.Patch("/{taskID}/restore", taskHandler.RestoreTask)
		r.Post("/{taskID}/subtasks", taskHandler.AddSubTask)
		r.Patch("/{taskID}/subtasks/{subTaskID}", taskHandler.UpdateSubTask)
		r.Delete("/{taskID}/subtasks/{subTaskID}", taskHandler.DeleteSubTask)
		r.Patch("/{taskID}/subtasks/{subTaskID}/toggle", taskHandler.ToggleSubTask)
	})
	r.Route("/tags", func(r chi.Router) {
		r.Get("/", tagHandler.ListTags)
		r.Post("/", tagHandler.CreateTag)
		r.Get("/{tagID}", tagHandler.GetTag)
		r.Patch("/{tagID}", tagHandler.UpdateTag)
		r.Delete("/{tagID}", tagHandler.DeleteTag)
	})
	r.Get("/stats", statsHandler.GetStatistics)
	r.Get("/contributions", statsHandler.GetContributions)

	return &testAPI{router: r, clock: clock}
}

// do sends a request with an optional JSON body; a string body is sent verbatim.
func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, strings.NewReader(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	return envelope.Data
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func (a *testAPI) createTask(t *testing.T, body map[string]interface{}) domain.Task {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/tasks", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[domain.Task](t, rec)
}

func (a *testAPI) createTag(t *testing.T, name, color string) domain.Tag {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/tags", map[string]string{"name": name, "color": color})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[domain.Tag](t, rec)
}
