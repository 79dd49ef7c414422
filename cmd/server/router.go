package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/taskboard-api/internal/api"
	apiMiddleware "github.com/phrazzld/taskboard-api/internal/api/middleware"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.Server.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", apiMiddleware.TraceHeader},
		ExposedHeaders: []string{apiMiddleware.TraceHeader},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	limits := api.PageLimits{
		Default: app.config.API.DefaultPageLimit,
		Max:     app.config.API.MaxPageLimit,
	}
	taskHandler := api.NewTaskHandler(app.taskService, limits, app.logger)
	tagHandler := api.NewTagHandler(app.tagService, app.logger)
	statsHandler := api.NewStatsHandler(app.statsService)

	r.Get("/", api.Welcome(version))
	r.Get("/health", api.Health)

	r.Route("/api/v1", func(r chi.Router) {
		// Task endpoints
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.ListTasks)
			r.Post("/", taskHandler.CreateTask)

			r.Route("/{"+api.TaskIDParam+"}", func(r chi.Router) {
				r.Get("/", taskHandler.GetTask)
				r.Patch("/", taskHandler.UpdateTask)
				r.Delete("/", taskHandler.DeleteTask)
				r.Patch("/toggle", taskHandler.ToggleTask)
				r.Patch("/archive", taskHandler.ArchiveTask)
				r.Patch("/restore", taskHandler.RestoreTask)

				// Subtask endpoints
				r.Post("/subtasks", taskHandler.AddSubTask)
				r.Patch("/subtasks/{"+api.SubTaskIDParam+"}", taskHandler.UpdateSubTask)
				r.Delete("/subtasks/{"+api.SubTaskIDParam+"}", taskHandler.DeleteSubTask)
				r.Patch("/subtasks/{"+api.SubTaskIDParam+"}/toggle", taskHandler.ToggleSubTask)
			})
		})

		// Tag endpoints
		r.Route("/tags", func(r chi.Router) {
			r.Get("/", tagHandler.ListTags)
			r.Post("/", tagHandler.CreateTag)
			r.Get("/{"+api.TagIDParam+"}", tagHandler.GetTag)
			r.Patch("/{"+api.TagIDParam+"}", tagHandler.UpdateTag)
			r.Delete("/{"+api.TagIDParam+"}", tagHandler.DeleteTag)
		})

		// Aggregate endpoints
		r.Get("/stats", statsHandler.GetStatistics)
		r.Get("/contributions", statsHandler.GetContributions)
	})

	return r
}
