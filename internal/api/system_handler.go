package api

import (
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
)

// WelcomeResponse is the body of GET /.
type WelcomeResponse struct {
	Message string `json:"message"`
	Docs    string `json:"docs"`
	Version string `json:"version"`
}

// Welcome returns a handler describing the API.
func Welcome(version string) http.HandlerFunc {
	body := WelcomeResponse{
		Message: "Taskboard API",
		Docs:    "/api/v1",
		Version: version,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, body)
	}
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "healthy"})
}
