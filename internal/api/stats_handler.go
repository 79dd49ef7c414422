package api

import (
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/service"
)

// StatsHandler serves aggregate statistics and the contribution calendar.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStatistics handles GET /stats requests.
func (h *StatsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.GetStatistics(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute statistics")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, stats)
}

// GetContributions handles GET /contributions requests.
//
// Query parameters: startDate and endDate (YYYY-MM-DD, UTC) and days (1-365,
// default 365). The body is {"data": [{date, count}], "summary": {...}} with
// days ordered newest first.
func (h *StatsHandler) GetContributions(w http.ResponseWriter, r *http.Request) {
	query, err := parseContributionsQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.statsService.GetContributions(r.Context(), query)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute contributions")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, contributionsToResponse(result))
}
