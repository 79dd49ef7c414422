package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/domain/contribution"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// PageLimits bounds the limit query parameter of list endpoints.
type PageLimits struct {
	Default int
	Max     int
}

// DefaultPageLimits are used when no configuration is supplied.
var DefaultPageLimits = PageLimits{Default: 50, Max: store.MaxPageLimit}

// getPathParam extracts a required, non-blank path parameter.
func getPathParam(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(chi.URLParam(r, name))
	if value == "" {
		return "", domain.NewValidationError(name, "is required", domain.ErrValidation)
	}
	return value, nil
}

// queryInt reads an integer query parameter, returning def when absent.
func queryInt(q url.Values, name string, def int) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer", domain.ErrInvalidFormat)
	}
	return n, nil
}

// queryDate reads an optional YYYY-MM-DD query parameter.
func queryDate(q url.Values, name string) (*time.Time, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	d, err := contribution.ParseDate(raw)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be a YYYY-MM-DD date", err)
	}
	return &d, nil
}

// parseTaskFilter builds a store.TaskFilter from the list query string:
// status (all|active|completed), archived (bool), tags (comma-separated IDs),
// page and limit.
func parseTaskFilter(r *http.Request, limits PageLimits) (store.TaskFilter, error) {
	q := r.URL.Query()

	filter := store.TaskFilter{
		Status: store.StatusAll,
		Page:   1,
		Limit:  limits.Default,
	}

	if status := strings.TrimSpace(q.Get("status")); status != "" {
		filter.Status = store.StatusFilter(strings.ToLower(status))
	}

	if raw := strings.TrimSpace(q.Get("archived")); raw != "" {
		archived, err := strconv.ParseBool(raw)
		if err != nil {
			return store.TaskFilter{}, domain.NewValidationError("archived", "must be true or false", domain.ErrInvalidFormat)
		}
		filter.Archived = archived
	}

	if raw := q.Get("tags"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				filter.TagIDs = append(filter.TagIDs, id)
			}
		}
	}

	var err error
	if filter.Page, err = queryInt(q, "page", 1); err != nil {
		return store.TaskFilter{}, err
	}
	if filter.Limit, err = queryInt(q, "limit", limits.Default); err != nil {
		return store.TaskFilter{}, err
	}
	if filter.Limit > limits.Max {
		return store.TaskFilter{}, domain.NewValidationError("limit",
			"must be between 1 and "+strconv.Itoa(limits.Max), store.ErrInvalidFilter)
	}

	if err := filter.Validate(); err != nil {
		return store.TaskFilter{}, err
	}
	return filter, nil
}

// parseContributionsQuery reads startDate, endDate (YYYY-MM-DD) and days.
func parseContributionsQuery(r *http.Request) (service.ContributionsQuery, error) {
	q := r.URL.Query()

	var query service.ContributionsQuery
	var err error

	if query.StartDate, err = queryDate(q, "startDate"); err != nil {
		return service.ContributionsQuery{}, err
	}
	if query.EndDate, err = queryDate(q, "endDate"); err != nil {
		return service.ContributionsQuery{}, err
	}
	if query.Days, err = queryInt(q, "days", contribution.DefaultDays); err != nil {
		return service.ContributionsQuery{}, err
	}
	if query.Days < contribution.MinDays || query.Days > contribution.MaxDays {
		return service.ContributionsQuery{}, domain.NewValidationError("days",
			"must be between 1 and 365", contribution.ErrInvalidDays)
	}

	return query, nil
}

// decodeAndValidate decodes the JSON body into req and validates it, writing
// a 400 response and returning false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}
