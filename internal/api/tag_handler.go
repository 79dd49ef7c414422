package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service"
)

// TagIDParam is the path parameter name used by the tag routes.
const TagIDParam = "tagID"

// TagHandler handles tag HTTP requests.
type TagHandler struct {
	tagService service.TagService
	logger     *slog.Logger
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagService service.TagService, logger *slog.Logger) *TagHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TagHandler{
		tagService: tagService,
		logger:     logger.With(slog.String("component", "tag_handler")),
	}
}

// ListTags handles GET /tags requests.
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagService.ListTags(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tags")
		return
	}
	if tags == nil {
		tags = []*domain.Tag{}
	}

	shared.RespondWithData(w, r, http.StatusOK, tags)
}

// GetTag handles GET /tags/{tagID} requests.
func (h *TagHandler) GetTag(w http.ResponseWriter, r *http.Request) {
	tagID, err := getPathParam(r, TagIDParam)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tag, err := h.tagService.GetTag(r.Context(), tagID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get tag")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, tag)
}

// CreateTag handles POST /tags requests.
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req CreateTagRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	tag, err := h.tagService.CreateTag(r.Context(), req.Name, req.Color)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create tag")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("tag created",
		slog.String("tag_id", tag.ID))

	shared.RespondWithData(w, r, http.StatusCreated, tag)
}

// UpdateTag handles PATCH /tags/{tagID} requests.
func (h *TagHandler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	tagID, err := getPathParam(r, TagIDParam)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateTagRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	tag, err := h.tagService.UpdateTag(r.Context(), tagID, domain.TagPatch{Name: req.Name, Color: req.Color})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update tag")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, tag)
}

// DeleteTag handles DELETE /tags/{tagID} requests. Tasks that reference the
// tag keep the dangling ID.
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	tagID, err := getPathParam(r, TagIDParam)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.tagService.DeleteTag(r.Context(), tagID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete tag")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("tag deleted",
		slog.String("tag_id", tagID))

	w.WriteHeader(http.StatusNoContent)
}
