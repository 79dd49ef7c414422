package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TagService provides tag-related operations
type TagService interface {
	// ListTags returns all tags in creation order.
	ListTags(ctx context.Context) ([]*domain.Tag, error)

	// GetTag retrieves a tag by its ID.
	GetTag(ctx context.Context, id string) (*domain.Tag, error)

	// CreateTag creates a tag. Returns ErrTagNameExists if the name is taken.
	CreateTag(ctx context.Context, name, color string) (*domain.Tag, error)

	// UpdateTag applies patch. Returns ErrTagNameExists if a different tag has the new name.
	UpdateTag(ctx context.Context, id string, patch domain.TagPatch) (*domain.Tag, error)

	// DeleteTag removes a tag. Tasks referencing it keep the ID.
	DeleteTag(ctx context.Context, id string) error
}

// tagServiceImpl implements the TagService interface
type tagServiceImpl struct {
	tags   store.TagStore
	logger *slog.Logger

	// writeMu serializes the name check with the write that follows it.
	writeMu sync.Mutex
}

// NewTagService creates a new TagService.
// It returns an error if the tag store is nil.
func NewTagService(tags store.TagStore, logger *slog.Logger) (TagService, error) {
	if tags == nil {
		return nil, domain.NewValidationError("tags", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &tagServiceImpl{
		tags:   tags,
		logger: logger.With(slog.String("component", "tag_service")),
	}, nil
}

func (s *tagServiceImpl) wrap(operation, message string, err error) error {
	return NewServiceError("tag", operation, message, err)
}

// ListTags implements TagService.ListTags
func (s *tagServiceImpl) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, s.wrap("list_tags", "failed to list tags", err)
	}
	return tags, nil
}

// GetTag implements TagService.GetTag
func (s *tagServiceImpl) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	tag, err := s.tags.Get(ctx, id)
	if err != nil {
		return nil, s.wrap("get_tag", "failed to get tag", err)
	}
	return tag, nil
}

// CreateTag implements TagService.CreateTag
func (s *tagServiceImpl) CreateTag(ctx context.Context, name, color string) (*domain.Tag, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.checkNameFree(ctx, name, ""); err != nil {
		return nil, s.wrap("create_tag", "name check failed", err)
	}

	tag, err := s.tags.Create(ctx, name, color)
	if err != nil {
		return nil, s.wrap("create_tag", "failed to create tag", err)
	}
	return tag, nil
}

// UpdateTag implements TagService.UpdateTag
func (s *tagServiceImpl) UpdateTag(ctx context.Context, id string, patch domain.TagPatch) (*domain.Tag, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if patch.Name != nil {
		if err := s.checkNameFree(ctx, *patch.Name, id); err != nil {
			return nil, s.wrap("update_tag", "name check failed", err)
		}
	}

	tag, err := s.tags.Update(ctx, id, patch)
	if err != nil {
		return nil, s.wrap("update_tag", "failed to update tag", err)
	}
	return tag, nil
}

// DeleteTag implements TagService.DeleteTag
func (s *tagServiceImpl) DeleteTag(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.tags.Delete(ctx, id); err != nil {
		return s.wrap("delete_tag", "failed to delete tag", err)
	}
	return nil
}

// checkNameFree returns ErrTagNameExists if any tag other than excludeID is
// called name, ignoring case.
func (s *tagServiceImpl) checkNameFree(ctx context.Context, name, excludeID string) error {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return err
	}

	for _, tag := range tags {
		if tag.ID != excludeID && tag.SameName(name) {
			logger.FromContextOrDefault(ctx, s.logger).Debug("tag name conflict",
				slog.String("name", name),
				slog.String("existing_tag_id", tag.ID))
			return ErrTagNameExists
		}
	}
	return nil
}
