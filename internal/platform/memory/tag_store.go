package memory

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TagStore implements the store.TagStore interface on top of a DB.
type TagStore struct {
	db     *DB
	logger *slog.Logger
}

// NewTagStore creates a new in-memory implementation of the TagStore interface.
// If logger is nil, a default logger will be used.
func NewTagStore(db *DB, logger *slog.Logger) *TagStore {
	if db == nil {
		panic("db cannot be nil") // ALLOW-PANIC: constructor misuse
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TagStore{
		db:     db,
		logger: logger.With(slog.String("component", "tag_store")),
	}
}

// Ensure TagStore implements store.TagStore interface
var _ store.TagStore = (*TagStore)(nil)

// List implements store.TagStore.List.
func (s *TagStore) List(ctx context.Context) ([]*domain.Tag, error) {
	tags := []*domain.Tag{}
	err := s.db.read(ctx, func() error {
		for _, id := range s.db.tagOrder {
			tag := *s.db.tags[id]
			tags = append(tags, &tag)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// Get implements store.TagStore.Get.
// Returns store.ErrTagNotFound if the tag does not exist.
func (s *TagStore) Get(ctx context.Context, id string) (*domain.Tag, error) {
	var tag domain.Tag
	err := s.db.read(ctx, func() error {
		stored, ok := s.db.tags[id]
		if !ok {
			return store.ErrTagNotFound
		}
		tag = *stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Create implements store.TagStore.Create.
func (s *TagStore) Create(ctx context.Context, name, color string) (*domain.Tag, error) {
	var created domain.Tag
	err := s.db.write(ctx, func(now time.Time) error {
		tag, err := domain.NewTag(name, color, now)
		if err != nil {
			return store.NewStoreError("tag", "create", "invalid tag", err)
		}
		s.db.tags[tag.ID] = tag
		s.db.tagOrder = append(s.db.tagOrder, tag.ID)
		created = *tag
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("tag created",
		slog.String("tag_id", created.ID),
		slog.String("name", created.Name))
	return &created, nil
}

// Update implements store.TagStore.Update.
// Returns store.ErrTagNotFound if the tag does not exist.
func (s *TagStore) Update(ctx context.Context, id string, patch domain.TagPatch) (*domain.Tag, error) {
	var updated domain.Tag
	err := s.db.write(ctx, func(now time.Time) error {
		stored, ok := s.db.tags[id]
		if !ok {
			return store.ErrTagNotFound
		}
		if err := stored.ApplyPatch(patch, now); err != nil {
			return store.NewStoreError("tag", "update", "change rejected", err)
		}
		updated = *stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("tag updated", slog.String("tag_id", id))
	return &updated, nil
}

// Delete implements store.TagStore.Delete.
// Tasks referencing the tag are left untouched.
func (s *TagStore) Delete(ctx context.Context, id string) error {
	err := s.db.write(ctx, func(time.Time) error {
		if _, ok := s.db.tags[id]; !ok {
			return store.ErrTagNotFound
		}
		delete(s.db.tags, id)
		for i, tagID := range s.db.tagOrder {
			if tagID == id {
				s.db.tagOrder = append(s.db.tagOrder[:i], s.db.tagOrder[i+1:]...)
				break
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("tag deleted", slog.String("tag_id", id))
	return nil
}
