package store

import (
	"context"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TagStore defines the interface for tag data persistence.
// It does not enforce name uniqueness and never touches tasks that
// reference a tag.
type TagStore interface {
	// List returns all tags in insertion order.
	List(ctx context.Context) ([]*domain.Tag, error)

	// Get retrieves a tag by its ID.
	// Returns ErrTagNotFound if the tag does not exist.
	Get(ctx context.Context, id string) (*domain.Tag, error)

	// Create stores a new tag with a generated ID and timestamps.
	// Returns domain validation errors for an empty name or malformed color.
	Create(ctx context.Context, name, color string) (*domain.Tag, error)

	// Update applies patch to the tag with the given ID.
	// Returns ErrTagNotFound if the tag does not exist.
	Update(ctx context.Context, id string, patch domain.TagPatch) (*domain.Tag, error)

	// Delete removes a tag by its ID. Tasks referencing it keep the dangling ID.
	// Returns ErrTagNotFound if the tag does not exist.
	Delete(ctx context.Context, id string) error
}
