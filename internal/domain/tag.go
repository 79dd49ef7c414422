package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var colorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Tag is a named, colored label that tasks reference by ID.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TagPatch is a sparse update of a tag. Nil fields are left unchanged.
type TagPatch struct {
	Name  *string
	Color *string
}

// NewTag creates a new Tag with a generated ID and timestamps set to now.
// Name uniqueness is not checked here.
func NewTag(name, color string, now time.Time) (*Tag, error) {
	tag := &Tag{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := tag.Validate(); err != nil {
		return nil, err
	}

	return tag, nil
}

// Validate checks if the Tag has valid data.
func (t *Tag) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyTagName
	}
	return ValidateColor(t.Color)
}

// ApplyPatch overwrites the fields present in patch and bumps UpdatedAt.
// The tag is left untouched when the patched result would be invalid.
func (t *Tag) ApplyPatch(patch TagPatch, now time.Time) error {
	updated := *t
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Color != nil {
		updated.Color = *patch.Color
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = now
	*t = updated
	return nil
}

// SameName reports whether name matches the tag's name case-insensitively.
func (t *Tag) SameName(name string) bool {
	return strings.EqualFold(t.Name, name)
}

// ValidateColor checks that color is a "#" followed by six hex digits.
func ValidateColor(color string) error {
	if !colorRegex.MatchString(color) {
		return ErrInvalidColor
	}
	return nil
}
