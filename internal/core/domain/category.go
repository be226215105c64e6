// internal/core/domain/category.go
package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Category groups products within a store. Categories form a tree via
// ParentID; slugs are unique per store.
type Category struct {
	ID          uuid.UUID  `json:"id"`
	StoreID     uuid.UUID  `json:"store_id"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Populated on detail reads, not stored on the row.
	Children     []Category `json:"children,omitempty"`
	ProductCount int        `json:"product_count"`
}

// ValidateSlug checks the shared slug format used by categories and products
func ValidateSlug(slug string) error {
	if len(slug) < 2 || len(slug) > 100 {
		return fmt.Errorf("%w: slug must be between 2 and 100 characters", ErrValidation)
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("%w: slug may only contain lowercase letters, numbers and hyphens", ErrValidation)
	}
	return nil
}

// Validate performs domain validation on the category
func (c *Category) Validate() error {
	if c.StoreID == uuid.Nil {
		return fmt.Errorf("%w: store_id is required", ErrValidation)
	}
	if len(c.Name) < 2 || len(c.Name) > 100 {
		return fmt.Errorf("%w: name must be between 2 and 100 characters", ErrValidation)
	}
	if err := ValidateSlug(c.Slug); err != nil {
		return err
	}
	if c.ParentID != nil && *c.ParentID == c.ID {
		return fmt.Errorf("%w: category cannot be its own parent", ErrValidation)
	}
	return nil
}

// PrepareForStorage sets identity and timestamps before persistence
func (c *Category) PrepareForStorage() {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}
