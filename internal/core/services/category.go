// internal/core/services/category.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
	"github.com/easycatalog/easycatalog-be/internal/core/ports"
)

// CategoryService handles category business logic
type CategoryService struct {
	categories ports.CategoryRepository
	logger     *slog.Logger
}

// Statically assert that *CategoryService implements the CategoryService interface.
var _ ports.CategoryService = (*CategoryService)(nil)

// NewCategoryService creates a new category service
func NewCategoryService(categories ports.CategoryRepository, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		logger:     logger.With(slog.String("service", "category")),
	}
}

// CreateCategory validates slug uniqueness and persists a new category
func (s *CategoryService) CreateCategory(ctx context.Context, category *domain.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	taken, err := s.categories.SlugExists(ctx, category.StoreID, category.Slug, category.ID)
	if err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		return fmt.Errorf("%w: category slug %q", domain.ErrDuplicate, category.Slug)
	}

	category.PrepareForStorage()
	if err := s.categories.Save(ctx, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.InfoContext(ctx, "category created",
		slog.String("category_id", category.ID.String()),
		slog.String("slug", category.Slug))
	return nil
}

// GetCategory fetches a category by id
func (s *CategoryService) GetCategory(ctx context.Context, storeID, id uuid.UUID) (*domain.Category, error) {
	return s.categories.FindByID(ctx, storeID, id)
}

// ListCategories returns root categories with children nested one level
func (s *CategoryService) ListCategories(ctx context.Context, storeID uuid.UUID) ([]domain.Category, error) {
	flat, err := s.categories.FindAll(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	children := make(map[uuid.UUID][]domain.Category)
	for _, c := range flat {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	var roots []domain.Category
	for _, c := range flat {
		if c.ParentID != nil {
			continue
		}
		c.Children = children[c.ID]
		roots = append(roots, c)
	}

	return roots, nil
}

// UpdateCategory validates and persists category changes
func (s *CategoryService) UpdateCategory(ctx context.Context, category *domain.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	taken, err := s.categories.SlugExists(ctx, category.StoreID, category.Slug, category.ID)
	if err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		return fmt.Errorf("%w: category slug %q", domain.ErrDuplicate, category.Slug)
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// DeleteCategory removes a category; attached products are detached by
// the schema, not deleted
func (s *CategoryService) DeleteCategory(ctx context.Context, storeID, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, storeID, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
