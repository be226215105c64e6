// internal/adapters/db/category_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
	"github.com/easycatalog/easycatalog-be/internal/core/ports"
)

// categoryRepository implements ports.CategoryRepository
type categoryRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *Database, logger *slog.Logger) ports.CategoryRepository {
	return &categoryRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "category")),
	}
}

// Save creates a new category
func (r *categoryRepository) Save(ctx context.Context, category *domain.Category) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO categories (
			id, store_id, parent_id, name, slug, description,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		category.ID, category.StoreID, category.ParentID,
		category.Name, category.Slug, nullIfEmpty(category.Description),
		category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}

	r.logger.DebugContext(ctx, "category saved",
		slog.String("category_id", category.ID.String()),
		slog.String("slug", category.Slug),
	)
	return nil
}

// Update modifies an existing category
func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE categories
		SET parent_id = $3, name = $4, slug = $5, description = $6, updated_at = now()
		WHERE id = $1 AND store_id = $2`,
		category.ID, category.StoreID, category.ParentID,
		category.Name, category.Slug, nullIfEmpty(category.Description),
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", category.ID, domain.ErrNotFound)
	}
	return nil
}

func scanCategory(row pgx.Row, c *domain.Category) error {
	var description *string
	if err := row.Scan(
		&c.ID, &c.StoreID, &c.ParentID, &c.Name, &c.Slug, &description,
		&c.CreatedAt, &c.UpdatedAt, &c.ProductCount,
	); err != nil {
		return err
	}
	if description != nil {
		c.Description = *description
	}
	return nil
}

const categoryColumns = `
	c.id, c.store_id, c.parent_id, c.name, c.slug, c.description,
	c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM products p WHERE p.category_id = c.id) AS product_count`

// FindByID fetches a category with its product count
func (r *categoryRepository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*domain.Category, error) {
	var category domain.Category
	err := scanCategory(r.db.QueryRow(ctx, `
		SELECT`+categoryColumns+`
		FROM categories c
		WHERE c.id = $1 AND c.store_id = $2`,
		id, storeID,
	), &category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

// FindAll returns all of the store's categories flat, name-ordered
func (r *categoryRepository) FindAll(ctx context.Context, storeID uuid.UUID) ([]domain.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT`+categoryColumns+`
		FROM categories c
		WHERE c.store_id = $1
		ORDER BY c.name ASC`,
		storeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

// Delete removes a category. Products keep existing with category_id NULL
// and child categories are re-rooted, both via FK actions in the schema.
func (r *categoryRepository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM categories WHERE id = $1 AND store_id = $2`,
		id, storeID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}

	r.logger.InfoContext(ctx, "category deleted", slog.String("category_id", id.String()))
	return nil
}

// SlugExists reports whether another category in the store uses the slug
func (r *categoryRepository) SlugExists(ctx context.Context, storeID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error) {
	return r.db.Exists(ctx,
		`SELECT 1 FROM categories WHERE store_id = $1 AND slug = $2 AND id != $3`,
		storeID, slug, excludeID,
	)
}
