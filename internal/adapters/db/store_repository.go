// internal/adapters/db/store_repository.go
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

// storeRepository implements ports.StoreRepository
type storeRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewStoreRepository creates a new store repository
func NewStoreRepository(db *Database, logger *slog.Logger) ports.StoreRepository {
	return &storeRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "store")),
	}
}

// Save creates a new store
func (r *storeRepository) Save(ctx context.Context, store *domain.Store) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO stores (id, name, description, logo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		store.ID, store.Name, nullIfEmpty(store.Description), nullIfEmpty(store.LogoURL),
		store.CreatedAt, store.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save store: %w", err)
	}

	r.logger.DebugContext(ctx, "store saved", slog.String("store_id", store.ID.String()))
	return nil
}

// Update modifies an existing store
func (r *storeRepository) Update(ctx context.Context, store *domain.Store) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE stores
		SET name = $2, description = $3, logo_url = $4, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`,
		store.ID, store.Name, nullIfEmpty(store.Description), nullIfEmpty(store.LogoURL),
	)
	if err != nil {
		return fmt.Errorf("failed to update store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("store %s: %w", store.ID, domain.ErrNotFound)
	}
	return nil
}

// FindByID fetches a store by id
func (r *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	var (
		store       domain.Store
		description *string
		logoURL     *string
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, logo_url, created_at, updated_at
		FROM stores
		WHERE id = $1 AND deleted_at IS NULL`,
		id,
	).Scan(&store.ID, &store.Name, &description, &logoURL, &store.CreatedAt, &store.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("store %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find store: %w", err)
	}

	if description != nil {
		store.Description = *description
	}
	if logoURL != nil {
		store.LogoURL = *logoURL
	}
	return &store, nil
}

// SoftDelete marks the store deleted without dropping its data
func (r *storeRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE stores SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("store %s: %w", id, domain.ErrNotFound)
	}

	r.logger.InfoContext(ctx, "store soft-deleted", slog.String("store_id", id.String()))
	return nil
}

// Exists reports whether the store exists and is not deleted
func (r *storeRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.db.Exists(ctx,
		`SELECT 1 FROM stores WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
}
