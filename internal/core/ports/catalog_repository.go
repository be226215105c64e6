// internal/core/ports/catalog_repository.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
)

// StoreRepository defines the persistence port for stores.
type StoreRepository interface {
	Save(ctx context.Context, store *domain.Store) error
	Update(ctx context.Context, store *domain.Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Store, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// CategoryRepository defines the persistence port for categories.
type CategoryRepository interface {
	Save(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*domain.Category, error)
	// FindAll returns the store's categories flat, each with its
	// ProductCount populated.
	FindAll(ctx context.Context, storeID uuid.UUID) ([]domain.Category, error)
	Delete(ctx context.Context, storeID, id uuid.UUID) error
	SlugExists(ctx context.Context, storeID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error)
}

// ProductRepository defines the persistence port for products, their
// variants and images.
type ProductRepository interface {
	Save(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*domain.Product, error)
	FindAll(ctx context.Context, params ProductListParams) ([]*domain.Product, int64, error)
	Delete(ctx context.Context, storeID, id uuid.UUID) error
	Stats(ctx context.Context, storeID uuid.UUID, lowStockThreshold int) (*domain.ProductStats, error)
	SlugExists(ctx context.Context, storeID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error)

	SaveVariant(ctx context.Context, variant *domain.ProductVariant) error
	UpdateVariant(ctx context.Context, storeID uuid.UUID, variant *domain.ProductVariant) error
	DeleteVariant(ctx context.Context, storeID, variantID uuid.UUID) error
	FindVariantByID(ctx context.Context, storeID, variantID uuid.UUID) (*domain.ProductVariant, error)
	SKUExists(ctx context.Context, storeID uuid.UUID, sku string, excludeVariantID uuid.UUID) (bool, error)

	SaveImage(ctx context.Context, image *domain.ProductImage) error
	DeleteImage(ctx context.Context, storeID, imageID uuid.UUID) error
	ReorderImages(ctx context.Context, productID uuid.UUID, imageIDs []uuid.UUID) error
}

// TikTokRepository defines the persistence port for shop integrations.
type TikTokRepository interface {
	UpsertByStore(ctx context.Context, integration *domain.TikTokIntegration) error
	FindByStore(ctx context.Context, storeID uuid.UUID) (*domain.TikTokIntegration, error)
	DeleteByStore(ctx context.Context, storeID uuid.UUID) error
}

// ProductListParams holds parameters for listing products
type ProductListParams struct {
	StoreID    uuid.UUID
	Search     string
	Status     domain.ProductStatus
	CategoryID *uuid.UUID
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
}
