// internal/core/ports/catalog_service.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
)

// StoreService defines the application service port for stores.
type StoreService interface {
	CreateStore(ctx context.Context, store *domain.Store) error
	GetStore(ctx context.Context, id uuid.UUID) (*domain.Store, error)
	UpdateStore(ctx context.Context, store *domain.Store) error
	DeleteStore(ctx context.Context, id uuid.UUID) error

	UpsertIntegration(ctx context.Context, integration *domain.TikTokIntegration) error
	GetIntegration(ctx context.Context, storeID uuid.UUID) (*domain.TikTokIntegration, error)
	DeleteIntegration(ctx context.Context, storeID uuid.UUID) error
}

// CategoryService defines the application service port for categories.
type CategoryService interface {
	CreateCategory(ctx context.Context, category *domain.Category) error
	GetCategory(ctx context.Context, storeID, id uuid.UUID) (*domain.Category, error)
	// ListCategories returns root categories with Children nested one
	// level deep and product counts filled in.
	ListCategories(ctx context.Context, storeID uuid.UUID) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, storeID, id uuid.UUID) error
}

// ProductService defines the application service port for products.
type ProductService interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	GetProduct(ctx context.Context, storeID, id uuid.UUID) (*domain.Product, error)
	ListProducts(ctx context.Context, params ProductListParams) (*ProductListResult, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, storeID, id uuid.UUID) error

	AddVariant(ctx context.Context, storeID uuid.UUID, variant *domain.ProductVariant) error
	UpdateVariant(ctx context.Context, storeID uuid.UUID, variant *domain.ProductVariant) error
	DeleteVariant(ctx context.Context, storeID, variantID uuid.UUID) error

	AddImage(ctx context.Context, storeID uuid.UUID, image *domain.ProductImage) error
	DeleteImage(ctx context.Context, storeID, imageID uuid.UUID) error
	ReorderImages(ctx context.Context, storeID, productID uuid.UUID, imageIDs []uuid.UUID) error
}

// ProductListResult holds the result of listing products
type ProductListResult struct {
	Products   []*domain.Product `json:"products"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
	TotalPages int               `json:"total_pages"`
}
