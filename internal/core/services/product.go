// internal/core/services/product.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
	"github.com/easycatalog/easycatalog-be/internal/core/ports"
)

// ProductService handles product, variant and image business logic
type ProductService struct {
	products ports.ProductRepository
	cache    ports.CacheRepository
	logger   *slog.Logger
}

// Statically assert that *ProductService implements the ProductService interface.
var _ ports.ProductService = (*ProductService)(nil)

// NewProductService creates a new product service
func NewProductService(products ports.ProductRepository, cache ports.CacheRepository, logger *slog.Logger) *ProductService {
	return &ProductService{
		products: products,
		cache:    cache,
		logger:   logger.With(slog.String("service", "product")),
	}
}

// CreateProduct validates the product tree and persists it atomically
func (s *ProductService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	taken, err := s.products.SlugExists(ctx, product.StoreID, product.Slug, product.ID)
	if err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		return fmt.Errorf("%w: product slug %q", domain.ErrDuplicate, product.Slug)
	}

	product.PrepareForStorage()
	if err := s.products.Save(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidateDashboard(ctx)

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID.String()),
		slog.String("slug", product.Slug),
		slog.Int("variants", len(product.Variants)))
	return nil
}

// GetProduct fetches a product with variants, images and category
func (s *ProductService) GetProduct(ctx context.Context, storeID, id uuid.UUID) (*domain.Product, error) {
	return s.products.FindByID(ctx, storeID, id)
}

// ListProducts lists products with filtering and pagination
func (s *ProductService) ListProducts(ctx context.Context, params ports.ProductListParams) (*ports.ProductListResult, error) {
	if params.StoreID == uuid.Nil {
		return nil, fmt.Errorf("%w: store_id is required", domain.ErrValidation)
	}
	if params.Status != "" && !domain.ValidStatus(params.Status) {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, params.Status)
	}

	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 20
	}
	if params.PageSize > 100 {
		params.PageSize = 100
	}

	products, total, err := s.products.FindAll(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &ports.ProductListResult{
		Products:   products,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: total,
		TotalPages: int(math.Ceil(float64(total) / float64(params.PageSize))),
	}, nil
}

// UpdateProduct validates and persists product changes
func (s *ProductService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	taken, err := s.products.SlugExists(ctx, product.StoreID, product.Slug, product.ID)
	if err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		return fmt.Errorf("%w: product slug %q", domain.ErrDuplicate, product.Slug)
	}

	if err := s.products.Update(ctx, product); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	s.invalidateDashboard(ctx)
	return nil
}

// DeleteProduct removes a product and its variants, images and movements
func (s *ProductService) DeleteProduct(ctx context.Context, storeID, id uuid.UUID) error {
	if err := s.products.Delete(ctx, storeID, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.invalidateDashboard(ctx)
	return nil
}

// AddVariant validates SKU uniqueness and adds a variant to a product
func (s *ProductService) AddVariant(ctx context.Context, storeID uuid.UUID, variant *domain.ProductVariant) error {
	if variant.ProductID == uuid.Nil {
		return fmt.Errorf("%w: product_id is required", domain.ErrValidation)
	}
	if err := variant.Validate(); err != nil {
		return err
	}

	// Adding a variant under a foreign store's product must fail closed.
	if _, err := s.products.FindByID(ctx, storeID, variant.ProductID); err != nil {
		return err
	}

	if variant.SKU != "" {
		taken, err := s.products.SKUExists(ctx, storeID, variant.SKU, variant.ID)
		if err != nil {
			return fmt.Errorf("failed to check sku: %w", err)
		}
		if taken {
			return fmt.Errorf("%w: sku %q", domain.ErrDuplicate, variant.SKU)
		}
	}

	variant.PrepareForStorage()
	if err := s.products.SaveVariant(ctx, variant); err != nil {
		return fmt.Errorf("failed to add variant: %w", err)
	}

	s.invalidateDashboard(ctx)

	s.logger.InfoContext(ctx, "variant added",
		slog.String("variant_id", variant.ID.String()),
		slog.String("product_id", variant.ProductID.String()))
	return nil
}

// UpdateVariant validates and persists variant changes. Stock cannot be
// changed here; that is the ledger's job.
func (s *ProductService) UpdateVariant(ctx context.Context, storeID uuid.UUID, variant *domain.ProductVariant) error {
	if err := variant.Validate(); err != nil {
		return err
	}

	if variant.SKU != "" {
		taken, err := s.products.SKUExists(ctx, storeID, variant.SKU, variant.ID)
		if err != nil {
			return fmt.Errorf("failed to check sku: %w", err)
		}
		if taken {
			return fmt.Errorf("%w: sku %q", domain.ErrDuplicate, variant.SKU)
		}
	}

	if err := s.products.UpdateVariant(ctx, storeID, variant); err != nil {
		return fmt.Errorf("failed to update variant: %w", err)
	}

	s.invalidateDashboard(ctx)
	return nil
}

// DeleteVariant removes a variant and its ledger entries
func (s *ProductService) DeleteVariant(ctx context.Context, storeID, variantID uuid.UUID) error {
	if err := s.products.DeleteVariant(ctx, storeID, variantID); err != nil {
		return fmt.Errorf("failed to delete variant: %w", err)
	}
	s.invalidateDashboard(ctx)
	return nil
}

// AddImage appends an image to the product's gallery
func (s *ProductService) AddImage(ctx context.Context, storeID uuid.UUID, image *domain.ProductImage) error {
	if image.ProductID == uuid.Nil {
		return fmt.Errorf("%w: product_id is required", domain.ErrValidation)
	}
	if image.URL == "" {
		return fmt.Errorf("%w: url is required", domain.ErrValidation)
	}

	if _, err := s.products.FindByID(ctx, storeID, image.ProductID); err != nil {
		return err
	}

	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	if err := s.products.SaveImage(ctx, image); err != nil {
		return fmt.Errorf("failed to add image: %w", err)
	}
	return nil
}

// DeleteImage removes an image
func (s *ProductService) DeleteImage(ctx context.Context, storeID, imageID uuid.UUID) error {
	if err := s.products.DeleteImage(ctx, storeID, imageID); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// ReorderImages rewrites gallery positions to match the given order
func (s *ProductService) ReorderImages(ctx context.Context, storeID, productID uuid.UUID, imageIDs []uuid.UUID) error {
	if len(imageIDs) == 0 {
		return fmt.Errorf("%w: image ids are required", domain.ErrValidation)
	}

	if _, err := s.products.FindByID(ctx, storeID, productID); err != nil {
		return err
	}

	if err := s.products.ReorderImages(ctx, productID, imageIDs); err != nil {
		return fmt.Errorf("failed to reorder images: %w", err)
	}
	return nil
}

// invalidateDashboard drops cached dashboard payloads after catalog writes
func (s *ProductService) invalidateDashboard(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "dashboard:*"); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate dashboard cache", "err", err)
	}
}
