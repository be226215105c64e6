// internal/core/services/product_service_test.go
package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
	"github.com/easycatalog/easycatalog-be/internal/core/ports"
	"github.com/easycatalog/easycatalog-be/internal/core/services"
	"github.com/easycatalog/easycatalog-be/test/helpers"
	"github.com/easycatalog/easycatalog-be/test/mocks"
)

func newProductService(t *testing.T) (*services.ProductService, *mocks.MockProductRepository, *mocks.MockCacheRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockProductRepository(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)
	svc := services.NewProductService(repo, cache, helpers.TestLogger().Logger)
	return svc, repo, cache
}

func testProduct(storeID uuid.UUID) *domain.Product {
	return &domain.Product{
		StoreID: storeID,
		Name:    "Classic Cotton Tee",
		Slug:    "classic-cotton-tee",
		Status:  domain.StatusActive,
		Variants: []domain.ProductVariant{
			{Name: "Medium / Black", SKU: "TEE-BLK-M", Price: decimal.NewFromFloat(19.99)},
		},
	}
}

func TestProductService_CreateProduct(t *testing.T) {
	storeID := uuid.New()

	tests := []struct {
		name          string
		product       *domain.Product
		setupMocks    func(*mocks.MockProductRepository, *mocks.MockCacheRepository)
		expectedError error
	}{
		{
			name:    "successful_create",
			product: testProduct(storeID),
			setupMocks: func(repo *mocks.MockProductRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					SlugExists(gomock.Any(), storeID, "classic-cotton-tee", gomock.Any()).
					Return(false, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
				cache.EXPECT().DeletePattern(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name:    "duplicate_slug_rejected",
			product: testProduct(storeID),
			setupMocks: func(repo *mocks.MockProductRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					SlugExists(gomock.Any(), storeID, "classic-cotton-tee", gomock.Any()).
					Return(true, nil)
			},
			expectedError: domain.ErrDuplicate,
		},
		{
			name: "invalid_product_rejected",
			product: &domain.Product{
				StoreID: storeID,
				Name:    "x",
				Slug:    "x2",
			},
			setupMocks:    func(repo *mocks.MockProductRepository, cache *mocks.MockCacheRepository) {},
			expectedError: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newProductService(t)
			tt.setupMocks(repo, cache)

			err := svc.CreateProduct(context.Background(), tt.product)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, tt.product.ID)
				for _, v := range tt.product.Variants {
					assert.Equal(t, tt.product.ID, v.ProductID)
				}
			}
		})
	}
}

func TestProductService_ListProducts(t *testing.T) {
	storeID := uuid.New()

	t.Run("defaults_pagination", func(t *testing.T) {
		svc, repo, _ := newProductService(t)

		repo.EXPECT().
			FindAll(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p ports.ProductListParams) ([]*domain.Product, int64, error) {
				assert.Equal(t, 1, p.Page)
				assert.Equal(t, 20, p.PageSize)
				return []*domain.Product{}, 0, nil
			})

		result, err := svc.ListProducts(context.Background(), ports.ProductListParams{StoreID: storeID})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Page)
	})

	t.Run("computes_total_pages", func(t *testing.T) {
		svc, repo, _ := newProductService(t)

		repo.EXPECT().
			FindAll(gomock.Any(), gomock.Any()).
			Return([]*domain.Product{}, int64(45), nil)

		result, err := svc.ListProducts(context.Background(), ports.ProductListParams{
			StoreID: storeID, Page: 1, PageSize: 20,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(45), result.TotalCount)
		assert.Equal(t, 3, result.TotalPages)
	})

	t.Run("rejects_missing_store", func(t *testing.T) {
		svc, _, _ := newProductService(t)

		_, err := svc.ListProducts(context.Background(), ports.ProductListParams{})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejects_unknown_status_filter", func(t *testing.T) {
		svc, _, _ := newProductService(t)

		_, err := svc.ListProducts(context.Background(), ports.ProductListParams{
			StoreID: storeID, Status: "RETIRED",
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestProductService_AddVariant(t *testing.T) {
	storeID := uuid.New()
	productID := uuid.New()

	variant := func() *domain.ProductVariant {
		return &domain.ProductVariant{
			ProductID: productID,
			Name:      "Large / Navy",
			SKU:       "HOOD-NVY-L",
			Price:     decimal.NewFromFloat(49.99),
		}
	}

	t.Run("successful_add", func(t *testing.T) {
		svc, repo, cache := newProductService(t)

		repo.EXPECT().
			FindByID(gomock.Any(), storeID, productID).
			Return(&domain.Product{ID: productID, StoreID: storeID}, nil)
		repo.EXPECT().
			SKUExists(gomock.Any(), storeID, "HOOD-NVY-L", gomock.Any()).
			Return(false, nil)
		repo.EXPECT().SaveVariant(gomock.Any(), gomock.Any()).Return(nil)
		cache.EXPECT().DeletePattern(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		v := variant()
		require.NoError(t, svc.AddVariant(context.Background(), storeID, v))
		assert.NotEqual(t, uuid.Nil, v.ID)
	})

	t.Run("foreign_store_product_rejected", func(t *testing.T) {
		svc, repo, _ := newProductService(t)

		repo.EXPECT().
			FindByID(gomock.Any(), storeID, productID).
			Return(nil, domain.ErrNotFound)

		err := svc.AddVariant(context.Background(), storeID, variant())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("duplicate_sku_rejected", func(t *testing.T) {
		svc, repo, _ := newProductService(t)

		repo.EXPECT().
			FindByID(gomock.Any(), storeID, productID).
			Return(&domain.Product{ID: productID, StoreID: storeID}, nil)
		repo.EXPECT().
			SKUExists(gomock.Any(), storeID, "HOOD-NVY-L", gomock.Any()).
			Return(true, nil)

		err := svc.AddVariant(context.Background(), storeID, variant())
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("missing_product_id_rejected", func(t *testing.T) {
		svc, _, _ := newProductService(t)

		v := variant()
		v.ProductID = uuid.Nil
		err := svc.AddVariant(context.Background(), storeID, v)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestProductService_ReorderImages(t *testing.T) {
	storeID := uuid.New()
	productID := uuid.New()

	t.Run("successful_reorder", func(t *testing.T) {
		svc, repo, _ := newProductService(t)

		ids := []uuid.UUID{uuid.New(), uuid.New()}
		repo.EXPECT().
			FindByID(gomock.Any(), storeID, productID).
			Return(&domain.Product{ID: productID, StoreID: storeID}, nil)
		repo.EXPECT().ReorderImages(gomock.Any(), productID, ids).Return(nil)

		require.NoError(t, svc.ReorderImages(context.Background(), storeID, productID, ids))
	})

	t.Run("empty_order_rejected", func(t *testing.T) {
		svc, _, _ := newProductService(t)

		err := svc.ReorderImages(context.Background(), storeID, productID, nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
