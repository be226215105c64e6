// internal/core/services/stock_service_test.go
package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
	"github.com/easycatalog/easycatalog-be/internal/core/ports"
	"github.com/easycatalog/easycatalog-be/internal/core/services"
	"github.com/easycatalog/easycatalog-be/test/helpers"
	"github.com/easycatalog/easycatalog-be/test/mocks"
)

func newStockService(t *testing.T) (*services.StockService, *mocks.MockStockRepository, *mocks.MockCacheRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockStockRepository(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)
	svc := services.NewStockService(repo, cache, helpers.TestLogger().Logger)
	return svc, repo, cache
}

func TestStockService_RecordMovement(t *testing.T) {
	variantID := uuid.New()

	tests := []struct {
		name          string
		movement      *domain.StockMovement
		setupMocks    func(*mocks.MockStockRepository, *mocks.MockCacheRepository)
		expectedError error
		errorContains string
	}{
		{
			name: "successful_sale_movement",
			movement: &domain.StockMovement{
				VariantID: variantID,
				Type:      domain.MovementSale,
				Quantity:  -3,
			},
			setupMocks: func(repo *mocks.MockStockRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					ApplyMovement(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, m *domain.StockMovement) error {
						m.PreviousStock = 10
						m.NewStock = 7
						m.Seq = 42
						return nil
					})
				cache.EXPECT().DeletePattern(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "zero_delta_is_accepted",
			movement: &domain.StockMovement{
				VariantID: variantID,
				Type:      domain.MovementAdjustment,
				Quantity:  0,
			},
			setupMocks: func(repo *mocks.MockStockRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().ApplyMovement(gomock.Any(), gomock.Any()).Return(nil)
				cache.EXPECT().DeletePattern(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "missing_variant_id_fails_validation",
			movement: &domain.StockMovement{
				Type:     domain.MovementSale,
				Quantity: -1,
			},
			setupMocks:    func(repo *mocks.MockStockRepository, cache *mocks.MockCacheRepository) {},
			expectedError: domain.ErrValidation,
			errorContains: "variant_id is required",
		},
		{
			name: "invalid_type_fails_validation",
			movement: &domain.StockMovement{
				VariantID: variantID,
				Type:      "DAMAGE",
				Quantity:  -1,
			},
			setupMocks:    func(repo *mocks.MockStockRepository, cache *mocks.MockCacheRepository) {},
			expectedError: domain.ErrValidation,
			errorContains: "invalid movement type",
		},
		{
			name: "insufficient_stock_from_repository",
			movement: &domain.StockMovement{
				VariantID: variantID,
				Type:      domain.MovementSale,
				Quantity:  -100,
			},
			setupMocks: func(repo *mocks.MockStockRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					ApplyMovement(gomock.Any(), gomock.Any()).
					Return(domain.ErrInsufficientStock)
			},
			expectedError: domain.ErrInsufficientStock,
		},
		{
			name: "unknown_variant_from_repository",
			movement: &domain.StockMovement{
				VariantID: variantID,
				Type:      domain.MovementRestock,
				Quantity:  5,
			},
			setupMocks: func(repo *mocks.MockStockRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					ApplyMovement(gomock.Any(), gomock.Any()).
					Return(domain.ErrNotFound)
			},
			expectedError: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newStockService(t)
			tt.setupMocks(repo, cache)

			err := svc.RecordMovement(context.Background(), tt.movement)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestStockService_RecordMovement_FillsSnapshots(t *testing.T) {
	svc, repo, cache := newStockService(t)

	repo.EXPECT().
		ApplyMovement(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *domain.StockMovement) error {
			m.ID = uuid.New()
			m.PreviousStock = 12
			m.NewStock = 7
			m.Seq = 99
			return nil
		})
	cache.EXPECT().DeletePattern(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	movement := &domain.StockMovement{
		VariantID: uuid.New(),
		Type:      domain.MovementSale,
		Quantity:  -5,
	}
	require.NoError(t, svc.RecordMovement(context.Background(), movement))

	assert.Equal(t, 12, movement.PreviousStock)
	assert.Equal(t, 7, movement.NewStock)
	assert.Equal(t, int64(99), movement.Seq)
}

func TestStockService_AdjustToLevel(t *testing.T) {
	variantID := uuid.New()

	tests := []struct {
		name          string
		variantID     uuid.UUID
		newStock      int
		setupMocks    func(*mocks.MockStockRepository, *mocks.MockCacheRepository)
		expectedError error
		errorContains string
	}{
		{
			name:      "successful_adjustment",
			variantID: variantID,
			newStock:  25,
			setupMocks: func(repo *mocks.MockStockRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					ApplyAdjustment(gomock.Any(), variantID, 25, gomock.Any()).
					Return(&domain.StockMovement{
						VariantID:     variantID,
						Type:          domain.MovementAdjustment,
						Quantity:      15,
						PreviousStock: 10,
						NewStock:      25,
					}, nil)
				cache.EXPECT().DeletePattern(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name:      "adjust_to_zero_is_allowed",
			variantID: variantID,
			newStock:  0,
			setupMocks: func(repo *mocks.MockStockRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					ApplyAdjustment(gomock.Any(), variantID, 0, gomock.Any()).
					Return(&domain.StockMovement{
						VariantID:     variantID,
						Type:          domain.MovementAdjustment,
						Quantity:      -10,
						PreviousStock: 10,
						NewStock:      0,
					}, nil)
				cache.EXPECT().DeletePattern(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name:          "negative_target_rejected",
			variantID:     variantID,
			newStock:      -1,
			setupMocks:    func(repo *mocks.MockStockRepository, cache *mocks.MockCacheRepository) {},
			expectedError: domain.ErrValidation,
			errorContains: "new stock cannot be negative",
		},
		{
			name:          "nil_variant_rejected",
			variantID:     uuid.Nil,
			newStock:      5,
			setupMocks:    func(repo *mocks.MockStockRepository, cache *mocks.MockCacheRepository) {},
			expectedError: domain.ErrValidation,
			errorContains: "variant_id is required",
		},
		{
			name:      "unknown_variant",
			variantID: variantID,
			newStock:  5,
			setupMocks: func(repo *mocks.MockStockRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					ApplyAdjustment(gomock.Any(), variantID, 5, gomock.Any()).
					Return(nil, domain.ErrNotFound)
			},
			expectedError: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newStockService(t)
			tt.setupMocks(repo, cache)

			movement, err := svc.AdjustToLevel(context.Background(), tt.variantID, tt.newStock, "cycle count")

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Nil(t, movement)
			} else {
				require.NoError(t, err)
				require.NotNil(t, movement)
				assert.Equal(t, tt.newStock, movement.NewStock)
				assert.Equal(t, movement.PreviousStock+movement.Quantity, movement.NewStock)
			}
		})
	}
}

func TestStockService_GetCurrentStock(t *testing.T) {
	svc, repo, _ := newStockService(t)
	variantID := uuid.New()

	repo.EXPECT().GetStock(gomock.Any(), variantID).Return(17, nil)

	stock, err := svc.GetCurrentStock(context.Background(), variantID)
	require.NoError(t, err)
	assert.Equal(t, 17, stock)

	_, err = svc.GetCurrentStock(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStockService_ListMovements(t *testing.T) {
	variantID := uuid.New()
	storeID := uuid.New()

	tests := []struct {
		name          string
		params        ports.MovementListParams
		setupMocks    func(*mocks.MockStockRepository)
		validate      func(*testing.T, *ports.MovementListResult)
		expectedError error
	}{
		{
			name:   "defaults_page_and_page_size",
			params: ports.MovementListParams{VariantID: &variantID},
			setupMocks: func(repo *mocks.MockStockRepository) {
				repo.EXPECT().
					FindMovements(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p ports.MovementListParams) ([]domain.StockMovement, int64, error) {
						assert.Equal(t, 1, p.Page)
						assert.Equal(t, 20, p.PageSize)
						return []domain.StockMovement{}, 0, nil
					})
			},
			validate: func(t *testing.T, result *ports.MovementListResult) {
				assert.Equal(t, 1, result.Page)
				assert.Equal(t, 20, result.PageSize)
			},
		},
		{
			name:   "caps_page_size_at_100",
			params: ports.MovementListParams{StoreID: &storeID, Page: 2, PageSize: 500},
			setupMocks: func(repo *mocks.MockStockRepository) {
				repo.EXPECT().
					FindMovements(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p ports.MovementListParams) ([]domain.StockMovement, int64, error) {
						assert.Equal(t, 100, p.PageSize)
						return []domain.StockMovement{}, 250, nil
					})
			},
			validate: func(t *testing.T, result *ports.MovementListResult) {
				assert.Equal(t, int64(250), result.TotalCount)
				assert.Equal(t, 3, result.TotalPages)
			},
		},
		{
			name:   "filters_by_type",
			params: ports.MovementListParams{VariantID: &variantID, Type: domain.MovementSale},
			setupMocks: func(repo *mocks.MockStockRepository) {
				repo.EXPECT().
					FindMovements(gomock.Any(), gomock.Any()).
					Return([]domain.StockMovement{{Type: domain.MovementSale}}, int64(1), nil)
			},
			validate: func(t *testing.T, result *ports.MovementListResult) {
				require.Len(t, result.Movements, 1)
			},
		},
		{
			name:          "requires_scope",
			params:        ports.MovementListParams{},
			setupMocks:    func(repo *mocks.MockStockRepository) {},
			expectedError: domain.ErrValidation,
		},
		{
			name:          "rejects_invalid_type_filter",
			params:        ports.MovementListParams{VariantID: &variantID, Type: "BREAKAGE"},
			setupMocks:    func(repo *mocks.MockStockRepository) {},
			expectedError: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newStockService(t)
			tt.setupMocks(repo)

			result, err := svc.ListMovements(context.Background(), tt.params)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				if tt.validate != nil {
					tt.validate(t, result)
				}
			}
		})
	}
}

func TestStockService_Summarize(t *testing.T) {
	storeID := uuid.New()

	t.Run("defaults_threshold", func(t *testing.T) {
		svc, repo, cache := newStockService(t)

		cache.EXPECT().
			GetOrSet(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, dest interface{}, fetch func() (interface{}, error), _ interface{}) error {
				_, err := fetch()
				return err
			})
		repo.EXPECT().
			Summarize(gomock.Any(), storeID, domain.DefaultLowStockThreshold).
			Return(&domain.StockSummary{VariantCount: 3, Threshold: domain.DefaultLowStockThreshold}, nil)

		_, err := svc.Summarize(context.Background(), storeID, 0)
		require.NoError(t, err)
	})

	t.Run("bypasses_cache_on_cache_error", func(t *testing.T) {
		svc, repo, cache := newStockService(t)

		cache.EXPECT().
			GetOrSet(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("redis down"))
		repo.EXPECT().
			Summarize(gomock.Any(), storeID, 10).
			Return(&domain.StockSummary{TotalStock: 42, Threshold: 10}, nil)

		summary, err := svc.Summarize(context.Background(), storeID, 10)
		require.NoError(t, err)
		assert.Equal(t, 42, summary.TotalStock)
	})

	t.Run("requires_store_id", func(t *testing.T) {
		svc, _, _ := newStockService(t)

		_, err := svc.Summarize(context.Background(), uuid.Nil, 5)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestStockService_ListLowStock(t *testing.T) {
	storeID := uuid.New()

	t.Run("defaults_threshold", func(t *testing.T) {
		svc, repo, _ := newStockService(t)

		repo.EXPECT().
			FindLowStock(gomock.Any(), storeID, domain.DefaultLowStockThreshold, 50).
			Return([]domain.LowStockVariant{{Stock: 0}, {Stock: 2}}, nil)

		variants, err := svc.ListLowStock(context.Background(), storeID, 0, 50)
		require.NoError(t, err)
		assert.Len(t, variants, 2)
	})

	t.Run("propagates_repository_error", func(t *testing.T) {
		svc, repo, _ := newStockService(t)

		repo.EXPECT().
			FindLowStock(gomock.Any(), storeID, 5, 10).
			Return(nil, errors.New("connection refused"))

		_, err := svc.ListLowStock(context.Background(), storeID, 5, 10)
		require.Error(t, err)
	})
}
