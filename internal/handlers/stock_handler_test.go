// internal/handlers/stock_handler_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
	"github.com/easycatalog/easycatalog-be/internal/core/ports"
	"github.com/easycatalog/easycatalog-be/internal/handlers"
	"github.com/easycatalog/easycatalog-be/test/helpers"
	"github.com/easycatalog/easycatalog-be/test/mocks"
)

func newStockHandler(t *testing.T) (*handlers.StockHandler, *mocks.MockStockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockStockService(ctrl)
	return handlers.NewStockHandler(mockService, helpers.TestLogger().Logger), mockService
}

func TestStockHandler_RecordMovement(t *testing.T) {
	variantID := uuid.New()

	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mocks.MockStockService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name: "successfully_records_movement",
			body: fmt.Sprintf(`{"variant_id":%q,"quantity":-3,"type":"SALE","reference":"order-1042"}`, variantID),
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					RecordMovement(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ interface{}, movement *domain.StockMovement) error {
						assert.Equal(t, variantID, movement.VariantID)
						assert.Equal(t, -3, movement.Quantity)
						assert.Equal(t, domain.MovementSale, movement.Type)
						movement.ID = uuid.New()
						movement.PreviousStock = 10
						movement.NewStock = 7
						movement.Seq = 42
						return nil
					})
			},
			expectedStatus: http.StatusCreated,
			validateBody: func(t *testing.T, body []byte) {
				var response domain.StockMovement
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, 10, response.PreviousStock)
				assert.Equal(t, 7, response.NewStock)
				assert.Equal(t, int64(42), response.Seq)
			},
		},
		{
			name:           "malformed_body",
			body:           `{"variant_id":`,
			setupMocks:     func(m *mocks.MockStockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "validation_error_maps_to_400",
			body: fmt.Sprintf(`{"variant_id":%q,"quantity":1,"type":"SHRINKAGE"}`, variantID),
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					RecordMovement(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("%w: invalid movement type", domain.ErrValidation))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "insufficient_stock_maps_to_409",
			body: fmt.Sprintf(`{"variant_id":%q,"quantity":-50,"type":"SALE"}`, variantID),
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					RecordMovement(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("%w: stock 3, movement -50", domain.ErrInsufficientStock))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "unknown_variant_maps_to_404",
			body: fmt.Sprintf(`{"variant_id":%q,"quantity":5,"type":"RESTOCK"}`, variantID),
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					RecordMovement(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("variant %s: %w", variantID, domain.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "unexpected_error_maps_to_500",
			body: fmt.Sprintf(`{"variant_id":%q,"quantity":5,"type":"RESTOCK"}`, variantID),
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					RecordMovement(gomock.Any(), gomock.Any()).
					Return(errors.New("database connection failed"))
			},
			expectedStatus: http.StatusInternalServerError,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]string
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "internal server error", response["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockService := newStockHandler(t)
			tt.setupMocks(mockService)

			req := httptest.NewRequest("POST", "/api/v1/stores/"+uuid.NewString()+"/stock/movements",
				bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.RecordMovement(w, req)

			assert.Equal(t, tt.expectedStatus, w.Result().StatusCode)
			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestStockHandler_AdjustStock(t *testing.T) {
	variantID := uuid.New()

	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mocks.MockStockService)
		expectedStatus int
	}{
		{
			name: "successfully_adjusts_stock",
			body: fmt.Sprintf(`{"variant_id":%q,"new_stock":12,"notes":"cycle count"}`, variantID),
			setupMocks: func(m *mocks.MockStockService) {
				m.EXPECT().
					AdjustToLevel(gomock.Any(), variantID, 12, "cycle count").
					Return(&domain.StockMovement{
						ID:            uuid.New(),
						VariantID:     variantID,
						Type:          domain.MovementAdjustment,
						Quantity:      2,
						PreviousStock: 10,
						NewStock:      12,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing_new_stock",
			body:           fmt.Sprintf(`{"variant_id":%q}`, variantID),
			setupMocks:     func(m *mocks.MockStockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative_new_stock",
			body:           fmt.Sprintf(`{"variant_id":%q,"new_stock":-1}`, variantID),
			setupMocks:     func(m *mocks.MockStockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing_variant_id",
			body:           `{"new_stock":5}`,
			setupMocks:     func(m *mocks.MockStockService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockService := newStockHandler(t)
			tt.setupMocks(mockService)

			req := httptest.NewRequest("POST", "/api/v1/stores/"+uuid.NewString()+"/stock/adjustments",
				bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.AdjustStock(w, req)

			assert.Equal(t, tt.expectedStatus, w.Result().StatusCode)
		})
	}
}

func TestStockHandler_GetVariantStock(t *testing.T) {
	variantID := uuid.New()

	t.Run("returns_current_stock", func(t *testing.T) {
		handler, mockService := newStockHandler(t)
		mockService.EXPECT().
			GetCurrentStock(gomock.Any(), variantID).
			Return(17, nil)

		req := httptest.NewRequest("GET", "/api/v1/variants/"+variantID.String()+"/stock", nil)
		req.SetPathValue("variantId", variantID.String())
		w := httptest.NewRecorder()

		handler.GetVariantStock(w, req)

		assert.Equal(t, http.StatusOK, w.Result().StatusCode)
		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(17), response["stock"])
	})

	t.Run("invalid_uuid", func(t *testing.T) {
		handler, _ := newStockHandler(t)

		req := httptest.NewRequest("GET", "/api/v1/variants/not-a-uuid/stock", nil)
		req.SetPathValue("variantId", "not-a-uuid")
		w := httptest.NewRecorder()

		handler.GetVariantStock(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	})
}

func TestStockHandler_ListStoreMovements(t *testing.T) {
	storeID := uuid.New()

	t.Run("passes_filters_through", func(t *testing.T) {
		handler, mockService := newStockHandler(t)
		mockService.EXPECT().
			ListMovements(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, params ports.MovementListParams) (*ports.MovementListResult, error) {
				require.NotNil(t, params.StoreID)
				assert.Equal(t, storeID, *params.StoreID)
				assert.Equal(t, domain.MovementSale, params.Type)
				assert.Equal(t, 2, params.Page)
				assert.Equal(t, 10, params.PageSize)
				return &ports.MovementListResult{
					Movements:  []domain.StockMovement{{ID: uuid.New()}},
					Page:       2,
					PageSize:   10,
					TotalCount: 21,
					TotalPages: 3,
				}, nil
			})

		req := httptest.NewRequest("GET",
			"/api/v1/stores/"+storeID.String()+"/stock/movements?type=SALE&page=2&page_size=10", nil)
		req.SetPathValue("storeId", storeID.String())
		w := httptest.NewRecorder()

		handler.ListStoreMovements(w, req)

		assert.Equal(t, http.StatusOK, w.Result().StatusCode)
		var response ports.MovementListResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, int64(21), response.TotalCount)
		assert.Equal(t, 3, response.TotalPages)
	})

	t.Run("invalid_store_id", func(t *testing.T) {
		handler, _ := newStockHandler(t)

		req := httptest.NewRequest("GET", "/api/v1/stores/nope/stock/movements", nil)
		req.SetPathValue("storeId", "nope")
		w := httptest.NewRecorder()

		handler.ListStoreMovements(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	})
}

func TestStockHandler_GetStockSummary(t *testing.T) {
	storeID := uuid.New()

	t.Run("uses_query_threshold", func(t *testing.T) {
		handler, mockService := newStockHandler(t)
		mockService.EXPECT().
			Summarize(gomock.Any(), storeID, 10).
			Return(&domain.StockSummary{TotalStock: 120, Threshold: 10}, nil)

		req := httptest.NewRequest("GET",
			"/api/v1/stores/"+storeID.String()+"/stock/summary?threshold=10", nil)
		req.SetPathValue("storeId", storeID.String())
		w := httptest.NewRecorder()

		handler.GetStockSummary(w, req)

		assert.Equal(t, http.StatusOK, w.Result().StatusCode)
		var response domain.StockSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 120, response.TotalStock)
		assert.Equal(t, 10, response.Threshold)
	})

	t.Run("defaults_threshold_to_zero_for_service", func(t *testing.T) {
		// The service substitutes the configured default; the handler
		// just forwards zero when the query parameter is absent.
		handler, mockService := newStockHandler(t)
		mockService.EXPECT().
			Summarize(gomock.Any(), storeID, 0).
			Return(&domain.StockSummary{Threshold: domain.DefaultLowStockThreshold}, nil)

		req := httptest.NewRequest("GET", "/api/v1/stores/"+storeID.String()+"/stock/summary", nil)
		req.SetPathValue("storeId", storeID.String())
		w := httptest.NewRecorder()

		handler.GetStockSummary(w, req)

		assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	})
}

func TestStockHandler_ListLowStock(t *testing.T) {
	storeID := uuid.New()

	handler, mockService := newStockHandler(t)
	mockService.EXPECT().
		ListLowStock(gomock.Any(), storeID, 0, 50).
		Return([]domain.LowStockVariant{
			{VariantID: uuid.New(), VariantName: "White / M", Stock: 2},
			{VariantID: uuid.New(), VariantName: "Black / M", Stock: 4},
		}, nil)

	req := httptest.NewRequest("GET", "/api/v1/stores/"+storeID.String()+"/stock/low", nil)
	req.SetPathValue("storeId", storeID.String())
	w := httptest.NewRecorder()

	handler.ListLowStock(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	var response map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	var count int
	require.NoError(t, json.Unmarshal(response["count"], &count))
	assert.Equal(t, 2, count)
}
