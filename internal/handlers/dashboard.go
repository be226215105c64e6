// internal/handlers/dashboard.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	redis_a "github.com/easycatalog/easycatalog-be/internal/adapters/redis_adapter"
	"github.com/easycatalog/easycatalog-be/internal/core/domain"
	"github.com/easycatalog/easycatalog-be/internal/core/ports"
)

const (
	dashboardCacheTTL      = 5 * time.Minute
	dashboardLowStockLimit = 5
)

// DashboardHandler serves the aggregated store dashboard
type DashboardHandler struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	stock      ports.StockService
	cache      ports.CacheRepository
	logger     *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	products ports.ProductRepository,
	categories ports.CategoryRepository,
	stock ports.StockService,
	cache ports.CacheRepository,
	logger *slog.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		products:   products,
		categories: categories,
		stock:      stock,
		cache:      cache,
		logger:     logger.With(slog.String("handler", "dashboard")),
	}
}

// DashboardData is the aggregated store overview
type DashboardData struct {
	Products      domain.ProductStats      `json:"products"`
	CategoryCount int                      `json:"category_count"`
	Stock         domain.StockSummary      `json:"stock"`
	LowStock      []domain.LowStockVariant `json:"low_stock"`
	Timestamp     time.Time                `json:"timestamp"`
}

// GetDashboard handles GET /api/v1/stores/{storeId}/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeID, err := uuid.Parse(r.PathValue("storeId"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid store ID format")
		return
	}

	threshold := parseIntQuery(r, "threshold", domain.DefaultLowStockThreshold)
	if threshold <= 0 {
		threshold = domain.DefaultLowStockThreshold
	}

	cacheKey := redis_a.BuildKey(redis_a.PrefixDashboard, storeID.String(), strconv.Itoa(threshold))
	var dashboard DashboardData

	err = h.cache.GetOrSet(ctx, cacheKey, &dashboard, func() (interface{}, error) {
		return h.loadDashboardData(ctx, storeID, threshold)
	}, dashboardCacheTTL)
	if err != nil {
		// Cache trouble should not take the dashboard down.
		h.logger.WarnContext(ctx, "dashboard cache unavailable, loading directly",
			slog.String("store_id", storeID.String()), slog.Any("err", err))
		loaded, loadErr := h.loadDashboardData(ctx, storeID, threshold)
		if loadErr != nil {
			respondServiceError(w, r, h.logger, loadErr)
			return
		}
		dashboard = *loaded
	}

	respondJSON(w, h.logger, http.StatusOK, dashboard)
}

func (h *DashboardHandler) loadDashboardData(ctx context.Context, storeID uuid.UUID, threshold int) (*DashboardData, error) {
	dashboard := &DashboardData{
		Timestamp: time.Now(),
	}

	stats, err := h.products.Stats(ctx, storeID, threshold)
	if err != nil {
		return nil, err
	}
	dashboard.Products = *stats

	categories, err := h.categories.FindAll(ctx, storeID)
	if err != nil {
		return nil, err
	}
	dashboard.CategoryCount = len(categories)

	summary, err := h.stock.Summarize(ctx, storeID, threshold)
	if err != nil {
		return nil, err
	}
	dashboard.Stock = *summary

	lowStock, err := h.stock.ListLowStock(ctx, storeID, threshold, dashboardLowStockLimit)
	if err != nil {
		return nil, err
	}
	dashboard.LowStock = lowStock

	return dashboard, nil
}
