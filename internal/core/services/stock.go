// internal/core/services/stock.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
	"github.com/easycatalog/easycatalog-be/internal/core/ports"
)

// summaryCacheTTL bounds staleness of the cached store summary between
// ledger writes.
const summaryCacheTTL = 5 * time.Minute

// StockService handles the stock ledger business logic
type StockService struct {
	repo   ports.StockRepository
	cache  ports.CacheRepository
	logger *slog.Logger
}

// Statically assert that *StockService implements the StockService interface.
var _ ports.StockService = (*StockService)(nil)

// NewStockService creates a new stock ledger service
func NewStockService(repo ports.StockRepository, cache ports.CacheRepository, logger *slog.Logger) *StockService {
	return &StockService{
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("service", "stock")),
	}
}

// RecordMovement validates and applies a delta movement. The repository
// fills the snapshot fields under the variant's row lock, so the returned
// movement reflects exactly what was committed.
func (s *StockService) RecordMovement(ctx context.Context, movement *domain.StockMovement) error {
	if err := movement.Validate(); err != nil {
		return err
	}

	if err := s.repo.ApplyMovement(ctx, movement); err != nil {
		return fmt.Errorf("failed to record movement: %w", err)
	}

	s.invalidateStockCache(ctx)

	s.logger.InfoContext(ctx, "stock movement recorded",
		slog.String("variant_id", movement.VariantID.String()),
		slog.String("type", string(movement.Type)),
		slog.Int("quantity", movement.Quantity),
		slog.Int("previous_stock", movement.PreviousStock),
		slog.Int("new_stock", movement.NewStock),
	)

	return nil
}

// AdjustToLevel sets a variant's stock to an absolute level
func (s *StockService) AdjustToLevel(ctx context.Context, variantID uuid.UUID, newStock int, notes string) (*domain.StockMovement, error) {
	if variantID == uuid.Nil {
		return nil, fmt.Errorf("%w: variant_id is required", domain.ErrValidation)
	}
	if newStock < 0 {
		return nil, fmt.Errorf("%w: new stock cannot be negative", domain.ErrValidation)
	}
	if len(notes) > 500 {
		return nil, fmt.Errorf("%w: notes must be at most 500 characters", domain.ErrValidation)
	}

	movement, err := s.repo.ApplyAdjustment(ctx, variantID, newStock, notes)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	s.invalidateStockCache(ctx)

	s.logger.InfoContext(ctx, "stock adjusted",
		slog.String("variant_id", variantID.String()),
		slog.Int("previous_stock", movement.PreviousStock),
		slog.Int("new_stock", movement.NewStock),
	)

	return movement, nil
}

// GetCurrentStock reads the variant's current counter
func (s *StockService) GetCurrentStock(ctx context.Context, variantID uuid.UUID) (int, error) {
	if variantID == uuid.Nil {
		return 0, fmt.Errorf("%w: variant_id is required", domain.ErrValidation)
	}
	return s.repo.GetStock(ctx, variantID)
}

// ListMovements pages through the ledger newest-first
func (s *StockService) ListMovements(ctx context.Context, params ports.MovementListParams) (*ports.MovementListResult, error) {
	if params.VariantID == nil && params.StoreID == nil {
		return nil, fmt.Errorf("%w: either variant_id or store_id is required", domain.ErrValidation)
	}
	if params.Type != "" && !domain.ValidMovementType(params.Type) {
		return nil, fmt.Errorf("%w: invalid movement type %q", domain.ErrValidation, params.Type)
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

	movements, total, err := s.repo.FindMovements(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}

	return &ports.MovementListResult{
		Movements:  movements,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: total,
		TotalPages: int(math.Ceil(float64(total) / float64(params.PageSize))),
	}, nil
}

// Summarize aggregates a store's stock, served through the cache
func (s *StockService) Summarize(ctx context.Context, storeID uuid.UUID, threshold int) (*domain.StockSummary, error) {
	if storeID == uuid.Nil {
		return nil, fmt.Errorf("%w: store_id is required", domain.ErrValidation)
	}
	if threshold <= 0 {
		threshold = domain.DefaultLowStockThreshold
	}

	cacheKey := fmt.Sprintf("stock:summary:%s:%d", storeID, threshold)

	var summary domain.StockSummary
	err := s.cache.GetOrSet(ctx, cacheKey, &summary, func() (interface{}, error) {
		return s.repo.Summarize(ctx, storeID, threshold)
	}, summaryCacheTTL)
	if err != nil {
		// Cache trouble must not take down summary reads.
		s.logger.WarnContext(ctx, "summary cache bypassed", "err", err)
		fresh, repoErr := s.repo.Summarize(ctx, storeID, threshold)
		if repoErr != nil {
			return nil, fmt.Errorf("failed to summarize stock: %w", repoErr)
		}
		return fresh, nil
	}

	return &summary, nil
}

// ListLowStock lists restock candidates, stock ascending
func (s *StockService) ListLowStock(ctx context.Context, storeID uuid.UUID, threshold, limit int) ([]domain.LowStockVariant, error) {
	if storeID == uuid.Nil {
		return nil, fmt.Errorf("%w: store_id is required", domain.ErrValidation)
	}
	if threshold <= 0 {
		threshold = domain.DefaultLowStockThreshold
	}

	variants, err := s.repo.FindLowStock(ctx, storeID, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock variants: %w", err)
	}
	return variants, nil
}

// invalidateStockCache drops cached summaries and dashboards after a
// ledger write. Failures are logged and swallowed: the TTL still bounds
// staleness.
func (s *StockService) invalidateStockCache(ctx context.Context) {
	for _, pattern := range []string{"stock:*", "dashboard:*"} {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			s.logger.WarnContext(ctx, "failed to invalidate cache",
				slog.String("pattern", pattern), "err", err)
		}
	}
}
