// internal/core/ports/stock_service.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
)

// StockService defines the application service port for the stock ledger.
// This interface is implemented by the application service.
type StockService interface {
	// RecordMovement validates and applies a delta movement, filling the
	// snapshot fields of movement in place.
	RecordMovement(ctx context.Context, movement *domain.StockMovement) error

	// AdjustToLevel sets a variant's stock to an absolute level and
	// records the derived ADJUSTMENT movement. newStock must be >= 0.
	AdjustToLevel(ctx context.Context, variantID uuid.UUID, newStock int, notes string) (*domain.StockMovement, error)

	// GetCurrentStock returns the variant's current counter.
	GetCurrentStock(ctx context.Context, variantID uuid.UUID) (int, error)

	// ListMovements pages through the ledger newest-first.
	ListMovements(ctx context.Context, params MovementListParams) (*MovementListResult, error)

	// Summarize aggregates a store's stock; threshold <= 0 falls back to
	// domain.DefaultLowStockThreshold.
	Summarize(ctx context.Context, storeID uuid.UUID, threshold int) (*domain.StockSummary, error)

	// ListLowStock lists restock candidates, stock ascending.
	ListLowStock(ctx context.Context, storeID uuid.UUID, threshold, limit int) ([]domain.LowStockVariant, error)
}

// MovementListResult holds one page of the movement ledger
type MovementListResult struct {
	Movements  []domain.StockMovement `json:"movements"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	TotalCount int64                  `json:"total_count"`
	TotalPages int                    `json:"total_pages"`
}
