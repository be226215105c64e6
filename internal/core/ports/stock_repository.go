// internal/core/ports/stock_repository.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
)

// StockRepository defines the persistence port for the stock ledger.
// The ledger is append-only: there is deliberately no update or delete
// surface for movements. Both write methods run movement insert and
// variant counter update in a single transaction, holding a row lock on
// the variant so concurrent writers serialize per variant.
type StockRepository interface {
	// ApplyMovement locks the variant row, computes the stock snapshots
	// from movement.Quantity, and persists movement + counter atomically.
	// It fills ID, PreviousStock, NewStock, Seq and CreatedAt in place.
	// Returns domain.ErrNotFound if the variant does not exist and
	// domain.ErrInsufficientStock if the result would be negative.
	ApplyMovement(ctx context.Context, movement *domain.StockMovement) error

	// ApplyAdjustment locks the variant row and records an ADJUSTMENT
	// movement whose quantity is derived from the target level under the
	// same lock, so the delta is exact even under concurrency.
	ApplyAdjustment(ctx context.Context, variantID uuid.UUID, newStock int, notes string) (*domain.StockMovement, error)

	// GetStock reads the variant's current counter.
	GetStock(ctx context.Context, variantID uuid.UUID) (int, error)

	// FindMovements returns a page of movements newest-first
	// (created_at DESC, seq DESC) with the total count.
	FindMovements(ctx context.Context, params MovementListParams) ([]domain.StockMovement, int64, error)

	// FindChain returns every movement of a variant oldest-first, for
	// ledger audits.
	FindChain(ctx context.Context, variantID uuid.UUID) ([]domain.StockMovement, error)

	// Summarize aggregates stock counts and valuation over a store.
	Summarize(ctx context.Context, storeID uuid.UUID, threshold int) (*domain.StockSummary, error)

	// FindLowStock returns variants with stock at or below threshold,
	// out-of-stock included, ordered by stock ascending.
	FindLowStock(ctx context.Context, storeID uuid.UUID, threshold, limit int) ([]domain.LowStockVariant, error)
}

// MovementListParams filters and paginates the movement ledger. Exactly one
// of VariantID or StoreID is expected; StoreID scopes through the variant's
// product.
type MovementListParams struct {
	VariantID *uuid.UUID
	StoreID   *uuid.UUID
	Type      domain.MovementType
	Page      int
	PageSize  int
}
