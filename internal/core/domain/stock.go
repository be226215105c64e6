// internal/core/domain/stock.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType classifies why stock changed
type MovementType string

const (
	MovementAdjustment MovementType = "ADJUSTMENT"
	MovementSale       MovementType = "SALE"
	MovementReturn     MovementType = "RETURN"
	MovementRestock    MovementType = "RESTOCK"
	MovementTransfer   MovementType = "TRANSFER"
)

// DefaultLowStockThreshold is applied when a caller does not supply one.
const DefaultLowStockThreshold = 5

// ValidMovementType reports whether t is a known movement type
func ValidMovementType(t MovementType) bool {
	switch t {
	case MovementAdjustment, MovementSale, MovementReturn, MovementRestock, MovementTransfer:
		return true
	}
	return false
}

// StockMovement is one entry in the append-only stock ledger. Quantity is a
// signed delta; PreviousStock and NewStock snapshot the variant's counter
// around the write, so NewStock == PreviousStock + Quantity always holds.
// Seq is assigned by the database and breaks created_at ties deterministically.
type StockMovement struct {
	ID            uuid.UUID    `json:"id"`
	VariantID     uuid.UUID    `json:"variant_id"`
	Quantity      int          `json:"quantity"`
	Type          MovementType `json:"type"`
	PreviousStock int          `json:"previous_stock"`
	NewStock      int          `json:"new_stock"`
	Reference     string       `json:"reference,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	Seq           int64        `json:"seq"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Validate checks caller-supplied fields. Snapshot fields are computed
// inside the repository transaction, not validated here.
func (m *StockMovement) Validate() error {
	if m.VariantID == uuid.Nil {
		return fmt.Errorf("%w: variant_id is required", ErrValidation)
	}
	if !ValidMovementType(m.Type) {
		return fmt.Errorf("%w: invalid movement type %q", ErrValidation, m.Type)
	}
	if len(m.Reference) > 200 {
		return fmt.Errorf("%w: reference must be at most 200 characters", ErrValidation)
	}
	if len(m.Notes) > 500 {
		return fmt.Errorf("%w: notes must be at most 500 characters", ErrValidation)
	}
	return nil
}

// StockSummary aggregates stock levels and valuation across a store's
// variants. Variants without a cost price contribute zero to TotalCost.
type StockSummary struct {
	TotalStock      int             `json:"total_stock"`
	TotalValue      decimal.Decimal `json:"total_value"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	LowStockCount   int             `json:"low_stock_count"`
	OutOfStockCount int             `json:"out_of_stock_count"`
	VariantCount    int             `json:"variant_count"`
	Threshold       int             `json:"threshold"`
}

// LowStockVariant is a variant at or below the low-stock threshold,
// carried with enough product context to render a restock list.
type LowStockVariant struct {
	VariantID   uuid.UUID `json:"variant_id"`
	VariantName string    `json:"variant_name"`
	SKU         string    `json:"sku,omitempty"`
	Stock       int       `json:"stock"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	ProductSlug string    `json:"product_slug"`
}

// VerifyMovementChain checks a variant's ledger ordered oldest-first:
// each movement must satisfy NewStock == PreviousStock + Quantity and each
// PreviousStock must equal the prior movement's NewStock. Returns the index
// of the first violation, or -1 if the chain is intact.
func VerifyMovementChain(movements []StockMovement) int {
	for i, m := range movements {
		if m.NewStock != m.PreviousStock+m.Quantity {
			return i
		}
		if i > 0 && m.PreviousStock != movements[i-1].NewStock {
			return i
		}
	}
	return -1
}
