package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/easycatalog/easycatalog-be/internal/core/domain"
)

func TestStockMovement_Validate(t *testing.T) {
	tests := []struct {
		name      string
		movement  *domain.StockMovement
		wantError bool
		errorMsg  string
	}{
		{
			name: "valid_sale_movement",
			movement: &domain.StockMovement{
				VariantID: uuid.New(),
				Type:      domain.MovementSale,
				Quantity:  -3,
				Reference: "order-1042",
			},
			wantError: false,
		},
		{
			name: "valid_restock_movement",
			movement: &domain.StockMovement{
				VariantID: uuid.New(),
				Type:      domain.MovementRestock,
				Quantity:  50,
			},
			wantError: false,
		},
		{
			name: "zero_quantity_is_accepted",
			movement: &domain.StockMovement{
				VariantID: uuid.New(),
				Type:      domain.MovementAdjustment,
				Quantity:  0,
			},
			wantError: false,
		},
		{
			name: "missing_variant_id",
			movement: &domain.StockMovement{
				Type:     domain.MovementSale,
				Quantity: -1,
			},
			wantError: true,
			errorMsg:  "variant_id is required",
		},
		{
			name: "unknown_movement_type",
			movement: &domain.StockMovement{
				VariantID: uuid.New(),
				Type:      "SHRINKAGE",
				Quantity:  -1,
			},
			wantError: true,
			errorMsg:  "invalid movement type",
		},
		{
			name: "empty_movement_type",
			movement: &domain.StockMovement{
				VariantID: uuid.New(),
				Quantity:  1,
			},
			wantError: true,
			errorMsg:  "invalid movement type",
		},
		{
			name: "reference_too_long",
			movement: &domain.StockMovement{
				VariantID: uuid.New(),
				Type:      domain.MovementSale,
				Quantity:  -1,
				Reference: string(make([]byte, 201)),
			},
			wantError: true,
			errorMsg:  "reference must be at most 200 characters",
		},
		{
			name: "notes_too_long",
			movement: &domain.StockMovement{
				VariantID: uuid.New(),
				Type:      domain.MovementReturn,
				Quantity:  2,
				Notes:     string(make([]byte, 501)),
			},
			wantError: true,
			errorMsg:  "notes must be at most 500 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.movement.Validate()
			if tt.wantError {
				assert.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidMovementType(t *testing.T) {
	for _, mt := range []domain.MovementType{
		domain.MovementAdjustment,
		domain.MovementSale,
		domain.MovementReturn,
		domain.MovementRestock,
		domain.MovementTransfer,
	} {
		assert.True(t, domain.ValidMovementType(mt), "type %s should be valid", mt)
	}

	assert.False(t, domain.ValidMovementType(""))
	assert.False(t, domain.ValidMovementType("sale"))
	assert.False(t, domain.ValidMovementType("DAMAGE"))
}

func TestVerifyMovementChain(t *testing.T) {
	variantID := uuid.New()

	chain := func(entries ...[3]int) []domain.StockMovement {
		movements := make([]domain.StockMovement, len(entries))
		for i, e := range entries {
			movements[i] = domain.StockMovement{
				ID:            uuid.New(),
				VariantID:     variantID,
				Type:          domain.MovementAdjustment,
				Quantity:      e[0],
				PreviousStock: e[1],
				NewStock:      e[2],
			}
		}
		return movements
	}

	tests := []struct {
		name      string
		movements []domain.StockMovement
		wantIndex int
	}{
		{
			name:      "empty_chain_is_intact",
			movements: nil,
			wantIndex: -1,
		},
		{
			name:      "single_valid_movement",
			movements: chain([3]int{10, 0, 10}),
			wantIndex: -1,
		},
		{
			name: "multi_step_chain_is_intact",
			movements: chain(
				[3]int{10, 0, 10},
				[3]int{-3, 10, 7},
				[3]int{5, 7, 12},
				[3]int{-12, 12, 0},
			),
			wantIndex: -1,
		},
		{
			name: "broken_arithmetic_detected",
			movements: chain(
				[3]int{10, 0, 10},
				[3]int{-3, 10, 8}, // 10 - 3 != 8
			),
			wantIndex: 1,
		},
		{
			name: "broken_linkage_detected",
			movements: chain(
				[3]int{10, 0, 10},
				[3]int{-2, 9, 7}, // previous_stock should be 10
			),
			wantIndex: 1,
		},
		{
			name: "first_violation_wins",
			movements: chain(
				[3]int{5, 0, 4}, // broken at index 0
				[3]int{-2, 4, 1},
			),
			wantIndex: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantIndex, domain.VerifyMovementChain(tt.movements))
		})
	}
}
